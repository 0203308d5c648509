package analytics

import (
	"context"
	"errors"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionSource is the read side of session persistence. FindOne returns
// repository.ErrNotFound when nothing matches.
type SessionSource interface {
	Find(ctx context.Context, userID primitive.ObjectID, query repository.SessionQuery) ([]domain.WorkoutSession, error)
	FindOne(ctx context.Context, userID primitive.ObjectID, query repository.SessionQuery) (*domain.WorkoutSession, error)
}

// E1RMPoint is the best estimated one-rep max for an exercise in one session.
type E1RMPoint struct {
	Date time.Time `json:"date"`
	E1RM float64   `json:"e1rm"`
}

// VolumePoint is the total volume of one session.
type VolumePoint struct {
	Date        time.Time `json:"date"`
	TotalVolume float64   `json:"totalVolume"`
}

// LastPerformance is the most recent record of an exercise, with every set,
// so the next session can be pre-filled from it.
type LastPerformance struct {
	Date         time.Time                `json:"date"`
	ExerciseData domain.PerformedExercise `json:"exerciseData"`
}

// History answers progress queries over one user's stored sessions. It holds
// no state between calls; every answer is recomputed from the source.
type History struct {
	source SessionSource
	now    func() time.Time
}

func NewHistory(source SessionSource) *History {
	return &History{
		source: source,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for period windows.
func (h *History) WithClock(now func() time.Time) *History {
	h.now = now
	return h
}

// E1RMTrend returns, in ascending date order, the best E1RM of exerciseName
// in each session that contains it. Sessions without a positive estimate are
// left out rather than reported as zero.
func (h *History) E1RMTrend(ctx context.Context, userID primitive.ObjectID, exerciseName string, period Period) ([]E1RMPoint, error) {
	sessions, err := h.source.Find(ctx, userID, repository.SessionQuery{
		ExerciseName: exerciseName,
		From:         period.Since(h.now()),
		Sort:         repository.SortDateAsc,
	})
	if err != nil {
		return nil, err
	}

	points := make([]E1RMPoint, 0, len(sessions))
	for i := range sessions {
		session := &sessions[i]
		if session.UserID != userID {
			continue
		}
		exercise := session.FindExercise(exerciseName)
		if exercise == nil {
			continue
		}
		best, ok := maxE1RM(exercise.Sets)
		if !ok || best <= 0 {
			continue
		}
		points = append(points, E1RMPoint{Date: session.Date, E1RM: best})
	}
	return points, nil
}

// VolumeTrend returns one point per session in ascending date order,
// zero-volume sessions included.
func (h *History) VolumeTrend(ctx context.Context, userID primitive.ObjectID) ([]VolumePoint, error) {
	sessions, err := h.source.Find(ctx, userID, repository.SessionQuery{Sort: repository.SortDateAsc})
	if err != nil {
		return nil, err
	}

	points := make([]VolumePoint, 0, len(sessions))
	for _, session := range sessions {
		if session.UserID != userID {
			continue
		}
		points = append(points, VolumePoint{Date: session.Date, TotalVolume: session.TotalVolume})
	}
	return points, nil
}

// LastPerformance returns the newest session record of exerciseName, or nil
// when the user never performed it.
func (h *History) LastPerformance(ctx context.Context, userID primitive.ObjectID, exerciseName string) (*LastPerformance, error) {
	session, err := h.source.FindOne(ctx, userID, repository.SessionQuery{
		ExerciseName: exerciseName,
		Sort:         repository.SortDateDesc,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, nil
	}

	exercise := session.FindExercise(exerciseName)
	if exercise == nil {
		return nil, nil
	}
	return &LastPerformance{Date: session.Date, ExerciseData: *exercise}, nil
}

// maxE1RM reports false for an empty set list.
func maxE1RM(sets []domain.PerformedSet) (float64, bool) {
	if len(sets) == 0 {
		return 0, false
	}
	best := sets[0].E1RM
	for _, set := range sets[1:] {
		if set.E1RM > best {
			best = set.E1RM
		}
	}
	return best, true
}
