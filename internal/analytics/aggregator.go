package analytics

import (
	"time"

	"alcyxob/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission is a validated session payload as the client sent it, before
// any derived field is computed. Nil pointers mean "not provided".
type Submission struct {
	Date         *time.Time
	Duration     *int
	TemplateName *string
	Exercises    []SubmittedExercise
}

type SubmittedExercise struct {
	ExerciseName string
	Sets         []SubmittedSet
}

type SubmittedSet struct {
	Weight float64
	Reps   int
	RPE    *float64
}

// Aggregator turns submissions into fully derived sessions.
type Aggregator struct {
	formula Formula
	now     func() time.Time
}

// NewAggregator creates an Aggregator evaluating sets with formula.
func NewAggregator(formula Formula) *Aggregator {
	return &Aggregator{
		formula: formula,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the submission clock. Used by tests.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Formula returns the evaluator policy in use.
func (a *Aggregator) Formula() Formula {
	return a.formula
}

// Aggregate computes every set's E1RM and the session's total volume, and
// stamps the session with the owner's id. The owner must come from the
// authenticated caller. The returned session is the record to persist, so
// times are cut to the millisecond precision the store keeps.
func (a *Aggregator) Aggregate(userID primitive.ObjectID, sub Submission) domain.WorkoutSession {
	now := a.now().UTC().Truncate(time.Millisecond)

	session := domain.WorkoutSession{
		UserID:             userID,
		Date:               now,
		TemplateName:       sub.TemplateName,
		ExercisesPerformed: make([]domain.PerformedExercise, 0, len(sub.Exercises)),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if sub.Date != nil {
		session.Date = sub.Date.UTC().Truncate(time.Millisecond)
	}
	if sub.Duration != nil {
		session.Duration = *sub.Duration
	}

	var totalVolume float64
	for _, ex := range sub.Exercises {
		performed := domain.PerformedExercise{
			ExerciseName: ex.ExerciseName,
			Sets:         make([]domain.PerformedSet, 0, len(ex.Sets)),
		}
		for _, set := range ex.Sets {
			performed.Sets = append(performed.Sets, domain.PerformedSet{
				Weight: set.Weight,
				Reps:   set.Reps,
				RPE:    set.RPE,
				E1RM:   a.formula.Evaluate(set.Weight, set.Reps),
			})
			totalVolume += set.Weight * float64(set.Reps)
		}
		session.ExercisesPerformed = append(session.ExercisesPerformed, performed)
	}
	session.TotalVolume = totalVolume

	return session
}
