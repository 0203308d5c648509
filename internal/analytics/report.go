package analytics

import (
	"sort"
	"time"

	"alcyxob/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is a point-in-time summary of a user's whole history.
type Report struct {
	UserID      primitive.ObjectID     `json:"userId"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Sessions    int                    `json:"sessions"`
	TotalVolume float64                `json:"totalVolume"`
	Volume      []VolumePoint          `json:"volume"`
	E1RM        map[string][]E1RMPoint `json:"e1rm"`
	Records     map[string]E1RMPoint   `json:"records"` // Best E1RM ever per exercise
}

// BuildReport summarizes sessions owned by userID. Sessions of other users
// are ignored. The input order does not matter.
func BuildReport(userID primitive.ObjectID, sessions []domain.WorkoutSession, now time.Time) Report {
	owned := make([]domain.WorkoutSession, 0, len(sessions))
	for _, session := range sessions {
		if session.UserID == userID {
			owned = append(owned, session)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Date.Before(owned[j].Date)
	})

	report := Report{
		UserID:      userID,
		GeneratedAt: now,
		Sessions:    len(owned),
		Volume:      make([]VolumePoint, 0, len(owned)),
		E1RM:        make(map[string][]E1RMPoint),
		Records:     make(map[string]E1RMPoint),
	}

	for i := range owned {
		session := &owned[i]
		report.TotalVolume += session.TotalVolume
		report.Volume = append(report.Volume, VolumePoint{Date: session.Date, TotalVolume: session.TotalVolume})

		seen := make(map[string]struct{}, len(session.ExercisesPerformed))
		for _, ex := range session.ExercisesPerformed {
			if _, dup := seen[ex.ExerciseName]; dup {
				continue
			}
			seen[ex.ExerciseName] = struct{}{}

			// Same selection as E1RMTrend: first matching entry per session.
			best, ok := maxE1RM(session.FindExercise(ex.ExerciseName).Sets)
			if !ok || best <= 0 {
				continue
			}
			point := E1RMPoint{Date: session.Date, E1RM: best}
			report.E1RM[ex.ExerciseName] = append(report.E1RM[ex.ExerciseName], point)
			if record, exists := report.Records[ex.ExerciseName]; !exists || best > record.E1RM {
				report.Records[ex.ExerciseName] = point
			}
		}
	}
	return report
}
