// internal/domain/session.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSession is one logged workout. TotalVolume and every set's E1RM are
// derived when the session is written and are never edited on their own.
type WorkoutSession struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID  `bson:"userId" json:"userId"`
	Date               time.Time           `bson:"date" json:"date"`
	Duration           int                 `bson:"duration" json:"duration"`                             // Minutes
	TemplateName       *string             `bson:"templateName,omitempty" json:"templateName,omitempty"` // nil when not started from a template
	ExercisesPerformed []PerformedExercise `bson:"exercisesPerformed" json:"exercisesPerformed"`
	TotalVolume        float64             `bson:"totalVolume" json:"totalVolume"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PerformedExercise groups the sets done for one exercise, in the order they
// were performed.
type PerformedExercise struct {
	ExerciseName string         `bson:"exerciseName" json:"exerciseName"`
	Sets         []PerformedSet `bson:"sets" json:"sets"`
}

// PerformedSet is one recorded set.
type PerformedSet struct {
	Weight float64  `bson:"weight" json:"weight"`
	Reps   int      `bson:"reps" json:"reps"`
	RPE    *float64 `bson:"rpe,omitempty" json:"rpe"`
	E1RM   float64  `bson:"e1rm" json:"e1rm"`
}

// FindExercise returns the first performed exercise whose name matches
// exactly, or nil.
func (s *WorkoutSession) FindExercise(name string) *PerformedExercise {
	for i := range s.ExercisesPerformed {
		if s.ExercisesPerformed[i].ExerciseName == name {
			return &s.ExercisesPerformed[i]
		}
	}
	return nil
}
