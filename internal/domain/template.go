// internal/domain/template.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutTemplate is a reusable session outline. A logged session may name
// the template it was started from.
type WorkoutTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"` // e.g., "Push Day A"
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Exercises []TemplateExercise `bson:"exercises" json:"exercises"` // Order is the planned order
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TemplateExercise is one planned exercise within a template.
type TemplateExercise struct {
	ExerciseName string   `bson:"exerciseName" json:"exerciseName"`
	TargetSets   int      `bson:"targetSets" json:"targetSets"`
	TargetReps   int      `bson:"targetReps" json:"targetReps"`
	TargetWeight *float64 `bson:"targetWeight,omitempty" json:"targetWeight,omitempty"`
}
