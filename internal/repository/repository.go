package repository

import (
	"alcyxob/fitness-tracker/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SortOrder orders sessions by date.
type SortOrder int

const (
	SortDateAsc SortOrder = iota
	SortDateDesc
)

// SessionQuery narrows a user's sessions. Every query is additionally
// scoped by the owning user id, which is passed separately.
type SessionQuery struct {
	// ExerciseName matches sessions containing a performed exercise with
	// exactly this name. Empty matches every session.
	ExerciseName string
	// From and To bound the session date as [From, To). Nil is unbounded.
	From *time.Time
	To   *time.Time
	Sort SortOrder
	// Limit caps the result size, 0 means no limit.
	Limit int64
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository defines the interface for a user's exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Exercise, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// TemplateRepository defines the interface for a user's workout templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.WorkoutTemplate, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	Update(ctx context.Context, template *domain.WorkoutTemplate) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// SessionRepository stores workout sessions. Edits are whole-document
// replacements; concurrent replacements resolve as last write wins.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.WorkoutSession, error)
	Find(ctx context.Context, userID primitive.ObjectID, query SessionQuery) ([]domain.WorkoutSession, error)
	FindOne(ctx context.Context, userID primitive.ObjectID, query SessionQuery) (*domain.WorkoutSession, error)
	Replace(ctx context.Context, session *domain.WorkoutSession) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// ExportRepository stores metadata about progress exports.
type ExportRepository interface {
	Create(ctx context.Context, export *domain.ProgressExport) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.ProgressExport, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressExport, error)
}
