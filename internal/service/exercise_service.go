package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound      = errors.New("exercise not found")
	ErrExerciseAlreadyExists = errors.New("exercise with this name already exists")
	ErrValidationFailed      = errors.New("validation failed")
	ErrMediaKeyMismatch      = errors.New("object key was not issued for this exercise")
	ErrUploadURLError        = errors.New("failed to generate upload URL")
)

const exerciseMediaPrefix = "exercise-media"

// ExerciseInput carries the editable fields of a library entry.
type ExerciseInput struct {
	Name        string
	MuscleGroup string
	Equipment   string
	Notes       string
}

func (in ExerciseInput) normalize() (ExerciseInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, fmt.Errorf("%w: exercise name is required", ErrValidationFailed)
	}
	return in, nil
}

// ExerciseDetails is an exercise with a temporary link to its demo media.
type ExerciseDetails struct {
	domain.Exercise
	MediaURL *string `json:"mediaUrl,omitempty"`
}

// MediaUploadURL is returned when a client asks to upload demo media.
type MediaUploadURL struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // Sent back on confirm
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, userID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	GetExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) (*ExerciseDetails, error)
	ListExercises(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) error

	RequestMediaUploadURL(ctx context.Context, userID, exerciseID primitive.ObjectID, contentType string) (*MediaUploadURL, error)
	ConfirmMediaUpload(ctx context.Context, userID, exerciseID primitive.ObjectID, objectKey string) (*domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo  repository.ExerciseRepository
	fileStorage   storage.FileStorage
	presignExpiry time.Duration
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage, presignExpiry time.Duration) ExerciseService {
	return &exerciseService{
		exerciseRepo:  exerciseRepo,
		fileStorage:   fileStorage,
		presignExpiry: presignExpiry,
	}
}

func (s *exerciseService) CreateExercise(ctx context.Context, userID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		UserID:      userID,
		Name:        in.Name,
		MuscleGroup: in.MuscleGroup,
		Equipment:   in.Equipment,
		Notes:       in.Notes,
	}
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseAlreadyExists
		}
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// GetExercise returns the entry and, when demo media exists, a presigned download URL.
func (s *exerciseService) GetExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) (*ExerciseDetails, error) {
	exercise, err := s.getOwned(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	details := &ExerciseDetails{Exercise: *exercise}
	if exercise.MediaKey != "" {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaKey, s.presignExpiry)
		if err != nil {
			// The entry is still useful without its clip.
			log.WithField("exercise_id", exerciseID.Hex()).Warnf("presign media download: %v", err)
		} else {
			details.MediaURL = &url
		}
	}
	return details, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByUserID(ctx, userID)
}

func (s *exerciseService) UpdateExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	exercise, err := s.getOwned(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}
	exercise.Name = in.Name
	exercise.MuscleGroup = in.MuscleGroup
	exercise.Equipment = in.Equipment
	exercise.Notes = in.Notes

	if err = s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, mapExerciseRepoErr(err)
	}
	return exercise, nil
}

// DeleteExercise removes the entry, then its media best-effort.
func (s *exerciseService) DeleteExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) error {
	exercise, err := s.getOwned(ctx, userID, exerciseID)
	if err != nil {
		return err
	}
	if err = s.exerciseRepo.Delete(ctx, exerciseID, userID); err != nil {
		return mapExerciseRepoErr(err)
	}

	if exercise.MediaKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, exercise.MediaKey); err != nil {
			log.WithField("key", exercise.MediaKey).Warnf("orphaned exercise media: %v", err)
		}
	}
	return nil
}

func (s *exerciseService) RequestMediaUploadURL(ctx context.Context, userID, exerciseID primitive.ObjectID, contentType string) (*MediaUploadURL, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "video/") && !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: media must be a video or image", ErrValidationFailed)
	}
	if _, err := s.getOwned(ctx, userID, exerciseID); err != nil {
		return nil, err
	}

	objectKey := storage.ObjectKey(mediaPrefix(exerciseID), userID.Hex(), storage.ExtensionForContentType(contentType))
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadURLError, err)
	}
	return &MediaUploadURL{UploadURL: url, ObjectKey: objectKey}, nil
}

// ConfirmMediaUpload links an uploaded object to the exercise, replacing any previous clip.
func (s *exerciseService) ConfirmMediaUpload(ctx context.Context, userID, exerciseID primitive.ObjectID, objectKey string) (*domain.Exercise, error) {
	if !storage.OwnedBy(objectKey, mediaPrefix(exerciseID), userID.Hex()) {
		return nil, ErrMediaKeyMismatch
	}
	exercise, err := s.getOwned(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	previous := exercise.MediaKey
	exercise.MediaKey = objectKey
	if err = s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, mapExerciseRepoErr(err)
	}

	if previous != "" && previous != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			log.WithField("key", previous).Warnf("orphaned exercise media: %v", err)
		}
	}
	return exercise, nil
}

func (s *exerciseService) getOwned(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID, userID)
	if err != nil {
		return nil, mapExerciseRepoErr(err)
	}
	return exercise, nil
}

func mapExerciseRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrExerciseNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrExerciseAlreadyExists
	default:
		return err
	}
}

func mediaPrefix(exerciseID primitive.ObjectID) string {
	return exerciseMediaPrefix + "/" + exerciseID.Hex()
}
