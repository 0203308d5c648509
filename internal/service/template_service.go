package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrTemplateNotFound = errors.New("workout template not found")

// TemplateInput carries the editable fields of a workout template.
type TemplateInput struct {
	Name      string
	Notes     string
	Exercises []domain.TemplateExercise
}

func (in TemplateInput) normalize() (TemplateInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, fmt.Errorf("%w: template name is required", ErrValidationFailed)
	}
	for i := range in.Exercises {
		ex := &in.Exercises[i]
		ex.ExerciseName = strings.TrimSpace(ex.ExerciseName)
		if ex.ExerciseName == "" {
			return in, fmt.Errorf("%w: exercise %d: name is required", ErrValidationFailed, i)
		}
		if ex.TargetSets < 0 || ex.TargetReps < 0 {
			return in, fmt.Errorf("%w: exercise %d: targets cannot be negative", ErrValidationFailed, i)
		}
		if w := ex.TargetWeight; w != nil && (*w < 0 || math.IsNaN(*w) || math.IsInf(*w, 0)) {
			return in, fmt.Errorf("%w: exercise %d: invalid target weight", ErrValidationFailed, i)
		}
	}
	if in.Exercises == nil {
		in.Exercises = []domain.TemplateExercise{}
	}
	return in, nil
}

type TemplateService interface {
	CreateTemplate(ctx context.Context, userID primitive.ObjectID, in TemplateInput) (*domain.WorkoutTemplate, error)
	GetTemplate(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error)
	ListTemplates(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	UpdateTemplate(ctx context.Context, userID, templateID primitive.ObjectID, in TemplateInput) (*domain.WorkoutTemplate, error)
	DeleteTemplate(ctx context.Context, userID, templateID primitive.ObjectID) error
}

type templateService struct {
	templateRepo repository.TemplateRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

func (s *templateService) CreateTemplate(ctx context.Context, userID primitive.ObjectID, in TemplateInput) (*domain.WorkoutTemplate, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	template := &domain.WorkoutTemplate{
		UserID:    userID,
		Name:      in.Name,
		Notes:     in.Notes,
		Exercises: in.Exercises,
	}
	templateID, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}
	template.ID = templateID
	return template, nil
}

func (s *templateService) GetTemplate(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID, userID)
	if err != nil {
		return nil, mapTemplateRepoErr(err)
	}
	return template, nil
}

func (s *templateService) ListTemplates(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	return s.templateRepo.GetByUserID(ctx, userID)
}

func (s *templateService) UpdateTemplate(ctx context.Context, userID, templateID primitive.ObjectID, in TemplateInput) (*domain.WorkoutTemplate, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	template, err := s.GetTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}
	template.Name = in.Name
	template.Notes = in.Notes
	template.Exercises = in.Exercises

	if err = s.templateRepo.Update(ctx, template); err != nil {
		return nil, mapTemplateRepoErr(err)
	}
	return template, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, userID, templateID primitive.ObjectID) error {
	return mapTemplateRepoErr(s.templateRepo.Delete(ctx, templateID, userID))
}

func mapTemplateRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTemplateNotFound
	}
	return err
}
