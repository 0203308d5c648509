package service_test

import (
	"context"
	"testing"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func TestTemplateService_CreateTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockTemplateRepository(ctrl)
	svc := service.NewTemplateService(repo)
	userID := primitive.NewObjectID()

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tpl *domain.WorkoutTemplate) (primitive.ObjectID, error) {
			assert.Equal(t, userID, tpl.UserID)
			assert.Equal(t, "Push Day A", tpl.Name)
			require.Len(t, tpl.Exercises, 1)
			assert.Equal(t, "Bench", tpl.Exercises[0].ExerciseName)
			return primitive.NewObjectID(), nil
		})

	tpl, err := svc.CreateTemplate(context.Background(), userID, service.TemplateInput{
		Name:      "Push Day A",
		Exercises: []domain.TemplateExercise{{ExerciseName: " Bench ", TargetSets: 3, TargetReps: 5}},
	})
	require.NoError(t, err)
	assert.False(t, tpl.ID.IsZero())
}

func TestTemplateService_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.NewTemplateService(NewMockTemplateRepository(ctrl))
	userID := primitive.NewObjectID()
	negative := -2.5

	for _, in := range []service.TemplateInput{
		{Name: ""},
		{Name: "A", Exercises: []domain.TemplateExercise{{ExerciseName: ""}}},
		{Name: "A", Exercises: []domain.TemplateExercise{{ExerciseName: "Row", TargetSets: -1}}},
		{Name: "A", Exercises: []domain.TemplateExercise{{ExerciseName: "Row", TargetWeight: &negative}}},
	} {
		_, err := svc.CreateTemplate(context.Background(), userID, in)
		assert.ErrorIs(t, err, service.ErrValidationFailed)
	}
}

func TestTemplateService_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockTemplateRepository(ctrl)
	svc := service.NewTemplateService(repo)

	repo.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, repository.ErrNotFound)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).Return(repository.ErrNotFound)

	_, err := svc.UpdateTemplate(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), service.TemplateInput{Name: "B"})
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)

	err = svc.DeleteTemplate(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)
}
