package service

import (
	"alcyxob/fitness-tracker/internal/analytics"
	"alcyxob/fitness-tracker/internal/metrics"
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidPeriod is returned for a period other than month, year or all.
var ErrInvalidPeriod = analytics.ErrInvalidPeriod

// ProgressService answers the history queries for the authenticated user.
type ProgressService interface {
	E1RMTrend(ctx context.Context, userID primitive.ObjectID, exerciseName, period string) ([]analytics.E1RMPoint, error)
	VolumeTrend(ctx context.Context, userID primitive.ObjectID) ([]analytics.VolumePoint, error)
	// LastPerformance returns nil, nil when the exercise was never logged.
	LastPerformance(ctx context.Context, userID primitive.ObjectID, exerciseName string) (*analytics.LastPerformance, error)
}

type progressService struct {
	history *analytics.History
	metrics *metrics.Manager
}

// NewProgressService creates a progress service. metricsManager may be nil.
func NewProgressService(history *analytics.History, metricsManager *metrics.Manager) ProgressService {
	return &progressService{history: history, metrics: metricsManager}
}

func (s *progressService) E1RMTrend(ctx context.Context, userID primitive.ObjectID, exerciseName, period string) ([]analytics.E1RMPoint, error) {
	exerciseName, err := requireExerciseName(exerciseName)
	if err != nil {
		return nil, err
	}
	p, err := analytics.ParsePeriod(strings.ToLower(strings.TrimSpace(period)))
	if err != nil {
		return nil, err
	}

	s.count("e1rm")
	return s.history.E1RMTrend(ctx, userID, exerciseName, p)
}

func (s *progressService) VolumeTrend(ctx context.Context, userID primitive.ObjectID) ([]analytics.VolumePoint, error) {
	s.count("volume")
	return s.history.VolumeTrend(ctx, userID)
}

func (s *progressService) LastPerformance(ctx context.Context, userID primitive.ObjectID, exerciseName string) (*analytics.LastPerformance, error) {
	exerciseName, err := requireExerciseName(exerciseName)
	if err != nil {
		return nil, err
	}

	s.count("last")
	return s.history.LastPerformance(ctx, userID, exerciseName)
}

func (s *progressService) count(kind string) {
	if s.metrics != nil {
		s.metrics.CounterProgressQueries.WithLabelValues(kind).Inc()
	}
}

func requireExerciseName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: exercise name is required", ErrValidationFailed)
	}
	return name, nil
}
