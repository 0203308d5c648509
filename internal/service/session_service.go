package service

import (
	"alcyxob/fitness-tracker/internal/analytics"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrSessionNotFound = errors.New("workout session not found")

const (
	maxRPE           = 10
	maxSessionsLimit = 200
)

// ValidateSubmission rejects payloads the evaluator must never see. Exercise
// names are trimmed in place.
func ValidateSubmission(sub *analytics.Submission) error {
	if sub.Duration != nil && *sub.Duration < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrValidationFailed)
	}
	if sub.TemplateName != nil {
		name := strings.TrimSpace(*sub.TemplateName)
		if name == "" {
			sub.TemplateName = nil
		} else {
			sub.TemplateName = &name
		}
	}

	for i := range sub.Exercises {
		ex := &sub.Exercises[i]
		ex.ExerciseName = strings.TrimSpace(ex.ExerciseName)
		if ex.ExerciseName == "" {
			return fmt.Errorf("%w: exercise %d: name is required", ErrValidationFailed, i)
		}
		for j, set := range ex.Sets {
			if math.IsNaN(set.Weight) || math.IsInf(set.Weight, 0) || set.Weight <= 0 {
				return fmt.Errorf("%w: %s set %d: weight must be a positive number", ErrValidationFailed, ex.ExerciseName, j+1)
			}
			if set.Reps < 1 {
				return fmt.Errorf("%w: %s set %d: reps must be at least 1", ErrValidationFailed, ex.ExerciseName, j+1)
			}
			if set.RPE != nil && (math.IsNaN(*set.RPE) || *set.RPE < 0 || *set.RPE > maxRPE) {
				return fmt.Errorf("%w: %s set %d: rpe must be between 0 and %d", ErrValidationFailed, ex.ExerciseName, j+1, maxRPE)
			}
		}
	}
	return nil
}

type SessionService interface {
	LogSession(ctx context.Context, userID primitive.ObjectID, sub analytics.Submission) (*domain.WorkoutSession, error)
	GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	// ListSessions returns the newest sessions first. A non-positive limit
	// returns up to the server maximum.
	ListSessions(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error)
	// ReplaceSession recomputes every derived field from sub. When sub has no
	// date the stored date is kept.
	ReplaceSession(ctx context.Context, userID, sessionID primitive.ObjectID, sub analytics.Submission) (*domain.WorkoutSession, error)
	DeleteSession(ctx context.Context, userID, sessionID primitive.ObjectID) error
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	aggregator  *analytics.Aggregator
	metrics     *metrics.Manager
}

// NewSessionService creates a session service. metricsManager may be nil.
func NewSessionService(sessionRepo repository.SessionRepository, aggregator *analytics.Aggregator, metricsManager *metrics.Manager) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		aggregator:  aggregator,
		metrics:     metricsManager,
	}
}

func (s *sessionService) LogSession(ctx context.Context, userID primitive.ObjectID, sub analytics.Submission) (*domain.WorkoutSession, error) {
	if err := ValidateSubmission(&sub); err != nil {
		return nil, err
	}

	session := s.aggregator.Aggregate(userID, sub)
	sessionID, err := s.sessionRepo.Create(ctx, &session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID

	s.countSaved("create")
	log.WithFields(log.Fields{
		"user_id":    userID.Hex(),
		"session_id": sessionID.Hex(),
		"exercises":  len(session.ExercisesPerformed),
		"volume":     session.TotalVolume,
	}).Debug("workout session logged")

	return &session, nil
}

func (s *sessionService) GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID, userID)
	if err != nil {
		return nil, mapSessionRepoErr(err)
	}
	return session, nil
}

func (s *sessionService) ListSessions(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error) {
	if limit <= 0 || limit > maxSessionsLimit {
		limit = maxSessionsLimit
	}
	return s.sessionRepo.Find(ctx, userID, repository.SessionQuery{
		Sort:  repository.SortDateDesc,
		Limit: limit,
	})
}

func (s *sessionService) ReplaceSession(ctx context.Context, userID, sessionID primitive.ObjectID, sub analytics.Submission) (*domain.WorkoutSession, error) {
	if err := ValidateSubmission(&sub); err != nil {
		return nil, err
	}

	existing, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if sub.Date == nil {
		date := existing.Date
		sub.Date = &date
	}

	session := s.aggregator.Aggregate(userID, sub)
	session.ID = existing.ID
	session.CreatedAt = existing.CreatedAt

	if err = s.sessionRepo.Replace(ctx, &session); err != nil {
		return nil, mapSessionRepoErr(err)
	}

	s.countSaved("replace")
	return &session, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, userID, sessionID primitive.ObjectID) error {
	if err := s.sessionRepo.Delete(ctx, sessionID, userID); err != nil {
		return mapSessionRepoErr(err)
	}
	s.countSaved("delete")
	return nil
}

func (s *sessionService) countSaved(op string) {
	if s.metrics != nil {
		s.metrics.CounterSessionsSaved.WithLabelValues(op).Inc()
	}
}

func mapSessionRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
