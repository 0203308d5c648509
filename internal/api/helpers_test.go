package api

import (
	"alcyxob/fitness-tracker/internal/analytics"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/service"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "api-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(services Services, metricsManager *metrics.Manager) *gin.Engine {
	router := gin.New()
	SetupRoutes(router, testSecret, services, metricsManager, MetricsRoute{})
	return router
}

func signToken(t *testing.T, userID primitive.ObjectID, secret string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &service.Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type fakeAuthService struct {
	service.AuthService

	profile func(userID primitive.ObjectID) (*domain.User, error)
}

func (f *fakeAuthService) Profile(_ context.Context, userID primitive.ObjectID) (*domain.User, error) {
	return f.profile(userID)
}

// fakeSessionService embeds the interface so tests only stub what they call.
type fakeSessionService struct {
	service.SessionService

	logSession   func(userID primitive.ObjectID, sub analytics.Submission) (*domain.WorkoutSession, error)
	listSessions func(userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error)
}

func (f *fakeSessionService) LogSession(_ context.Context, userID primitive.ObjectID, sub analytics.Submission) (*domain.WorkoutSession, error) {
	return f.logSession(userID, sub)
}

func (f *fakeSessionService) ListSessions(_ context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error) {
	return f.listSessions(userID, limit)
}

type fakeProgressService struct {
	e1rmTrend       func(userID primitive.ObjectID, name, period string) ([]analytics.E1RMPoint, error)
	volumeTrend     func(userID primitive.ObjectID) ([]analytics.VolumePoint, error)
	lastPerformance func(userID primitive.ObjectID, name string) (*analytics.LastPerformance, error)
}

func (f *fakeProgressService) E1RMTrend(_ context.Context, userID primitive.ObjectID, name, period string) ([]analytics.E1RMPoint, error) {
	return f.e1rmTrend(userID, name, period)
}

func (f *fakeProgressService) VolumeTrend(_ context.Context, userID primitive.ObjectID) ([]analytics.VolumePoint, error) {
	return f.volumeTrend(userID)
}

func (f *fakeProgressService) LastPerformance(_ context.Context, userID primitive.ObjectID, name string) (*analytics.LastPerformance, error) {
	return f.lastPerformance(userID, name)
}
