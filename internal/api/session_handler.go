package api

import (
	"alcyxob/fitness-tracker/internal/analytics"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

type SetRequest struct {
	Weight *float64 `json:"weight" binding:"required"`
	Reps   int      `json:"reps" binding:"required,min=1"`
	RPE    *float64 `json:"rpe" binding:"omitempty,gte=0,lte=10"`
}

type PerformedExerciseRequest struct {
	ExerciseName string       `json:"exerciseName" binding:"required"`
	Sets         []SetRequest `json:"sets" binding:"dive"`
}

// SessionRequest is the payload for logging or replacing a session. Derived
// fields (e1rm, totalVolume) are ignored if sent.
type SessionRequest struct {
	Date               *time.Time                 `json:"date"`
	Duration           *int                       `json:"duration" binding:"omitempty,gte=0"` // Minutes
	TemplateName       *string                    `json:"templateName"`
	ExercisesPerformed []PerformedExerciseRequest `json:"exercisesPerformed" binding:"dive"`
}

func (r SessionRequest) toSubmission() analytics.Submission {
	sub := analytics.Submission{
		Date:         r.Date,
		Duration:     r.Duration,
		TemplateName: r.TemplateName,
		Exercises:    make([]analytics.SubmittedExercise, len(r.ExercisesPerformed)),
	}
	for i, ex := range r.ExercisesPerformed {
		sets := make([]analytics.SubmittedSet, len(ex.Sets))
		for j, set := range ex.Sets {
			sets[j] = analytics.SubmittedSet{Reps: set.Reps, RPE: set.RPE}
			if set.Weight != nil {
				sets[j].Weight = *set.Weight
			}
		}
		sub.Exercises[i] = analytics.SubmittedExercise{ExerciseName: ex.ExerciseName, Sets: sets}
	}
	return sub
}

// --- Handler Methods ---

// LogSession godoc
// @Summary Log a workout session
// @Description Computes every set's estimated one-rep max and the session's total volume, then stores the session.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body SessionRequest true "Performed session"
// @Success 201 {object} domain.WorkoutSession "Stored session with derived fields"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /sessions [post]
func (h *SessionHandler) LogSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.sessionService.LogSession(c.Request.Context(), userID, req.toSubmission())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSessions godoc
// @Summary List workout sessions, newest first
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of sessions"
// @Success 200 {array} domain.WorkoutSession
// @Failure 400 {object} gin.H "Invalid limit"
// @Router /sessions [get]
func (h *SessionHandler) GetSessions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			abortWithError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	sessions, err := h.sessionService.ListSessions(c.Request.Context(), userID, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSessionByID godoc
// @Summary Get a workout session
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} domain.WorkoutSession
// @Failure 404 {object} gin.H "Session not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSessionByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sessionID, ok := requireObjectIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ReplaceSession godoc
// @Summary Replace a workout session
// @Description Every derived field is recomputed from the new payload. The stored date is kept when none is sent.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param session body SessionRequest true "Performed session"
// @Success 200 {object} domain.WorkoutSession
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Session not found"
// @Router /sessions/{id} [put]
func (h *SessionHandler) ReplaceSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sessionID, ok := requireObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.sessionService.ReplaceSession(c.Request.Context(), userID, sessionID, req.toSubmission())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete a workout session
// @Tags Sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} gin.H "Session not found"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sessionID, ok := requireObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.sessionService.DeleteSession(c.Request.Context(), userID, sessionID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		log.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to process session request.")
	}
}
