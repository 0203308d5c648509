package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ProgressHandler serves the history queries and progress exports.
type ProgressHandler struct {
	progressService service.ProgressService
	exportService   service.ExportService
}

func NewProgressHandler(progressService service.ProgressService, exportService service.ExportService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		exportService:   exportService,
	}
}

// GetE1RMTrend godoc
// @Summary Estimated one-rep max trend for an exercise
// @Description One point per session containing the exercise, oldest first.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param exercise query string true "Exercise name (exact match)"
// @Param period query string false "month, year or all (default all)"
// @Success 200 {array} analytics.E1RMPoint
// @Failure 400 {object} gin.H "Missing exercise or invalid period"
// @Router /progress/e1rm [get]
func (h *ProgressHandler) GetE1RMTrend(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	points, err := h.progressService.E1RMTrend(c.Request.Context(), userID, c.Query("exercise"), c.Query("period"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetVolumeTrend godoc
// @Summary Total volume per session, oldest first
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analytics.VolumePoint
// @Router /progress/volume [get]
func (h *ProgressHandler) GetVolumeTrend(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	points, err := h.progressService.VolumeTrend(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetLastPerformance godoc
// @Summary Most recent performance of an exercise
// @Description Responds with null when the exercise was never logged.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param exercise query string true "Exercise name (exact match)"
// @Success 200 {object} analytics.LastPerformance
// @Failure 400 {object} gin.H "Missing exercise"
// @Router /progress/last [get]
func (h *ProgressHandler) GetLastPerformance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	last, err := h.progressService.LastPerformance(c.Request.Context(), userID, c.Query("exercise"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if last == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, last)
}

// CreateExport godoc
// @Summary Export the user's progress report
// @Description Writes a JSON report to object storage and returns a temporary download URL.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 201 {object} service.ExportDetails
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /progress/export [post]
func (h *ProgressHandler) CreateExport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	export, err := h.exportService.CreateExport(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}

// GetExports godoc
// @Summary List progress exports, newest first
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.ProgressExport
// @Router /progress/exports [get]
func (h *ProgressHandler) GetExports(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	exports, err := h.exportService.ListExports(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if exports == nil {
		exports = []domain.ProgressExport{}
	}
	c.JSON(http.StatusOK, exports)
}

// GetExportByID godoc
// @Summary Get a progress export with a fresh download URL
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Export ID"
// @Success 200 {object} service.ExportDetails
// @Failure 404 {object} gin.H "Export not found"
// @Router /progress/exports/{id} [get]
func (h *ProgressHandler) GetExportByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	exportID, ok := requireObjectIDParam(c, "id")
	if !ok {
		return
	}

	export, err := h.exportService.GetExport(c.Request.Context(), userID, exportID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, export)
}

func (h *ProgressHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed), errors.Is(err, service.ErrInvalidPeriod):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExportNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		log.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to process progress request.")
	}
}
