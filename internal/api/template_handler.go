package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type TemplateExerciseRequest struct {
	ExerciseName string   `json:"exerciseName" binding:"required"`
	TargetSets   int      `json:"targetSets" binding:"gte=0"`
	TargetReps   int      `json:"targetReps" binding:"gte=0"`
	TargetWeight *float64 `json:"targetWeight" binding:"omitempty,gte=0"`
}

type TemplateRequest struct {
	Name      string                    `json:"name" binding:"required"`
	Notes     string                    `json:"notes"`
	Exercises []TemplateExerciseRequest `json:"exercises" binding:"dive"`
}

func (r TemplateRequest) toInput() service.TemplateInput {
	in := service.TemplateInput{
		Name:      r.Name,
		Notes:     r.Notes,
		Exercises: make([]domain.TemplateExercise, len(r.Exercises)),
	}
	for i, ex := range r.Exercises {
		in.Exercises[i] = domain.TemplateExercise{
			ExerciseName: ex.ExerciseName,
			TargetSets:   ex.TargetSets,
			TargetReps:   ex.TargetReps,
			TargetWeight: ex.TargetWeight,
		}
	}
	return in
}

// CreateTemplate godoc
// @Summary Create a workout template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param template body TemplateRequest true "Template"
// @Success 201 {object} domain.WorkoutTemplate
// @Failure 400 {object} gin.H "Invalid input"
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

// GetTemplates godoc
// @Summary List workout templates, most recently updated first
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.WorkoutTemplate
// @Router /templates [get]
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if templates == nil {
		templates = []domain.WorkoutTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplateByID godoc
// @Summary Get a workout template
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} domain.WorkoutTemplate
// @Failure 404 {object} gin.H "Template not found"
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplateByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	templateID, ok := requireObjectIDParam(c, "id")
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplate(c.Request.Context(), userID, templateID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// UpdateTemplate godoc
// @Summary Replace a workout template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param template body TemplateRequest true "Template"
// @Success 200 {object} domain.WorkoutTemplate
// @Failure 404 {object} gin.H "Template not found"
// @Router /templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	templateID, ok := requireObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), userID, templateID, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteTemplate godoc
// @Summary Delete a workout template
// @Tags Templates
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204
// @Failure 404 {object} gin.H "Template not found"
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	templateID, ok := requireObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), userID, templateID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TemplateHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTemplateNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		log.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to process template request.")
	}
}
