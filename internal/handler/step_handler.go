package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/service"
)

// StepHandler serves production step recording
type StepHandler struct {
	stepService service.ProductionStepService
	logger      *zap.Logger
}

// NewStepHandler creates a new StepHandler
func NewStepHandler(stepService service.ProductionStepService, logger *zap.Logger) *StepHandler {
	return &StepHandler{
		stepService: stepService,
		logger:      logger,
	}
}

// RecordStep godoc
// @Summary      Record a production step on a rocket
// @Description  Accepts JSON or an HTML form post with step_data[...] inputs.
// @Tags         steps
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        rocketId path string true "Rocket ID (UUID)"
// @Param        request body dto.RecordStepRequest true "Step data"
// @Success      201 {object} response.SuccessResponse{data=dto.StepResponse}
// @Failure      400 {object} response.ErrorResponse "Validation errors listed in error.errors"
// @Router       /rockets/{rocketId}/steps [post]
func (h *StepHandler) RecordStep(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	rocketID, ok := parseIDParam(c, "rocketId", "rocket")
	if !ok {
		return
	}

	var req dto.RecordStepRequest
	if isFormPost(c) {
		templateID, err := uuid.Parse(c.PostForm("template_id"))
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "template_id is required")
			return
		}
		req.TemplateID = templateID
		req.StepData = c.PostFormMap(formschema.InputPrefix)
	} else if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	step, err := h.stepService.RecordStep(c.Request.Context(), principal, rocketID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, step)
}

// ListSteps godoc
// @Summary      List a rocket's production steps, newest first
// @Tags         steps
// @Produce      json
// @Param        rocketId path string true "Rocket ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.StepResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /rockets/{rocketId}/steps [get]
func (h *StepHandler) ListSteps(c *gin.Context) {
	rocketID, ok := parseIDParam(c, "rocketId", "rocket")
	if !ok {
		return
	}

	steps, err := h.stepService.ListStepsByRocket(c.Request.Context(), rocketID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, steps)
}

// GetStep godoc
// @Summary      Get a production step with its decoded data
// @Tags         steps
// @Produce      json
// @Param        stepId path string true "Step ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.StepResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /steps/{stepId} [get]
func (h *StepHandler) GetStep(c *gin.Context) {
	stepID, ok := parseIDParam(c, "stepId", "step")
	if !ok {
		return
	}

	step, err := h.stepService.GetStep(c.Request.Context(), stepID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, step)
}

// UpdateStep godoc
// @Summary      Replace a step's values after re-validating them
// @Tags         steps
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        stepId path string true "Step ID (UUID)"
// @Param        request body dto.UpdateStepRequest true "Step data"
// @Success      200 {object} response.SuccessResponse{data=dto.StepResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /steps/{stepId} [put]
func (h *StepHandler) UpdateStep(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	stepID, ok := parseIDParam(c, "stepId", "step")
	if !ok {
		return
	}

	var req dto.UpdateStepRequest
	if isFormPost(c) {
		req.StepData = c.PostFormMap(formschema.InputPrefix)
	} else if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	step, err := h.stepService.UpdateStep(c.Request.Context(), principal, stepID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, step)
}

// DeleteStep godoc
// @Summary      Delete a production step
// @Tags         steps
// @Param        stepId path string true "Step ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Router       /steps/{stepId} [delete]
func (h *StepHandler) DeleteStep(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	stepID, ok := parseIDParam(c, "stepId", "step")
	if !ok {
		return
	}

	if err := h.stepService.DeleteStep(c.Request.Context(), principal, stepID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}

// sendBindError names the offending step_data entry when there is one
func sendBindError(c *gin.Context, err error) {
	var valueErr *dto.StepValueError
	if errors.As(err, &valueErr) {
		response.SendErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body", []string{valueErr.Error()})
		return
	}
	response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
}

func isFormPost(c *gin.Context) bool {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		return true
	default:
		return false
	}
}
