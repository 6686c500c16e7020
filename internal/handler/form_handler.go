package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/service"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/view"
)

// FormHandler renders step entry forms as HTML fragments
type FormHandler struct {
	templateService service.StepTemplateService
	stepService     service.ProductionStepService
	renderer        *view.Renderer
	basePath        string
	logger          *zap.Logger
}

// NewFormHandler creates a new FormHandler. basePath prefixes the form action URLs.
func NewFormHandler(
	templateService service.StepTemplateService,
	stepService service.ProductionStepService,
	renderer *view.Renderer,
	basePath string,
	logger *zap.Logger,
) *FormHandler {
	return &FormHandler{
		templateService: templateService,
		stepService:     stepService,
		renderer:        renderer,
		basePath:        basePath,
		logger:          logger,
	}
}

// RenderForm godoc
// @Summary      Render the entry form for a template
// @Description  With step_id the form is pre-filled for editing; with rocket_id it posts a new step.
// @Tags         templates
// @Produce      html
// @Param        templateId path string true "Template ID (UUID)"
// @Param        step_id query string false "Step to edit"
// @Param        rocket_id query string false "Rocket to record against"
// @Success      200 {string} string "HTML fragment"
// @Router       /templates/{templateId}/form [get]
func (h *FormHandler) RenderForm(c *gin.Context) {
	templateID, ok := parseIDParam(c, "templateId", "template")
	if !ok {
		return
	}

	template, fields, err := h.templateService.GetSchema(c.Request.Context(), templateID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	form := view.StepForm{
		TemplateID:  template.ID.String(),
		StepName:    template.Name,
		Description: h.renderer.Description(template.Description),
	}

	var stored map[string]string
	if raw := c.Query("step_id"); raw != "" {
		stepID, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid step ID")
			return
		}
		step, err := h.stepService.GetStep(c.Request.Context(), stepID)
		if err != nil {
			handleServiceError(c, h.logger, err)
			return
		}
		if step.TemplateID == nil || *step.TemplateID != template.ID {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Step was not recorded with this template")
			return
		}
		stored = step.Values
		form.StepID = step.StepID.String()
		form.StepName = step.StepName
		form.Action = h.basePath + "/steps/" + form.StepID
		if step.PayloadMalformed {
			form.Errors = []string{"The stored data for this step could not be read; saving will overwrite it"}
		}
	} else if raw := c.Query("rocket_id"); raw != "" {
		rocketID, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid rocket ID")
			return
		}
		form.Action = h.basePath + "/rockets/" + rocketID.String() + "/steps"
	}

	controls, err := formschema.Describe(fields, stored)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	form.Controls = controls

	var buf bytes.Buffer
	if err := h.renderer.RenderStepForm(&buf, form); err != nil {
		h.logger.Error("Failed to render step form", zap.Error(err), zap.String("template_id", templateID.String()))
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to render form")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
