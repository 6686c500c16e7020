package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/service"
)

// TemplateHandler serves the step template registry
type TemplateHandler struct {
	templateService service.StepTemplateService
	logger          *zap.Logger
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService service.StepTemplateService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		logger:          logger,
	}
}

// ListTemplates godoc
// @Summary      List all step templates
// @Description  Includes inactive templates. Administrators and engineers only.
// @Tags         templates
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.TemplateSummaryResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), principal)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, templates)
}

// ListActiveTemplates godoc
// @Summary      List active step templates
// @Tags         templates
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.TemplateSummaryResponse}
// @Router       /templates/active [get]
func (h *TemplateHandler) ListActiveTemplates(c *gin.Context) {
	templates, err := h.templateService.ListActiveTemplates(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary      Get a step template with its fields
// @Tags         templates
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TemplateResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /templates/{templateId} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	templateID, ok := parseIDParam(c, "templateId", "template")
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplateWithFields(c.Request.Context(), templateID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}

// CreateTemplate godoc
// @Summary      Create a step template together with its fields
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        request body dto.TemplateRequest true "Template"
// @Success      201 {object} response.SuccessResponse{data=dto.TemplateResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse "Duplicate template name"
// @Router       /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	template, err := h.templateService.SaveTemplate(c.Request.Context(), principal, nil, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, template)
}

// UpdateTemplate godoc
// @Summary      Update a step template
// @Description  Omitting fields keeps the stored field list; an empty list clears it.
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Param        request body dto.TemplateRequest true "Template"
// @Success      200 {object} response.SuccessResponse{data=dto.TemplateResponse}
// @Router       /templates/{templateId} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "templateId", "template")
	if !ok {
		return
	}

	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	template, err := h.templateService.SaveTemplate(c.Request.Context(), principal, &templateID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}

// ReplaceFields godoc
// @Summary      Replace a template's field list
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Param        request body dto.ReplaceFieldsRequest true "Fields"
// @Success      200 {object} response.SuccessResponse{data=dto.TemplateResponse}
// @Router       /templates/{templateId}/fields [put]
func (h *TemplateHandler) ReplaceFields(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "templateId", "template")
	if !ok {
		return
	}

	var req dto.ReplaceFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	template, err := h.templateService.ReplaceFields(c.Request.Context(), principal, templateID, req.Fields)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}

// SetActive godoc
// @Summary      Toggle whether a template is offered for new steps
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Param        request body dto.SetActiveRequest true "Flag"
// @Success      200 {object} response.SuccessResponse
// @Router       /templates/{templateId}/active [patch]
func (h *TemplateHandler) SetActive(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "templateId", "template")
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "is_active is required")
		return
	}

	if err := h.templateService.SetActive(c.Request.Context(), principal, templateID, *req.IsActive); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"template_id": templateID, "is_active": *req.IsActive})
}

// DeleteTemplate godoc
// @Summary      Delete an unused template
// @Tags         templates
// @Param        templateId path string true "Template ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      409 {object} response.ErrorResponse "Template has recorded steps"
// @Router       /templates/{templateId} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "templateId", "template")
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), principal, templateID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}

// ValidateFields godoc
// @Summary      Check field definitions without saving them
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        request body dto.ReplaceFieldsRequest true "Fields"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse
// @Router       /templates/validate [post]
func (h *TemplateHandler) ValidateFields(c *gin.Context) {
	var req dto.ReplaceFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	fields, errs := formschema.ValidateDefinitions(req.Fields)
	if len(errs) > 0 {
		response.SendErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field definitions", errs)
		return
	}

	response.SendSuccess(c, http.StatusOK, fields)
}
