package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/service"
)

// ApprovalHandler serves reviews of production steps
type ApprovalHandler struct {
	approvalService service.ApprovalService
	logger          *zap.Logger
}

// NewApprovalHandler creates a new ApprovalHandler
func NewApprovalHandler(approvalService service.ApprovalService, logger *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
		logger:          logger,
	}
}

// Review godoc
// @Summary      Approve or reject a production step
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        stepId path string true "Step ID (UUID)"
// @Param        request body dto.ReviewRequest true "Decision"
// @Success      201 {object} response.SuccessResponse{data=dto.ApprovalResponse}
// @Failure      409 {object} response.ErrorResponse "Already reviewed"
// @Router       /steps/{stepId}/approvals [post]
func (h *ApprovalHandler) Review(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	stepID, ok := parseIDParam(c, "stepId", "step")
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "status must be 'approved' or 'rejected'")
		return
	}

	approval, err := h.approvalService.Review(c.Request.Context(), principal, stepID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, approval)
}

// ListApprovals godoc
// @Summary      List the reviews of a production step
// @Tags         approvals
// @Produce      json
// @Param        stepId path string true "Step ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ApprovalResponse}
// @Router       /steps/{stepId}/approvals [get]
func (h *ApprovalHandler) ListApprovals(c *gin.Context) {
	stepID, ok := parseIDParam(c, "stepId", "step")
	if !ok {
		return
	}

	approvals, err := h.approvalService.ListApprovals(c.Request.Context(), stepID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, approvals)
}
