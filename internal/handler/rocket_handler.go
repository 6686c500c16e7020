package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/service"
)

// RocketHandler serves rocket registration and status
type RocketHandler struct {
	rocketService service.RocketService
	logger        *zap.Logger
}

// NewRocketHandler creates a new RocketHandler
func NewRocketHandler(rocketService service.RocketService, logger *zap.Logger) *RocketHandler {
	return &RocketHandler{
		rocketService: rocketService,
		logger:        logger,
	}
}

// CreateRocket godoc
// @Summary      Register a rocket
// @Tags         rockets
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateRocketRequest true "Rocket"
// @Success      201 {object} response.SuccessResponse{data=dto.RocketResponse}
// @Failure      409 {object} response.ErrorResponse "Duplicate serial number"
// @Router       /rockets [post]
func (h *RocketHandler) CreateRocket(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateRocketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	rocket, err := h.rocketService.CreateRocket(c.Request.Context(), principal, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, rocket)
}

// ListRockets godoc
// @Summary      List rockets
// @Tags         rockets
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.RocketResponse}
// @Router       /rockets [get]
func (h *RocketHandler) ListRockets(c *gin.Context) {
	rockets, err := h.rocketService.ListRockets(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, rockets)
}

// GetRocket godoc
// @Summary      Get a rocket
// @Tags         rockets
// @Produce      json
// @Param        rocketId path string true "Rocket ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.RocketResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /rockets/{rocketId} [get]
func (h *RocketHandler) GetRocket(c *gin.Context) {
	rocketID, ok := parseIDParam(c, "rocketId", "rocket")
	if !ok {
		return
	}

	rocket, err := h.rocketService.GetRocket(c.Request.Context(), rocketID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, rocket)
}

// UpdateStatus godoc
// @Summary      Change a rocket's production status
// @Tags         rockets
// @Accept       json
// @Produce      json
// @Param        rocketId path string true "Rocket ID (UUID)"
// @Param        request body dto.UpdateRocketStatusRequest true "Status"
// @Success      200 {object} response.SuccessResponse{data=dto.RocketResponse}
// @Router       /rockets/{rocketId}/status [patch]
func (h *RocketHandler) UpdateStatus(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	rocketID, ok := parseIDParam(c, "rocketId", "rocket")
	if !ok {
		return
	}

	var req dto.UpdateRocketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	rocket, err := h.rocketService.UpdateStatus(c.Request.Context(), principal, rocketID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, rocket)
}
