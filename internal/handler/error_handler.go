package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/middleware"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
)

// handleServiceError maps service layer errors to appropriate HTTP responses.
// Details and causes stay in the log; clients only see code, message and the
// validation list.
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		statusCode := mapErrorCodeToHTTPStatus(appErr.Code)
		if statusCode >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("code", appErr.Code),
				zap.String("message", appErr.Message),
				zap.String("details", appErr.Details),
				zap.String("path", c.Request.URL.Path),
			)
		}
		response.SendErrorWithDetails(c, statusCode, appErr.Code, appErr.Message, appErr.Errors)
		return
	}

	logger.Error("Unhandled service error",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)
	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeNotFound:
		return http.StatusNotFound
	case response.ErrCodeAlreadyExists, response.ErrCodeConflict:
		return http.StatusConflict
	case response.ErrCodeValidation:
		return http.StatusBadRequest
	case response.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case response.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// requirePrincipal returns the authenticated principal or writes a 401
func requirePrincipal(c *gin.Context) (domain.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return domain.Principal{}, false
	}
	return principal, true
}

// parseIDParam parses a UUID path parameter or writes a 400
func parseIDParam(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
