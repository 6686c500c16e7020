package response

import (
	"errors"
	"fmt"
)

// Error codes shared by services and handlers
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// AppError is the error type returned by the service layer.
// Details and Cause are for server-side logs only and are never sent to clients.
type AppError struct {
	Code    string
	Message string
	Details string
	Errors  []string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause attaches the underlying error and returns e
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewValidationErrors creates a validation error carrying every human-readable problem
func NewValidationErrors(message string, errs []string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Errors:  errs,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// NewAlreadyExistsError creates a duplicate error
func NewAlreadyExistsError(message, details string) *AppError {
	return NewAppError(ErrCodeAlreadyExists, message, details)
}

// NewConflictError creates a conflict error
func NewConflictError(message, details string) *AppError {
	return NewAppError(ErrCodeConflict, message, details)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message, details string) *AppError {
	return NewAppError(ErrCodeForbidden, message, details)
}

// IsCode reports whether err is an AppError with the given code
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
