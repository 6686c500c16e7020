package response

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewAppError(ErrCodeInternal, "Failed to save template", "connection reset")
	assert.Equal(t, "INTERNAL_ERROR: Failed to save template (connection reset)", err.Error())

	err = NewNotFoundError("Template not found", "")
	assert.Equal(t, "NOT_FOUND: Template not found", err.Error())
}

func TestIsCode(t *testing.T) {
	err := NewValidationErrors("Invalid submission", []string{"Field 'Result' is required"})
	assert.True(t, IsCode(err, ErrCodeValidation))
	assert.False(t, IsCode(err, ErrCodeNotFound))

	wrapped := fmt.Errorf("record step: %w", NewAlreadyExistsError("dup", ""))
	assert.True(t, IsCode(wrapped, ErrCodeAlreadyExists))
	assert.False(t, IsCode(nil, ErrCodeAlreadyExists))
}

func TestAppError_WithCause(t *testing.T) {
	sentinel := errors.New("missing field")
	err := NewValidationErrors("Step data is invalid", []string{"Field 'Result' is required"}).
		WithCause(fmt.Errorf("validate: %w", sentinel))

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "VALIDATION_ERROR: Step data is invalid", err.Error())
}
