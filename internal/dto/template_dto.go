package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
)

// TemplateRequest is the body for creating or saving a step template.
// A nil Fields slice leaves the field list untouched; an empty slice clears it.
type TemplateRequest struct {
	StepName        string                  `json:"step_name"`
	StepDescription string                  `json:"step_description"`
	IsActive        *bool                   `json:"is_active"`
	Fields          []formschema.Definition `json:"fields"`
}

// ReplaceFieldsRequest is the body for replacing a template's field list
type ReplaceFieldsRequest struct {
	Fields []formschema.Definition `json:"fields"`
}

// SetActiveRequest toggles a template's active flag
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// FieldResponse represents one template field.
// Options is null for every type except select.
type FieldResponse struct {
	FieldID      uuid.UUID `json:"field_id"`
	FieldLabel   string    `json:"field_label"`
	FieldName    string    `json:"field_name"`
	FieldType    string    `json:"field_type"`
	IsRequired   bool      `json:"is_required"`
	DisplayOrder int       `json:"display_order"`
	Options      []string  `json:"options"`
}

// TemplateResponse represents a template with its ordered fields
type TemplateResponse struct {
	TemplateID      uuid.UUID       `json:"template_id"`
	StepName        string          `json:"step_name"`
	StepDescription string          `json:"step_description"`
	IsActive        bool            `json:"is_active"`
	CreatedBy       uuid.UUID       `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Fields          []FieldResponse `json:"fields"`
}

// TemplateSummaryResponse is a template without its fields, used in listings
type TemplateSummaryResponse struct {
	TemplateID      uuid.UUID `json:"template_id"`
	StepName        string    `json:"step_name"`
	StepDescription string    `json:"step_description"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}
