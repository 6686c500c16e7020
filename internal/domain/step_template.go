package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FieldType represents the input type of a template field
type FieldType string

// FieldType constants
const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
)

// FieldTypes lists every supported field type in display order
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeNumber,
	FieldTypeDate,
	FieldTypeEmail,
	FieldTypeTextarea,
	FieldTypeSelect,
}

// IsValid reports whether the field type is one of the supported types
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeEmail, FieldTypeTextarea, FieldTypeSelect:
		return true
	default:
		return false
	}
}

// HasOptions reports whether fields of this type carry an options list
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect
}

// StepTemplate is a named, reusable schema for one kind of production step
type StepTemplate struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_step_templates_name" json:"step_name"`
	Description string          `gorm:"type:text" json:"step_description"`
	IsActive    bool            `gorm:"not null;index:idx_step_templates_is_active" json:"is_active"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null;index:idx_step_templates_created_by" json:"created_by"`
	Fields      []TemplateField `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"fields,omitempty"`
}

// TableName specifies the table name for StepTemplate
func (StepTemplate) TableName() string {
	return "step_templates"
}

// TemplateField is one typed, orderable input slot within a StepTemplate.
// Options holds a JSON array string and is NULL for every type except select.
type TemplateField struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"field_id"`
	TemplateID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_template_fields_template_order,priority:1;uniqueIndex:uq_template_fields_template_name,priority:1" json:"template_id"`
	Label        string         `gorm:"type:varchar(255);not null" json:"field_label"`
	Name         string         `gorm:"type:varchar(100);not null;uniqueIndex:uq_template_fields_template_name,priority:2" json:"field_name"`
	Type         FieldType      `gorm:"type:varchar(20);not null" json:"field_type"`
	IsRequired   bool           `gorm:"not null;default:false" json:"is_required"`
	DisplayOrder int            `gorm:"type:int;not null;default:0;index:idx_template_fields_template_order,priority:2" json:"display_order"`
	Options      datatypes.JSON `json:"options_json,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for TemplateField
func (TemplateField) TableName() string {
	return "template_fields"
}

// BeforeCreate assigns a UUID when the caller did not set one
func (f *TemplateField) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
