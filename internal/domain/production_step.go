package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductionStep records one performance of a template-defined step on a rocket.
// StepName is copied from the template at submission time so later renames do
// not rewrite history. Data is the JSON payload string and may be corrupt for
// rows written before validation existed.
type ProductionStep struct {
	BaseModel
	RocketID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_production_steps_rocket_id" json:"rocket_id"`
	TemplateID *uuid.UUID `gorm:"type:uuid;index:idx_production_steps_template_id" json:"template_id"`
	StepName   string     `gorm:"type:varchar(255);not null" json:"step_name"`
	RecordedBy uuid.UUID  `gorm:"type:uuid;not null;index:idx_production_steps_recorded_by" json:"recorded_by"`
	RecordedAt time.Time  `gorm:"type:timestamp;not null;index:idx_production_steps_recorded_at" json:"recorded_at"`
	Data       string     `gorm:"type:text;not null" json:"data_json"`
	Approvals  []Approval `gorm:"foreignKey:StepID;constraint:OnDelete:CASCADE" json:"approvals,omitempty"`
}

// TableName specifies the table name for ProductionStep
func (ProductionStep) TableName() string {
	return "production_steps"
}
