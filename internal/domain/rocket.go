package domain

import "github.com/google/uuid"

// RocketStatus represents the production status of a rocket
type RocketStatus string

const (
	RocketStatusPlanning     RocketStatus = "planning"
	RocketStatusInProduction RocketStatus = "in_production"
	RocketStatusTesting      RocketStatus = "testing"
	RocketStatusCompleted    RocketStatus = "completed"
	RocketStatusOnHold       RocketStatus = "on_hold"
)

// IsValid reports whether the status is one of the known statuses
func (s RocketStatus) IsValid() bool {
	switch s {
	case RocketStatusPlanning, RocketStatusInProduction, RocketStatusTesting, RocketStatusCompleted, RocketStatusOnHold:
		return true
	default:
		return false
	}
}

// Rocket represents a rocket under production
type Rocket struct {
	BaseModel
	SerialNumber string           `gorm:"type:varchar(100);not null;uniqueIndex:uq_rockets_serial_number" json:"serial_number"`
	Name         string           `gorm:"type:varchar(255);not null" json:"project_name"`
	Status       RocketStatus     `gorm:"type:varchar(50);not null;index:idx_rockets_status" json:"current_status"`
	CreatedBy    uuid.UUID        `gorm:"type:uuid;not null" json:"created_by"`
	Steps        []ProductionStep `gorm:"foreignKey:RocketID;constraint:OnDelete:CASCADE" json:"steps,omitempty"`
}

// TableName specifies the table name for Rocket
func (Rocket) TableName() string {
	return "rockets"
}
