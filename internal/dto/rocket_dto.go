package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateRocketRequest represents the request to register a rocket
type CreateRocketRequest struct {
	SerialNumber string `json:"serial_number" binding:"required,max=100"`
	ProjectName  string `json:"project_name" binding:"required,max=255"`
	Status       string `json:"current_status" binding:"omitempty,oneof=planning in_production testing completed on_hold"`
}

// UpdateRocketStatusRequest represents the request to change a rocket's status
type UpdateRocketStatusRequest struct {
	Status string `json:"current_status" binding:"required,oneof=planning in_production testing completed on_hold"`
}

// RocketResponse represents a rocket
type RocketResponse struct {
	RocketID     uuid.UUID `json:"rocket_id"`
	SerialNumber string    `json:"serial_number"`
	ProjectName  string    `json:"project_name"`
	Status       string    `json:"current_status"`
	CreatedBy    uuid.UUID `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
