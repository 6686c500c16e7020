package dto

import (
	"time"

	"github.com/google/uuid"
)

// ReviewRequest records a reviewer's decision on a production step
type ReviewRequest struct {
	Status   string `json:"status" binding:"required,oneof=approved rejected"`
	Comments string `json:"comments" binding:"max=2000"`
}

// ApprovalResponse represents a single review decision
type ApprovalResponse struct {
	ApprovalID uuid.UUID `json:"approval_id"`
	StepID     uuid.UUID `json:"step_id"`
	ReviewerID uuid.UUID `json:"user_id"`
	Status     string    `json:"status"`
	Comments   string    `json:"comments"`
	ApprovedAt time.Time `json:"approved_at"`
}
