package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus is the outcome a reviewer records for a production step
type ApprovalStatus string

const (
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsValid reports whether the status is approved or rejected
func (s ApprovalStatus) IsValid() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// Approval is a single review decision, set once per (step, reviewer) pair
type Approval struct {
	BaseModel
	StepID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_approvals_step_reviewer,priority:1" json:"step_id"`
	ReviewerID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_approvals_step_reviewer,priority:2;index:idx_approvals_reviewer_id" json:"user_id"`
	Status     ApprovalStatus `gorm:"type:varchar(20);not null" json:"status"`
	Comments   string         `gorm:"type:text" json:"comments"`
	ApprovedAt time.Time      `gorm:"type:timestamp;not null" json:"approved_at"`
}

// TableName specifies the table name for Approval
func (Approval) TableName() string {
	return "approvals"
}
