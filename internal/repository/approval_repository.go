package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
)

// ApprovalRepository defines the interface for approval data access
type ApprovalRepository interface {
	Create(ctx context.Context, approval *domain.Approval) error
	FindByStepAndReviewer(ctx context.Context, stepID, reviewerID uuid.UUID) (*domain.Approval, error)
	FindByStepID(ctx context.Context, stepID uuid.UUID) ([]*domain.Approval, error)
}

type approvalRepositoryImpl struct {
	db *gorm.DB
}

// NewApprovalRepository creates a new instance of ApprovalRepository
func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepositoryImpl{db: db}
}

func (r *approvalRepositoryImpl) Create(ctx context.Context, approval *domain.Approval) error {
	return r.db.WithContext(ctx).Create(approval).Error
}

// FindByStepAndReviewer returns nil, nil when the reviewer has not reviewed the step
func (r *approvalRepositoryImpl) FindByStepAndReviewer(ctx context.Context, stepID, reviewerID uuid.UUID) (*domain.Approval, error) {
	var approval domain.Approval
	if err := r.db.WithContext(ctx).
		Where("step_id = ? AND reviewer_id = ?", stepID, reviewerID).
		First(&approval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepositoryImpl) FindByStepID(ctx context.Context, stepID uuid.UUID) ([]*domain.Approval, error) {
	var approvals []*domain.Approval
	if err := r.db.WithContext(ctx).
		Where("step_id = ?", stepID).
		Order("approved_at ASC").
		Find(&approvals).Error; err != nil {
		return nil, err
	}
	return approvals, nil
}
