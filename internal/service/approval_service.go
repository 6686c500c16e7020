package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/metrics"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/repository"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
)

// ApprovalService defines the interface for reviewing production steps
type ApprovalService interface {
	Review(ctx context.Context, principal domain.Principal, stepID uuid.UUID, req *dto.ReviewRequest) (*dto.ApprovalResponse, error)
	ListApprovals(ctx context.Context, stepID uuid.UUID) ([]dto.ApprovalResponse, error)
}

type approvalServiceImpl struct {
	approvalRepo repository.ApprovalRepository
	stepRepo     repository.ProductionStepRepository
	metrics      *metrics.Metrics
	logger       *zap.Logger
	now          func() time.Time
}

// NewApprovalService creates a new instance of ApprovalService
func NewApprovalService(
	approvalRepo repository.ApprovalRepository,
	stepRepo repository.ProductionStepRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) ApprovalService {
	return &approvalServiceImpl{
		approvalRepo: approvalRepo,
		stepRepo:     stepRepo,
		metrics:      m,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Review records a reviewer's decision. Each reviewer decides once per step.
func (s *approvalServiceImpl) Review(ctx context.Context, principal domain.Principal, stepID uuid.UUID, req *dto.ReviewRequest) (*dto.ApprovalResponse, error) {
	if !principal.CanReview() {
		return nil, response.NewForbiddenError("Only administrators and engineers can review production steps", "")
	}

	status := domain.ApprovalStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.IsValid() {
		return nil, response.NewValidationError("Status must be 'approved' or 'rejected'", req.Status)
	}

	if _, err := s.stepRepo.FindByID(ctx, stepID); err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Production step not found", stepID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch production step", err, zap.String("step_id", stepID.String()))
	}

	existing, err := s.approvalRepo.FindByStepAndReviewer(ctx, stepID, principal.UserID)
	if err != nil {
		return nil, internalError(s.logger, "Failed to check existing review", err)
	}
	if existing != nil {
		return nil, alreadyReviewed(stepID)
	}

	approval := &domain.Approval{
		StepID:     stepID,
		ReviewerID: principal.UserID,
		Status:     status,
		Comments:   strings.TrimSpace(req.Comments),
		ApprovedAt: s.now(),
	}
	if err := s.approvalRepo.Create(ctx, approval); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, alreadyReviewed(stepID)
		}
		return nil, internalError(s.logger, "Failed to record review", err, zap.String("step_id", stepID.String()))
	}

	if s.metrics != nil {
		s.metrics.IncrementApproval(string(status))
	}
	s.logger.Info("Production step reviewed",
		zap.String("step_id", stepID.String()),
		zap.String("reviewer_id", principal.UserID.String()),
		zap.String("status", string(status)),
	)

	resp := toApprovalResponse(approval)
	return &resp, nil
}

// ListApprovals returns the decisions recorded for a step, oldest first
func (s *approvalServiceImpl) ListApprovals(ctx context.Context, stepID uuid.UUID) ([]dto.ApprovalResponse, error) {
	if _, err := s.stepRepo.FindByID(ctx, stepID); err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Production step not found", stepID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch production step", err, zap.String("step_id", stepID.String()))
	}

	approvals, err := s.approvalRepo.FindByStepID(ctx, stepID)
	if err != nil {
		return nil, internalError(s.logger, "Failed to fetch reviews", err, zap.String("step_id", stepID.String()))
	}
	out := make([]dto.ApprovalResponse, 0, len(approvals))
	for _, a := range approvals {
		out = append(out, toApprovalResponse(a))
	}
	return out, nil
}

func alreadyReviewed(stepID uuid.UUID) *response.AppError {
	return response.NewAlreadyExistsError("You have already reviewed this production step", stepID.String())
}
