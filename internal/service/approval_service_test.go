package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
)

func TestReview_RecordsOncePerReviewer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rocket, tpl := seedMotorInspection(t, env)

	step, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData:   map[string]string{"result": "Pass"},
	})
	require.NoError(t, err)

	approval, err := env.approvals.Review(ctx, engineer, step.StepID, &dto.ReviewRequest{Status: "Approved", Comments: " looks good "})
	require.NoError(t, err)
	assert.Equal(t, "approved", approval.Status)
	assert.Equal(t, "looks good", approval.Comments)
	assert.Equal(t, engineer.UserID, approval.ReviewerID)

	_, err = env.approvals.Review(ctx, engineer, step.StepID, &dto.ReviewRequest{Status: "rejected"})
	assert.True(t, response.IsCode(err, response.ErrCodeAlreadyExists))

	_, err = env.approvals.Review(ctx, admin, step.StepID, &dto.ReviewRequest{Status: "rejected", Comments: "seal scratched"})
	require.NoError(t, err)

	list, err := env.approvals.ListApprovals(ctx, step.StepID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	got, err := env.steps.GetStep(ctx, step.StepID)
	require.NoError(t, err)
	assert.Len(t, got.Approvals, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ApprovalsRecordedTotal.WithLabelValues("approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ApprovalsRecordedTotal.WithLabelValues("rejected")))
}

func TestReview_Validation(t *testing.T) {
	stepRepo := &MockProductionStepRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ProductionStep, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewApprovalService(&MockApprovalRepository{}, stepRepo, nil, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name      string
		principal domain.Principal
		status    string
		wantCode  string
	}{
		{"staff cannot review", staff, "approved", response.ErrCodeForbidden},
		{"viewer cannot review", viewer, "approved", response.ErrCodeForbidden},
		{"unknown status", engineer, "pending", response.ErrCodeValidation},
		{"missing step", engineer, "approved", response.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Review(ctx, tt.principal, uuid.New(), &dto.ReviewRequest{Status: tt.status})
			assert.True(t, response.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestReview_UniqueViolationMapsToDuplicate(t *testing.T) {
	stepRepo := &MockProductionStepRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ProductionStep, error) {
			return &domain.ProductionStep{BaseModel: domain.BaseModel{ID: id}}, nil
		},
	}
	approvalRepo := &MockApprovalRepository{
		CreateFunc: func(ctx context.Context, approval *domain.Approval) error {
			return gorm.ErrDuplicatedKey
		},
	}
	svc := NewApprovalService(approvalRepo, stepRepo, nil, zap.NewNop())

	_, err := svc.Review(context.Background(), admin, uuid.New(), &dto.ReviewRequest{Status: "approved"})
	assert.True(t, response.IsCode(err, response.ErrCodeAlreadyExists))
}
