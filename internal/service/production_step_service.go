package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/metrics"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/payload"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/repository"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
)

// ProductionStepService defines the interface for production step business logic
type ProductionStepService interface {
	RecordStep(ctx context.Context, principal domain.Principal, rocketID uuid.UUID, req *dto.RecordStepRequest) (*dto.StepResponse, error)
	UpdateStep(ctx context.Context, principal domain.Principal, stepID uuid.UUID, req *dto.UpdateStepRequest) (*dto.StepResponse, error)
	GetStep(ctx context.Context, stepID uuid.UUID) (*dto.StepResponse, error)
	ListStepsByRocket(ctx context.Context, rocketID uuid.UUID) ([]*dto.StepResponse, error)
	DeleteStep(ctx context.Context, principal domain.Principal, stepID uuid.UUID) error
}

// productionStepServiceImpl is the implementation of ProductionStepService
type productionStepServiceImpl struct {
	stepRepo     repository.ProductionStepRepository
	templateRepo repository.StepTemplateRepository
	rocketRepo   repository.RocketRepository
	metrics      *metrics.Metrics
	logger       *zap.Logger
	now          func() time.Time
}

// NewProductionStepService creates a new instance of ProductionStepService
func NewProductionStepService(
	stepRepo repository.ProductionStepRepository,
	templateRepo repository.StepTemplateRepository,
	rocketRepo repository.RocketRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) ProductionStepService {
	return &productionStepServiceImpl{
		stepRepo:     stepRepo,
		templateRepo: templateRepo,
		rocketRepo:   rocketRepo,
		metrics:      m,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RecordStep validates a submission against an active template and stores it
// as a new production step on the rocket
func (s *productionStepServiceImpl) RecordStep(ctx context.Context, principal domain.Principal, rocketID uuid.UUID, req *dto.RecordStepRequest) (*dto.StepResponse, error) {
	if !principal.CanRecordSteps() {
		return nil, response.NewForbiddenError("You do not have permission to record production steps", "")
	}

	if _, err := s.rocketRepo.FindByID(ctx, rocketID); err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Rocket not found", rocketID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch rocket", err, zap.String("rocket_id", rocketID.String()))
	}

	template, err := s.templateRepo.FindByIDWithFields(ctx, req.TemplateID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Template not found", req.TemplateID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch template", err, zap.String("template_id", req.TemplateID.String()))
	}
	if !template.IsActive {
		return nil, response.NewValidationError("Template is not active", template.Name)
	}

	fields := toSchemaFields(template.Fields)
	values, appErr := s.validate(fields, req.StepData)
	if appErr != nil {
		return nil, appErr
	}

	step := &domain.ProductionStep{
		RocketID:   rocketID,
		TemplateID: &template.ID,
		StepName:   template.Name,
		RecordedBy: principal.UserID,
		RecordedAt: s.now(),
	}
	step.Data, err = payload.Encode(formschema.Coerce(fields, values), metadataFor(step))
	if err != nil {
		return nil, internalError(s.logger, "Failed to encode step data", err)
	}

	if err := s.stepRepo.Create(ctx, step); err != nil {
		return nil, internalError(s.logger, "Failed to record production step", err,
			zap.String("rocket_id", rocketID.String()),
			zap.String("template_id", template.ID.String()),
		)
	}

	if s.metrics != nil {
		s.metrics.IncrementStepRecorded(metrics.OperationCreate)
	}
	s.logger.Info("Production step recorded",
		zap.String("step_id", step.ID.String()),
		zap.String("rocket_id", rocketID.String()),
		zap.String("step_name", step.StepName),
		zap.String("recorded_by", principal.UserID.String()),
	)

	return toStepResponse(step, payload.Decode(step.Data)), nil
}

// UpdateStep re-validates new values against the step's template and rewrites
// the payload. The step name, recorder and timestamp are kept.
func (s *productionStepServiceImpl) UpdateStep(ctx context.Context, principal domain.Principal, stepID uuid.UUID, req *dto.UpdateStepRequest) (*dto.StepResponse, error) {
	step, err := s.stepRepo.FindByID(ctx, stepID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Production step not found", stepID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch production step", err, zap.String("step_id", stepID.String()))
	}

	if step.RecordedBy != principal.UserID && !principal.CanManageTemplates() {
		return nil, response.NewForbiddenError("Only the recorder, an engineer or an administrator can edit this step", "")
	}
	if !principal.CanRecordSteps() {
		return nil, response.NewForbiddenError("You do not have permission to edit production steps", "")
	}
	if step.TemplateID == nil {
		return nil, response.NewConflictError("Step has no template and cannot be edited", stepID.String())
	}

	template, err := s.templateRepo.FindByIDWithFields(ctx, *step.TemplateID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewConflictError("The template for this step no longer exists", step.TemplateID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch template", err, zap.String("template_id", step.TemplateID.String()))
	}

	fields := toSchemaFields(template.Fields)
	values, appErr := s.validate(fields, req.StepData)
	if appErr != nil {
		return nil, appErr
	}

	step.Data, err = payload.Encode(formschema.Coerce(fields, values), metadataFor(step))
	if err != nil {
		return nil, internalError(s.logger, "Failed to encode step data", err)
	}

	if err := s.stepRepo.Update(ctx, step); err != nil {
		return nil, internalError(s.logger, "Failed to update production step", err, zap.String("step_id", stepID.String()))
	}

	if s.metrics != nil {
		s.metrics.IncrementStepRecorded(metrics.OperationUpdate)
	}

	return toStepResponse(step, payload.Decode(step.Data)), nil
}

// GetStep returns a step with its payload decoded. Corrupt payloads are
// returned in their fallback form rather than failing the request.
func (s *productionStepServiceImpl) GetStep(ctx context.Context, stepID uuid.UUID) (*dto.StepResponse, error) {
	step, err := s.stepRepo.FindByID(ctx, stepID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Production step not found", stepID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch production step", err, zap.String("step_id", stepID.String()))
	}
	return toStepResponse(step, s.decode(step)), nil
}

// ListStepsByRocket returns the rocket's steps, newest first
func (s *productionStepServiceImpl) ListStepsByRocket(ctx context.Context, rocketID uuid.UUID) ([]*dto.StepResponse, error) {
	if _, err := s.rocketRepo.FindByID(ctx, rocketID); err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Rocket not found", rocketID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch rocket", err, zap.String("rocket_id", rocketID.String()))
	}

	steps, err := s.stepRepo.FindByRocketID(ctx, rocketID)
	if err != nil {
		return nil, internalError(s.logger, "Failed to fetch production steps", err, zap.String("rocket_id", rocketID.String()))
	}

	out := make([]*dto.StepResponse, 0, len(steps))
	for _, step := range steps {
		out = append(out, toStepResponse(step, s.decode(step)))
	}
	return out, nil
}

// DeleteStep removes a step and its approvals. Administrators only.
func (s *productionStepServiceImpl) DeleteStep(ctx context.Context, principal domain.Principal, stepID uuid.UUID) error {
	if !principal.HasRole(domain.RoleAdmin) {
		return response.NewForbiddenError("Only administrators can delete production steps", "")
	}

	if err := s.stepRepo.Delete(ctx, stepID); err != nil {
		if isNotFound(err) {
			return response.NewNotFoundError("Production step not found", stepID.String())
		}
		return internalError(s.logger, "Failed to delete production step", err, zap.String("step_id", stepID.String()))
	}

	s.logger.Info("Production step deleted",
		zap.String("step_id", stepID.String()),
		zap.String("deleted_by", principal.UserID.String()),
	)
	return nil
}

// validate normalises raw submitted values and checks them against fields.
// The returned AppError wraps every FieldError so callers can match kinds with errors.Is.
func (s *productionStepServiceImpl) validate(fields []formschema.Field, raw map[string]string) (map[string]string, *response.AppError) {
	values := formschema.NormalizeSubmission(raw)
	fieldErrs := formschema.ValidateSubmission(fields, values)
	if len(fieldErrs) == 0 {
		return values, nil
	}

	if s.metrics != nil {
		s.metrics.IncrementValidationFailure(metrics.ValidationSubmission)
	}
	causes := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		causes = append(causes, fe)
	}
	return nil, response.NewValidationErrors("Step data is invalid", formschema.Messages(fieldErrs)).
		WithCause(errors.Join(causes...))
}

func (s *productionStepServiceImpl) decode(step *domain.ProductionStep) payload.Data {
	data := payload.Decode(step.Data)
	if data.IsMalformed() {
		if s.metrics != nil {
			s.metrics.IncrementPayloadFallback()
		}
		s.logger.Warn("Stored step payload is not valid JSON",
			zap.String("step_id", step.ID.String()),
		)
	}
	return data
}

func metadataFor(step *domain.ProductionStep) payload.Metadata {
	meta := payload.Metadata{
		StepName:   step.StepName,
		RecordedAt: step.RecordedAt,
		RecordedBy: step.RecordedBy,
	}
	if step.TemplateID != nil {
		meta.TemplateID = *step.TemplateID
	}
	return meta
}
