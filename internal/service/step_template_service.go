package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/metrics"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/repository"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
)

// StepTemplateService defines the interface for step template business logic
type StepTemplateService interface {
	CreateTemplate(ctx context.Context, principal domain.Principal, req *dto.TemplateRequest) (*dto.TemplateResponse, error)
	UpdateTemplate(ctx context.Context, principal domain.Principal, templateID uuid.UUID, req *dto.TemplateRequest) (*dto.TemplateResponse, error)
	ReplaceFields(ctx context.Context, principal domain.Principal, templateID uuid.UUID, defs []formschema.Definition) (*dto.TemplateResponse, error)
	SaveTemplate(ctx context.Context, principal domain.Principal, templateID *uuid.UUID, req *dto.TemplateRequest) (*dto.TemplateResponse, error)
	SetActive(ctx context.Context, principal domain.Principal, templateID uuid.UUID, active bool) error
	DeleteTemplate(ctx context.Context, principal domain.Principal, templateID uuid.UUID) error
	GetTemplateWithFields(ctx context.Context, templateID uuid.UUID) (*dto.TemplateResponse, error)
	ListActiveTemplates(ctx context.Context) ([]*dto.TemplateSummaryResponse, error)
	ListTemplates(ctx context.Context, principal domain.Principal) ([]*dto.TemplateSummaryResponse, error)
	GetSchema(ctx context.Context, templateID uuid.UUID) (*domain.StepTemplate, []formschema.Field, error)
}

// stepTemplateServiceImpl is the implementation of StepTemplateService
type stepTemplateServiceImpl struct {
	templateRepo repository.StepTemplateRepository
	stepRepo     repository.ProductionStepRepository
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewStepTemplateService creates a new instance of StepTemplateService
func NewStepTemplateService(
	templateRepo repository.StepTemplateRepository,
	stepRepo repository.ProductionStepRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) StepTemplateService {
	return &stepTemplateServiceImpl{
		templateRepo: templateRepo,
		stepRepo:     stepRepo,
		metrics:      m,
		logger:       logger,
	}
}

var errManageTemplates = response.NewForbiddenError("Only administrators and engineers can manage step templates", "")

// CreateTemplate creates a template without fields
func (s *stepTemplateServiceImpl) CreateTemplate(ctx context.Context, principal domain.Principal, req *dto.TemplateRequest) (*dto.TemplateResponse, error) {
	if !principal.CanManageTemplates() {
		return nil, errManageTemplates
	}

	name := strings.TrimSpace(req.StepName)
	if name == "" {
		return nil, response.NewValidationErrors("Invalid template", []string{"Step name is required"})
	}
	if err := s.ensureNameAvailable(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	template := &domain.StepTemplate{
		Name:        name,
		Description: strings.TrimSpace(req.StepDescription),
		IsActive:    activeOrDefault(req.IsActive, true),
		CreatedBy:   principal.UserID,
	}

	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, s.mapWriteError(err, name, "Failed to create template")
	}

	if s.metrics != nil {
		s.metrics.IncrementTemplateSaved(metrics.OperationCreate)
	}
	s.logger.Info("Step template created",
		zap.String("template_id", template.ID.String()),
		zap.String("name", name),
		zap.String("created_by", principal.UserID.String()),
	)

	return toTemplateResponse(template), nil
}

// UpdateTemplate renames or re-describes a template; fields are left as they are
func (s *stepTemplateServiceImpl) UpdateTemplate(ctx context.Context, principal domain.Principal, templateID uuid.UUID, req *dto.TemplateRequest) (*dto.TemplateResponse, error) {
	if !principal.CanManageTemplates() {
		return nil, errManageTemplates
	}

	name := strings.TrimSpace(req.StepName)
	if name == "" {
		return nil, response.NewValidationErrors("Invalid template", []string{"Step name is required"})
	}

	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Template not found", templateID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch template", err, zap.String("template_id", templateID.String()))
	}

	if name != template.Name {
		if err := s.ensureNameAvailable(ctx, name, template.ID); err != nil {
			return nil, err
		}
	}

	template.Name = name
	template.Description = strings.TrimSpace(req.StepDescription)
	template.IsActive = activeOrDefault(req.IsActive, template.IsActive)

	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, s.mapWriteError(err, name, "Failed to update template")
	}

	if s.metrics != nil {
		s.metrics.IncrementTemplateSaved(metrics.OperationUpdate)
	}

	return s.GetTemplateWithFields(ctx, template.ID)
}

// ReplaceFields validates every definition and then swaps the whole field list in one transaction
func (s *stepTemplateServiceImpl) ReplaceFields(ctx context.Context, principal domain.Principal, templateID uuid.UUID, defs []formschema.Definition) (*dto.TemplateResponse, error) {
	if !principal.CanManageTemplates() {
		return nil, errManageTemplates
	}

	if _, err := s.templateRepo.FindByID(ctx, templateID); err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Template not found", templateID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch template", err, zap.String("template_id", templateID.String()))
	}

	fields, errs := formschema.ValidateDefinitions(defs)
	if len(errs) > 0 {
		if s.metrics != nil {
			s.metrics.IncrementValidationFailure(metrics.ValidationTemplate)
		}
		return nil, response.NewValidationErrors("Invalid field definitions", errs)
	}

	rows, err := toFieldRows(fields)
	if err != nil {
		return nil, internalError(s.logger, "Failed to encode field options", err)
	}

	if err := s.templateRepo.ReplaceFields(ctx, templateID, rows); err != nil {
		return nil, internalError(s.logger, "Failed to replace template fields", err,
			zap.String("template_id", templateID.String()),
			zap.Int("field_count", len(rows)),
		)
	}

	if s.metrics != nil {
		s.metrics.IncrementFieldsReplaced()
	}

	return s.GetTemplateWithFields(ctx, templateID)
}

// SaveTemplate creates (templateID == nil) or updates a template together with
// its complete field list in a single transaction. Name and field problems are
// reported together.
func (s *stepTemplateServiceImpl) SaveTemplate(ctx context.Context, principal domain.Principal, templateID *uuid.UUID, req *dto.TemplateRequest) (*dto.TemplateResponse, error) {
	if !principal.CanManageTemplates() {
		return nil, errManageTemplates
	}

	name := strings.TrimSpace(req.StepName)
	var errs []string
	if name == "" {
		errs = append(errs, "Step name is required")
	}
	fields, fieldErrs := formschema.ValidateDefinitions(req.Fields)
	errs = append(errs, fieldErrs...)
	if len(errs) > 0 {
		if s.metrics != nil {
			s.metrics.IncrementValidationFailure(metrics.ValidationTemplate)
		}
		return nil, response.NewValidationErrors("Invalid template", errs)
	}

	isNew := templateID == nil
	var template *domain.StepTemplate
	if isNew {
		if err := s.ensureNameAvailable(ctx, name, uuid.Nil); err != nil {
			return nil, err
		}
		template = &domain.StepTemplate{
			IsActive:  activeOrDefault(req.IsActive, true),
			CreatedBy: principal.UserID,
		}
	} else {
		existing, err := s.templateRepo.FindByID(ctx, *templateID)
		if err != nil {
			if isNotFound(err) {
				return nil, response.NewNotFoundError("Template not found", templateID.String())
			}
			return nil, internalError(s.logger, "Failed to fetch template", err, zap.String("template_id", templateID.String()))
		}
		if name != existing.Name {
			if err := s.ensureNameAvailable(ctx, name, existing.ID); err != nil {
				return nil, err
			}
		}
		template = existing
		template.IsActive = activeOrDefault(req.IsActive, template.IsActive)
	}
	template.Name = name
	template.Description = strings.TrimSpace(req.StepDescription)

	if !isNew && req.Fields == nil {
		if err := s.templateRepo.Update(ctx, template); err != nil {
			return nil, s.mapWriteError(err, name, "Failed to update template")
		}
		if s.metrics != nil {
			s.metrics.IncrementTemplateSaved(metrics.OperationUpdate)
		}
		return s.GetTemplateWithFields(ctx, template.ID)
	}

	rows, err := toFieldRows(fields)
	if err != nil {
		return nil, internalError(s.logger, "Failed to encode field options", err)
	}

	if err := s.templateRepo.SaveWithFields(ctx, template, rows, isNew); err != nil {
		return nil, s.mapWriteError(err, name, "Failed to save template")
	}

	if s.metrics != nil {
		op := metrics.OperationUpdate
		if isNew {
			op = metrics.OperationCreate
		}
		s.metrics.IncrementTemplateSaved(op)
		s.metrics.IncrementFieldsReplaced()
	}
	s.logger.Info("Step template saved",
		zap.String("template_id", template.ID.String()),
		zap.Bool("created", isNew),
		zap.Int("field_count", len(rows)),
	)

	return s.GetTemplateWithFields(ctx, template.ID)
}

// SetActive enables or disables a template for new step submissions
func (s *stepTemplateServiceImpl) SetActive(ctx context.Context, principal domain.Principal, templateID uuid.UUID, active bool) error {
	if !principal.CanManageTemplates() {
		return errManageTemplates
	}

	if err := s.templateRepo.SetActive(ctx, templateID, active); err != nil {
		if isNotFound(err) {
			return response.NewNotFoundError("Template not found", templateID.String())
		}
		return internalError(s.logger, "Failed to change template status", err, zap.String("template_id", templateID.String()))
	}
	return nil
}

// DeleteTemplate removes a template and its fields. Templates referenced by
// recorded steps can only be deactivated.
func (s *stepTemplateServiceImpl) DeleteTemplate(ctx context.Context, principal domain.Principal, templateID uuid.UUID) error {
	if !principal.CanManageTemplates() {
		return errManageTemplates
	}

	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if isNotFound(err) {
			return response.NewNotFoundError("Template not found", templateID.String())
		}
		return internalError(s.logger, "Failed to fetch template", err, zap.String("template_id", templateID.String()))
	}

	count, err := s.stepRepo.CountByTemplateID(ctx, templateID)
	if err != nil {
		return internalError(s.logger, "Failed to check template usage", err, zap.String("template_id", templateID.String()))
	}
	if count > 0 {
		return response.NewConflictError(
			fmt.Sprintf("Template '%s' is used by %d production step(s); deactivate it instead", template.Name, count), "")
	}

	if err := s.templateRepo.Delete(ctx, templateID); err != nil {
		if isNotFound(err) {
			return response.NewNotFoundError("Template not found", templateID.String())
		}
		return internalError(s.logger, "Failed to delete template", err, zap.String("template_id", templateID.String()))
	}

	s.logger.Info("Step template deleted", zap.String("template_id", templateID.String()))
	return nil
}

// GetTemplateWithFields returns a template with fields ascending by display order
func (s *stepTemplateServiceImpl) GetTemplateWithFields(ctx context.Context, templateID uuid.UUID) (*dto.TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDWithFields(ctx, templateID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Template not found", templateID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch template", err, zap.String("template_id", templateID.String()))
	}
	return toTemplateResponse(template), nil
}

// ListActiveTemplates returns the templates offered when recording a step
func (s *stepTemplateServiceImpl) ListActiveTemplates(ctx context.Context) ([]*dto.TemplateSummaryResponse, error) {
	templates, err := s.templateRepo.FindActive(ctx)
	if err != nil {
		return nil, internalError(s.logger, "Failed to fetch templates", err)
	}
	return toTemplateSummaries(templates), nil
}

// ListTemplates returns every template including inactive ones
func (s *stepTemplateServiceImpl) ListTemplates(ctx context.Context, principal domain.Principal) ([]*dto.TemplateSummaryResponse, error) {
	if !principal.CanManageTemplates() {
		return nil, errManageTemplates
	}
	templates, err := s.templateRepo.FindAll(ctx)
	if err != nil {
		return nil, internalError(s.logger, "Failed to fetch templates", err)
	}
	return toTemplateSummaries(templates), nil
}

// GetSchema loads a template and its validator fields
func (s *stepTemplateServiceImpl) GetSchema(ctx context.Context, templateID uuid.UUID) (*domain.StepTemplate, []formschema.Field, error) {
	template, err := s.templateRepo.FindByIDWithFields(ctx, templateID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, response.NewNotFoundError("Template not found", templateID.String())
		}
		return nil, nil, internalError(s.logger, "Failed to fetch template", err, zap.String("template_id", templateID.String()))
	}
	return template, toSchemaFields(template.Fields), nil
}

// ensureNameAvailable fails when a template other than self already holds name
func (s *stepTemplateServiceImpl) ensureNameAvailable(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.templateRepo.FindByName(ctx, name)
	if err != nil {
		return internalError(s.logger, "Failed to check template name", err)
	}
	if existing != nil && existing.ID != self {
		return duplicateName(name)
	}
	return nil
}

// mapWriteError turns a unique violation raced past ensureNameAvailable into a duplicate error
func (s *stepTemplateServiceImpl) mapWriteError(err error, name, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicateName(name)
	}
	return internalError(s.logger, message, err, zap.String("name", name))
}

func duplicateName(name string) *response.AppError {
	return response.NewAlreadyExistsError(fmt.Sprintf("A template named '%s' already exists", name), name)
}

func activeOrDefault(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
