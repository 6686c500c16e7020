package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
)

// MockStepTemplateService is a mock implementation of StepTemplateService
type MockStepTemplateService struct {
	CreateTemplateFunc        func(ctx context.Context, principal domain.Principal, req *dto.TemplateRequest) (*dto.TemplateResponse, error)
	UpdateTemplateFunc        func(ctx context.Context, principal domain.Principal, templateID uuid.UUID, req *dto.TemplateRequest) (*dto.TemplateResponse, error)
	ReplaceFieldsFunc         func(ctx context.Context, principal domain.Principal, templateID uuid.UUID, defs []formschema.Definition) (*dto.TemplateResponse, error)
	SaveTemplateFunc          func(ctx context.Context, principal domain.Principal, templateID *uuid.UUID, req *dto.TemplateRequest) (*dto.TemplateResponse, error)
	SetActiveFunc             func(ctx context.Context, principal domain.Principal, templateID uuid.UUID, active bool) error
	DeleteTemplateFunc        func(ctx context.Context, principal domain.Principal, templateID uuid.UUID) error
	GetTemplateWithFieldsFunc func(ctx context.Context, templateID uuid.UUID) (*dto.TemplateResponse, error)
	ListActiveTemplatesFunc   func(ctx context.Context) ([]*dto.TemplateSummaryResponse, error)
	ListTemplatesFunc         func(ctx context.Context, principal domain.Principal) ([]*dto.TemplateSummaryResponse, error)
	GetSchemaFunc             func(ctx context.Context, templateID uuid.UUID) (*domain.StepTemplate, []formschema.Field, error)
}

func (m *MockStepTemplateService) CreateTemplate(ctx context.Context, principal domain.Principal, req *dto.TemplateRequest) (*dto.TemplateResponse, error) {
	if m.CreateTemplateFunc != nil {
		return m.CreateTemplateFunc(ctx, principal, req)
	}
	return nil, nil
}

func (m *MockStepTemplateService) UpdateTemplate(ctx context.Context, principal domain.Principal, templateID uuid.UUID, req *dto.TemplateRequest) (*dto.TemplateResponse, error) {
	if m.UpdateTemplateFunc != nil {
		return m.UpdateTemplateFunc(ctx, principal, templateID, req)
	}
	return nil, nil
}

func (m *MockStepTemplateService) ReplaceFields(ctx context.Context, principal domain.Principal, templateID uuid.UUID, defs []formschema.Definition) (*dto.TemplateResponse, error) {
	if m.ReplaceFieldsFunc != nil {
		return m.ReplaceFieldsFunc(ctx, principal, templateID, defs)
	}
	return nil, nil
}

func (m *MockStepTemplateService) SaveTemplate(ctx context.Context, principal domain.Principal, templateID *uuid.UUID, req *dto.TemplateRequest) (*dto.TemplateResponse, error) {
	if m.SaveTemplateFunc != nil {
		return m.SaveTemplateFunc(ctx, principal, templateID, req)
	}
	return nil, nil
}

func (m *MockStepTemplateService) SetActive(ctx context.Context, principal domain.Principal, templateID uuid.UUID, active bool) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, principal, templateID, active)
	}
	return nil
}

func (m *MockStepTemplateService) DeleteTemplate(ctx context.Context, principal domain.Principal, templateID uuid.UUID) error {
	if m.DeleteTemplateFunc != nil {
		return m.DeleteTemplateFunc(ctx, principal, templateID)
	}
	return nil
}

func (m *MockStepTemplateService) GetTemplateWithFields(ctx context.Context, templateID uuid.UUID) (*dto.TemplateResponse, error) {
	if m.GetTemplateWithFieldsFunc != nil {
		return m.GetTemplateWithFieldsFunc(ctx, templateID)
	}
	return nil, nil
}

func (m *MockStepTemplateService) ListActiveTemplates(ctx context.Context) ([]*dto.TemplateSummaryResponse, error) {
	if m.ListActiveTemplatesFunc != nil {
		return m.ListActiveTemplatesFunc(ctx)
	}
	return nil, nil
}

func (m *MockStepTemplateService) ListTemplates(ctx context.Context, principal domain.Principal) ([]*dto.TemplateSummaryResponse, error) {
	if m.ListTemplatesFunc != nil {
		return m.ListTemplatesFunc(ctx, principal)
	}
	return nil, nil
}

func (m *MockStepTemplateService) GetSchema(ctx context.Context, templateID uuid.UUID) (*domain.StepTemplate, []formschema.Field, error) {
	if m.GetSchemaFunc != nil {
		return m.GetSchemaFunc(ctx, templateID)
	}
	return nil, nil, nil
}

// MockProductionStepService is a mock implementation of ProductionStepService
type MockProductionStepService struct {
	RecordStepFunc        func(ctx context.Context, principal domain.Principal, rocketID uuid.UUID, req *dto.RecordStepRequest) (*dto.StepResponse, error)
	UpdateStepFunc        func(ctx context.Context, principal domain.Principal, stepID uuid.UUID, req *dto.UpdateStepRequest) (*dto.StepResponse, error)
	GetStepFunc           func(ctx context.Context, stepID uuid.UUID) (*dto.StepResponse, error)
	ListStepsByRocketFunc func(ctx context.Context, rocketID uuid.UUID) ([]*dto.StepResponse, error)
	DeleteStepFunc        func(ctx context.Context, principal domain.Principal, stepID uuid.UUID) error
}

func (m *MockProductionStepService) RecordStep(ctx context.Context, principal domain.Principal, rocketID uuid.UUID, req *dto.RecordStepRequest) (*dto.StepResponse, error) {
	if m.RecordStepFunc != nil {
		return m.RecordStepFunc(ctx, principal, rocketID, req)
	}
	return nil, nil
}

func (m *MockProductionStepService) UpdateStep(ctx context.Context, principal domain.Principal, stepID uuid.UUID, req *dto.UpdateStepRequest) (*dto.StepResponse, error) {
	if m.UpdateStepFunc != nil {
		return m.UpdateStepFunc(ctx, principal, stepID, req)
	}
	return nil, nil
}

func (m *MockProductionStepService) GetStep(ctx context.Context, stepID uuid.UUID) (*dto.StepResponse, error) {
	if m.GetStepFunc != nil {
		return m.GetStepFunc(ctx, stepID)
	}
	return nil, nil
}

func (m *MockProductionStepService) ListStepsByRocket(ctx context.Context, rocketID uuid.UUID) ([]*dto.StepResponse, error) {
	if m.ListStepsByRocketFunc != nil {
		return m.ListStepsByRocketFunc(ctx, rocketID)
	}
	return nil, nil
}

func (m *MockProductionStepService) DeleteStep(ctx context.Context, principal domain.Principal, stepID uuid.UUID) error {
	if m.DeleteStepFunc != nil {
		return m.DeleteStepFunc(ctx, principal, stepID)
	}
	return nil
}
