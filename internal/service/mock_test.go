package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
)

// MockStepTemplateRepository is a mock implementation of StepTemplateRepository
type MockStepTemplateRepository struct {
	CreateFunc             func(ctx context.Context, template *domain.StepTemplate) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.StepTemplate, error)
	FindByIDWithFieldsFunc func(ctx context.Context, id uuid.UUID) (*domain.StepTemplate, error)
	FindByNameFunc         func(ctx context.Context, name string) (*domain.StepTemplate, error)
	FindActiveFunc         func(ctx context.Context) ([]*domain.StepTemplate, error)
	FindAllFunc            func(ctx context.Context) ([]*domain.StepTemplate, error)
	UpdateFunc             func(ctx context.Context, template *domain.StepTemplate) error
	SetActiveFunc          func(ctx context.Context, id uuid.UUID, active bool) error
	ReplaceFieldsFunc      func(ctx context.Context, templateID uuid.UUID, fields []*domain.TemplateField) error
	SaveWithFieldsFunc     func(ctx context.Context, template *domain.StepTemplate, fields []*domain.TemplateField, isNew bool) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
}

func (m *MockStepTemplateRepository) Create(ctx context.Context, template *domain.StepTemplate) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, template)
	}
	return nil
}

func (m *MockStepTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StepTemplate, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStepTemplateRepository) FindByIDWithFields(ctx context.Context, id uuid.UUID) (*domain.StepTemplate, error) {
	if m.FindByIDWithFieldsFunc != nil {
		return m.FindByIDWithFieldsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStepTemplateRepository) FindByName(ctx context.Context, name string) (*domain.StepTemplate, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockStepTemplateRepository) FindActive(ctx context.Context) ([]*domain.StepTemplate, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockStepTemplateRepository) FindAll(ctx context.Context) ([]*domain.StepTemplate, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockStepTemplateRepository) Update(ctx context.Context, template *domain.StepTemplate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, template)
	}
	return nil
}

func (m *MockStepTemplateRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil
}

func (m *MockStepTemplateRepository) ReplaceFields(ctx context.Context, templateID uuid.UUID, fields []*domain.TemplateField) error {
	if m.ReplaceFieldsFunc != nil {
		return m.ReplaceFieldsFunc(ctx, templateID, fields)
	}
	return nil
}

func (m *MockStepTemplateRepository) SaveWithFields(ctx context.Context, template *domain.StepTemplate, fields []*domain.TemplateField, isNew bool) error {
	if m.SaveWithFieldsFunc != nil {
		return m.SaveWithFieldsFunc(ctx, template, fields, isNew)
	}
	return nil
}

func (m *MockStepTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProductionStepRepository is a mock implementation of ProductionStepRepository
type MockProductionStepRepository struct {
	CreateFunc            func(ctx context.Context, step *domain.ProductionStep) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.ProductionStep, error)
	FindByRocketIDFunc    func(ctx context.Context, rocketID uuid.UUID) ([]*domain.ProductionStep, error)
	UpdateFunc            func(ctx context.Context, step *domain.ProductionStep) error
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	CountByTemplateIDFunc func(ctx context.Context, templateID uuid.UUID) (int64, error)
}

func (m *MockProductionStepRepository) Create(ctx context.Context, step *domain.ProductionStep) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, step)
	}
	return nil
}

func (m *MockProductionStepRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProductionStep, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductionStepRepository) FindByRocketID(ctx context.Context, rocketID uuid.UUID) ([]*domain.ProductionStep, error) {
	if m.FindByRocketIDFunc != nil {
		return m.FindByRocketIDFunc(ctx, rocketID)
	}
	return nil, nil
}

func (m *MockProductionStepRepository) Update(ctx context.Context, step *domain.ProductionStep) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, step)
	}
	return nil
}

func (m *MockProductionStepRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProductionStepRepository) CountByTemplateID(ctx context.Context, templateID uuid.UUID) (int64, error) {
	if m.CountByTemplateIDFunc != nil {
		return m.CountByTemplateIDFunc(ctx, templateID)
	}
	return 0, nil
}

// MockRocketRepository is a mock implementation of RocketRepository
type MockRocketRepository struct {
	CreateFunc             func(ctx context.Context, rocket *domain.Rocket) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Rocket, error)
	FindBySerialNumberFunc func(ctx context.Context, serial string) (*domain.Rocket, error)
	FindAllFunc            func(ctx context.Context) ([]*domain.Rocket, error)
	UpdateStatusFunc       func(ctx context.Context, id uuid.UUID, status domain.RocketStatus) error
}

func (m *MockRocketRepository) Create(ctx context.Context, rocket *domain.Rocket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rocket)
	}
	return nil
}

func (m *MockRocketRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Rocket, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRocketRepository) FindBySerialNumber(ctx context.Context, serial string) (*domain.Rocket, error) {
	if m.FindBySerialNumberFunc != nil {
		return m.FindBySerialNumberFunc(ctx, serial)
	}
	return nil, nil
}

func (m *MockRocketRepository) FindAll(ctx context.Context) ([]*domain.Rocket, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockRocketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RocketStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockApprovalRepository is a mock implementation of ApprovalRepository
type MockApprovalRepository struct {
	CreateFunc                func(ctx context.Context, approval *domain.Approval) error
	FindByStepAndReviewerFunc func(ctx context.Context, stepID, reviewerID uuid.UUID) (*domain.Approval, error)
	FindByStepIDFunc          func(ctx context.Context, stepID uuid.UUID) ([]*domain.Approval, error)
}

func (m *MockApprovalRepository) Create(ctx context.Context, approval *domain.Approval) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, approval)
	}
	return nil
}

func (m *MockApprovalRepository) FindByStepAndReviewer(ctx context.Context, stepID, reviewerID uuid.UUID) (*domain.Approval, error) {
	if m.FindByStepAndReviewerFunc != nil {
		return m.FindByStepAndReviewerFunc(ctx, stepID, reviewerID)
	}
	return nil, nil
}

func (m *MockApprovalRepository) FindByStepID(ctx context.Context, stepID uuid.UUID) ([]*domain.Approval, error) {
	if m.FindByStepIDFunc != nil {
		return m.FindByStepIDFunc(ctx, stepID)
	}
	return nil, nil
}
