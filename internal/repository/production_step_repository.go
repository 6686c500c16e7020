package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
)

// ProductionStepRepository defines the interface for production step data access
type ProductionStepRepository interface {
	Create(ctx context.Context, step *domain.ProductionStep) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ProductionStep, error)
	FindByRocketID(ctx context.Context, rocketID uuid.UUID) ([]*domain.ProductionStep, error)
	Update(ctx context.Context, step *domain.ProductionStep) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByTemplateID(ctx context.Context, templateID uuid.UUID) (int64, error)
}

// productionStepRepositoryImpl is the GORM implementation of ProductionStepRepository
type productionStepRepositoryImpl struct {
	db *gorm.DB
}

// NewProductionStepRepository creates a new instance of ProductionStepRepository
func NewProductionStepRepository(db *gorm.DB) ProductionStepRepository {
	return &productionStepRepositoryImpl{db: db}
}

// Create creates a new production step
func (r *productionStepRepositoryImpl) Create(ctx context.Context, step *domain.ProductionStep) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(step).Error
}

// FindByID finds a production step by ID together with its approvals
func (r *productionStepRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProductionStep, error) {
	var step domain.ProductionStep
	if err := r.db.WithContext(ctx).
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("approved_at ASC")
		}).
		Where("id = ?", id).
		First(&step).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

// FindByRocketID finds every step recorded for a rocket, newest first
func (r *productionStepRepositoryImpl) FindByRocketID(ctx context.Context, rocketID uuid.UUID) ([]*domain.ProductionStep, error) {
	var steps []*domain.ProductionStep
	if err := r.db.WithContext(ctx).
		Where("rocket_id = ?", rocketID).
		Order("recorded_at DESC").
		Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

// Update saves the payload of an existing production step
func (r *productionStepRepositoryImpl) Update(ctx context.Context, step *domain.ProductionStep) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(step).Error
}

// Delete removes a production step and its approvals
func (r *productionStepRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("step_id = ?", id).Delete(&domain.Approval{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&domain.ProductionStep{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountByTemplateID counts the steps recorded against a template
func (r *productionStepRepositoryImpl) CountByTemplateID(ctx context.Context, templateID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.ProductionStep{}).
		Where("template_id = ?", templateID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
