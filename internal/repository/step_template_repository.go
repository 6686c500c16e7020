package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
)

// StepTemplateRepository defines the interface for step template data access
type StepTemplateRepository interface {
	Create(ctx context.Context, template *domain.StepTemplate) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StepTemplate, error)
	FindByIDWithFields(ctx context.Context, id uuid.UUID) (*domain.StepTemplate, error)
	FindByName(ctx context.Context, name string) (*domain.StepTemplate, error)
	FindActive(ctx context.Context) ([]*domain.StepTemplate, error)
	FindAll(ctx context.Context) ([]*domain.StepTemplate, error)
	Update(ctx context.Context, template *domain.StepTemplate) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	ReplaceFields(ctx context.Context, templateID uuid.UUID, fields []*domain.TemplateField) error
	SaveWithFields(ctx context.Context, template *domain.StepTemplate, fields []*domain.TemplateField, isNew bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// stepTemplateRepositoryImpl is the GORM implementation of StepTemplateRepository
type stepTemplateRepositoryImpl struct {
	db *gorm.DB
}

// NewStepTemplateRepository creates a new instance of StepTemplateRepository
func NewStepTemplateRepository(db *gorm.DB) StepTemplateRepository {
	return &stepTemplateRepositoryImpl{db: db}
}

// Create creates a new step template without touching its fields
func (r *stepTemplateRepositoryImpl) Create(ctx context.Context, template *domain.StepTemplate) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(template).Error
}

// FindByID finds a step template by ID, without fields
func (r *stepTemplateRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.StepTemplate, error) {
	var template domain.StepTemplate
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByIDWithFields finds a step template with its fields ordered by display_order
func (r *stepTemplateRepositoryImpl) FindByIDWithFields(ctx context.Context, id uuid.UUID) (*domain.StepTemplate, error) {
	var template domain.StepTemplate
	if err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, name ASC")
		}).
		Where("id = ?", id).
		First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByName finds a step template by exact, case-sensitive name.
// Returns nil, nil when no template holds the name.
func (r *stepTemplateRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.StepTemplate, error) {
	var template domain.StepTemplate
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// FindActive finds all active templates ordered by name
func (r *stepTemplateRepositoryImpl) FindActive(ctx context.Context) ([]*domain.StepTemplate, error) {
	var templates []*domain.StepTemplate
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// FindAll finds every template, active or not, ordered by name
func (r *stepTemplateRepositoryImpl) FindAll(ctx context.Context) ([]*domain.StepTemplate, error) {
	var templates []*domain.StepTemplate
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Update saves name, description and active flag of a template
func (r *stepTemplateRepositoryImpl) Update(ctx context.Context, template *domain.StepTemplate) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(template).Error
}

// SetActive toggles the active flag
func (r *stepTemplateRepositoryImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&domain.StepTemplate{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceFields deletes every field of the template and inserts the given list
// in a single transaction. Any failure rolls the whole replacement back.
func (r *stepTemplateRepositoryImpl) ReplaceFields(ctx context.Context, templateID uuid.UUID, fields []*domain.TemplateField) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceFields(tx, templateID, fields)
	})
}

// SaveWithFields creates or updates a template and replaces its fields in one transaction
func (r *stepTemplateRepositoryImpl) SaveWithFields(ctx context.Context, template *domain.StepTemplate, fields []*domain.TemplateField, isNew bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isNew {
			if err := tx.Omit(clause.Associations).Create(template).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Omit(clause.Associations).Save(template).Error; err != nil {
				return err
			}
		}
		return replaceFields(tx, template.ID, fields)
	})
}

// Delete removes a template and its fields
func (r *stepTemplateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&domain.TemplateField{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&domain.StepTemplate{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func replaceFields(tx *gorm.DB, templateID uuid.UUID, fields []*domain.TemplateField) error {
	if err := tx.Where("template_id = ?", templateID).Delete(&domain.TemplateField{}).Error; err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	for _, f := range fields {
		f.TemplateID = templateID
	}
	return tx.Create(&fields).Error
}
