package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
)

// RocketRepository defines the interface for rocket data access
type RocketRepository interface {
	Create(ctx context.Context, rocket *domain.Rocket) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Rocket, error)
	FindBySerialNumber(ctx context.Context, serial string) (*domain.Rocket, error)
	FindAll(ctx context.Context) ([]*domain.Rocket, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RocketStatus) error
}

type rocketRepositoryImpl struct {
	db *gorm.DB
}

// NewRocketRepository creates a new instance of RocketRepository
func NewRocketRepository(db *gorm.DB) RocketRepository {
	return &rocketRepositoryImpl{db: db}
}

func (r *rocketRepositoryImpl) Create(ctx context.Context, rocket *domain.Rocket) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rocket).Error
}

func (r *rocketRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Rocket, error) {
	var rocket domain.Rocket
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rocket).Error; err != nil {
		return nil, err
	}
	return &rocket, nil
}

// FindBySerialNumber returns nil, nil when no rocket carries the serial number
func (r *rocketRepositoryImpl) FindBySerialNumber(ctx context.Context, serial string) (*domain.Rocket, error) {
	var rocket domain.Rocket
	if err := r.db.WithContext(ctx).Where("serial_number = ?", serial).First(&rocket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rocket, nil
}

func (r *rocketRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Rocket, error) {
	var rockets []*domain.Rocket
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rockets).Error; err != nil {
		return nil, err
	}
	return rockets, nil
}

func (r *rocketRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RocketStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Rocket{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
