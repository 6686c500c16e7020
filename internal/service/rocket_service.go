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
	"github.com/roan2008/dpti-rocket-system-sub001/internal/repository"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
)

// RocketService defines the interface for rocket business logic
type RocketService interface {
	CreateRocket(ctx context.Context, principal domain.Principal, req *dto.CreateRocketRequest) (*dto.RocketResponse, error)
	GetRocket(ctx context.Context, rocketID uuid.UUID) (*dto.RocketResponse, error)
	ListRockets(ctx context.Context) ([]*dto.RocketResponse, error)
	UpdateStatus(ctx context.Context, principal domain.Principal, rocketID uuid.UUID, req *dto.UpdateRocketStatusRequest) (*dto.RocketResponse, error)
}

type rocketServiceImpl struct {
	rocketRepo repository.RocketRepository
	logger     *zap.Logger
}

// NewRocketService creates a new instance of RocketService
func NewRocketService(rocketRepo repository.RocketRepository, logger *zap.Logger) RocketService {
	return &rocketServiceImpl{
		rocketRepo: rocketRepo,
		logger:     logger,
	}
}

func (s *rocketServiceImpl) CreateRocket(ctx context.Context, principal domain.Principal, req *dto.CreateRocketRequest) (*dto.RocketResponse, error) {
	if !principal.CanManageTemplates() {
		return nil, response.NewForbiddenError("Only administrators and engineers can register rockets", "")
	}

	serial := strings.TrimSpace(req.SerialNumber)
	name := strings.TrimSpace(req.ProjectName)
	var errs []string
	if serial == "" {
		errs = append(errs, "Serial number is required")
	}
	if name == "" {
		errs = append(errs, "Project name is required")
	}
	status := domain.RocketStatusPlanning
	if req.Status != "" {
		status = domain.RocketStatus(req.Status)
		if !status.IsValid() {
			errs = append(errs, fmt.Sprintf("Invalid rocket status '%s'", req.Status))
		}
	}
	if len(errs) > 0 {
		return nil, response.NewValidationErrors("Invalid rocket", errs)
	}

	existing, err := s.rocketRepo.FindBySerialNumber(ctx, serial)
	if err != nil {
		return nil, internalError(s.logger, "Failed to check serial number", err)
	}
	if existing != nil {
		return nil, duplicateSerial(serial)
	}

	rocket := &domain.Rocket{
		SerialNumber: serial,
		Name:         name,
		Status:       status,
		CreatedBy:    principal.UserID,
	}
	if err := s.rocketRepo.Create(ctx, rocket); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateSerial(serial)
		}
		return nil, internalError(s.logger, "Failed to create rocket", err, zap.String("serial_number", serial))
	}

	s.logger.Info("Rocket registered",
		zap.String("rocket_id", rocket.ID.String()),
		zap.String("serial_number", serial),
	)
	return toRocketResponse(rocket), nil
}

func (s *rocketServiceImpl) GetRocket(ctx context.Context, rocketID uuid.UUID) (*dto.RocketResponse, error) {
	rocket, err := s.rocketRepo.FindByID(ctx, rocketID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Rocket not found", rocketID.String())
		}
		return nil, internalError(s.logger, "Failed to fetch rocket", err, zap.String("rocket_id", rocketID.String()))
	}
	return toRocketResponse(rocket), nil
}

// ListRockets returns all rockets, newest first
func (s *rocketServiceImpl) ListRockets(ctx context.Context) ([]*dto.RocketResponse, error) {
	rockets, err := s.rocketRepo.FindAll(ctx)
	if err != nil {
		return nil, internalError(s.logger, "Failed to fetch rockets", err)
	}
	out := make([]*dto.RocketResponse, 0, len(rockets))
	for _, r := range rockets {
		out = append(out, toRocketResponse(r))
	}
	return out, nil
}

func (s *rocketServiceImpl) UpdateStatus(ctx context.Context, principal domain.Principal, rocketID uuid.UUID, req *dto.UpdateRocketStatusRequest) (*dto.RocketResponse, error) {
	if !principal.CanManageTemplates() {
		return nil, response.NewForbiddenError("Only administrators and engineers can change rocket status", "")
	}

	status := domain.RocketStatus(req.Status)
	if !status.IsValid() {
		return nil, response.NewValidationError(fmt.Sprintf("Invalid rocket status '%s'", req.Status), "")
	}

	if err := s.rocketRepo.UpdateStatus(ctx, rocketID, status); err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Rocket not found", rocketID.String())
		}
		return nil, internalError(s.logger, "Failed to update rocket status", err, zap.String("rocket_id", rocketID.String()))
	}

	return s.GetRocket(ctx, rocketID)
}

func duplicateSerial(serial string) *response.AppError {
	return response.NewAlreadyExistsError(fmt.Sprintf("A rocket with serial number '%s' already exists", serial), serial)
}
