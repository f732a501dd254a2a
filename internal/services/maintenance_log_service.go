package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/utils"
)

var ErrMaintenanceTypeRequired = &ValidationError{Field: "type", Message: "type is required"}

type MaintenanceLogService struct {
	store *repository.Store
}

func NewMaintenanceLogService(store *repository.Store) *MaintenanceLogService {
	return &MaintenanceLogService{store: store}
}

type CreateMaintenanceLogInput struct {
	WorkstationID uint64
	Type          string
	Description   string
}

type UpdateMaintenanceLogInput struct {
	WorkstationID *uint64
	Type          *string
	Description   *string
}

func (s *MaintenanceLogService) List(ctx context.Context, page utils.PaginationParams) ([]models.MaintenanceLog, error) {
	items, err := s.store.MaintenanceLogs.List(ctx, page)
	if err != nil {
		return nil, storeError(err, ErrMaintenanceLogNotFound, "list maintenance logs")
	}
	return items, nil
}

func (s *MaintenanceLogService) Get(ctx context.Context, id uint64) (*models.MaintenanceLog, error) {
	log, err := s.store.MaintenanceLogs.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrMaintenanceLogNotFound, "get maintenance log")
	}
	return log, nil
}

func (s *MaintenanceLogService) Create(ctx context.Context, input CreateMaintenanceLogInput) (*models.MaintenanceLog, error) {
	logType := strings.TrimSpace(input.Type)
	if logType == "" {
		return nil, ErrMaintenanceTypeRequired
	}
	if err := s.checkWorkstation(ctx, input.WorkstationID); err != nil {
		return nil, err
	}

	log := &models.MaintenanceLog{
		WorkstationID: input.WorkstationID,
		Type:          logType,
		Description:   input.Description,
	}
	if err := s.store.MaintenanceLogs.Create(ctx, log); err != nil {
		return nil, storeError(err, ErrMaintenanceLogNotFound, "create maintenance log")
	}
	return log, nil
}

func (s *MaintenanceLogService) Update(ctx context.Context, id uint64, input UpdateMaintenanceLogInput) (*models.MaintenanceLog, error) {
	log, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.WorkstationID != nil {
		if err := s.checkWorkstation(ctx, *input.WorkstationID); err != nil {
			return nil, err
		}
		log.WorkstationID = *input.WorkstationID
	}
	if input.Type != nil {
		logType := strings.TrimSpace(*input.Type)
		if logType == "" {
			return nil, ErrMaintenanceTypeRequired
		}
		log.Type = logType
	}
	if input.Description != nil {
		log.Description = *input.Description
	}

	if err := s.store.MaintenanceLogs.Update(ctx, log); err != nil {
		return nil, storeError(err, ErrMaintenanceLogNotFound, "update maintenance log")
	}
	return log, nil
}

func (s *MaintenanceLogService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.MaintenanceLogs.Delete(ctx, id); err != nil {
		return storeError(err, ErrMaintenanceLogNotFound, "delete maintenance log")
	}
	return nil
}

func (s *MaintenanceLogService) checkWorkstation(ctx context.Context, id uint64) error {
	if _, err := s.store.Workstations.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalidReference("workstation_id", ErrWorkstationNotFound)
		}
		return storeError(err, ErrWorkstationNotFound, "check workstation_id")
	}
	return nil
}
