package services

import (
	"context"
	"strings"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/utils"
)

type WorkstationService struct {
	store *repository.Store
}

func NewWorkstationService(store *repository.Store) *WorkstationService {
	return &WorkstationService{store: store}
}

type CreateWorkstationInput struct {
	Name        string
	Description string
}

type UpdateWorkstationInput struct {
	Name        *string
	Description *string
}

func (s *WorkstationService) List(ctx context.Context, page utils.PaginationParams) ([]models.Workstation, error) {
	items, err := s.store.Workstations.List(ctx, page)
	if err != nil {
		return nil, storeError(err, ErrWorkstationNotFound, "list workstations")
	}
	return items, nil
}

func (s *WorkstationService) Get(ctx context.Context, id uint64) (*models.Workstation, error) {
	ws, err := s.store.Workstations.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrWorkstationNotFound, "get workstation")
	}
	return ws, nil
}

func (s *WorkstationService) Create(ctx context.Context, input CreateWorkstationInput) (*models.Workstation, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	ws := &models.Workstation{Name: name, Description: input.Description}
	if err := s.store.Workstations.Create(ctx, ws); err != nil {
		return nil, storeError(err, ErrWorkstationNotFound, "create workstation")
	}
	return ws, nil
}

func (s *WorkstationService) Update(ctx context.Context, id uint64, input UpdateWorkstationInput) (*models.Workstation, error) {
	ws, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		ws.Name = name
	}
	if input.Description != nil {
		ws.Description = *input.Description
	}

	if err := s.store.Workstations.Update(ctx, ws); err != nil {
		return nil, storeError(err, ErrWorkstationNotFound, "update workstation")
	}
	return ws, nil
}

func (s *WorkstationService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Workstations.Delete(ctx, id); err != nil {
		return storeError(err, ErrWorkstationNotFound, "delete workstation")
	}
	return nil
}
