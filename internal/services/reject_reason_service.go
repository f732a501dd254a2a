package services

import (
	"context"
	"strings"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/utils"
)

// RejectReasonService is the admin catalogue of reject reasons. Reasons
// recorded by the lifecycle are created by LifecycleService.
type RejectReasonService struct {
	store *repository.Store
}

func NewRejectReasonService(store *repository.Store) *RejectReasonService {
	return &RejectReasonService{store: store}
}

func (s *RejectReasonService) List(ctx context.Context, page utils.PaginationParams) ([]models.RejectReason, error) {
	items, err := s.store.RejectReasons.List(ctx, page)
	if err != nil {
		return nil, storeError(err, ErrRejectReasonNotFound, "list reject reasons")
	}
	return items, nil
}

func (s *RejectReasonService) Get(ctx context.Context, id uint64) (*models.RejectReason, error) {
	rr, err := s.store.RejectReasons.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrRejectReasonNotFound, "get reject reason")
	}
	return rr, nil
}

func (s *RejectReasonService) Create(ctx context.Context, description string) (*models.RejectReason, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrRejectReasonRequired
	}

	rr := &models.RejectReason{Description: description}
	if err := s.store.RejectReasons.Create(ctx, rr); err != nil {
		return nil, storeError(err, ErrRejectReasonNotFound, "create reject reason")
	}
	return rr, nil
}

func (s *RejectReasonService) Update(ctx context.Context, id uint64, description string) (*models.RejectReason, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrRejectReasonRequired
	}

	rr, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rr.Description = description
	if err := s.store.RejectReasons.Update(ctx, rr); err != nil {
		return nil, storeError(err, ErrRejectReasonNotFound, "update reject reason")
	}
	return rr, nil
}

func (s *RejectReasonService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.RejectReasons.Delete(ctx, id); err != nil {
		return storeError(err, ErrRejectReasonNotFound, "delete reject reason")
	}
	return nil
}
