package services

import (
	"context"
	"strings"
	"time"

	"github.com/yukikurage/apm-api/internal/logger"
	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/storage"
	"github.com/yukikurage/apm-api/internal/utils"
)

// OrderService handles order business logic outside the lifecycle
type OrderService struct {
	store *repository.Store
	blobs storage.BlobStore
}

// NewOrderService creates a new OrderService
func NewOrderService(store *repository.Store, blobs storage.BlobStore) *OrderService {
	return &OrderService{store: store, blobs: blobs}
}

// CreateOrderInput represents input for creating an order
type CreateOrderInput struct {
	Name string
}

// UpdateOrderInput represents a partial order update. Nil fields are left
// unchanged.
type UpdateOrderInput struct {
	Name      *string
	Status    *models.Status
	StartTime *time.Time
	EndTime   *time.Time
}

func (s *OrderService) List(ctx context.Context, page utils.PaginationParams) ([]models.Order, error) {
	orders, err := s.store.Orders.List(ctx, page)
	if err != nil {
		return nil, storeError(err, ErrOrderNotFound, "list orders")
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id uint64) (*models.Order, error) {
	order, err := s.store.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrOrderNotFound, "get order")
	}
	return order, nil
}

// GetWithTasks loads an order with its tasks and files for the order page
func (s *OrderService) GetWithTasks(ctx context.Context, id uint64) (*models.Order, error) {
	order, err := s.store.Orders.FindByID(ctx, id, "Tasks", "Files")
	if err != nil {
		return nil, storeError(err, ErrOrderNotFound, "get order")
	}
	return order, nil
}

// Tasks lists the tasks of an existing order
func (s *OrderService) Tasks(ctx context.Context, id uint64) ([]models.Task, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	tasks, err := s.store.Tasks.ListByOrder(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrTaskNotFound, "list order tasks")
	}
	return tasks, nil
}

// Create creates an order in ReadyToStart
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	order := &models.Order{
		Name:   name,
		Status: models.StatusReadyToStart,
	}
	if err := s.store.Orders.Create(ctx, order); err != nil {
		return nil, storeError(err, ErrOrderNotFound, "create order")
	}
	return order, nil
}

// Update applies the non-nil fields of input. Status may be set to any
// known value; this bypasses the lifecycle rules and is admin only.
func (s *OrderService) Update(ctx context.Context, id uint64, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		order.Name = name
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		order.Status = *input.Status
	}
	if input.StartTime != nil {
		order.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		order.EndTime = input.EndTime
	}

	if err := s.store.Orders.Update(ctx, order); err != nil {
		return nil, storeError(err, ErrOrderNotFound, "update order")
	}
	return order, nil
}

// Delete removes the order and its file rows, then the stored blobs.
// Blobs that cannot be removed are logged and left behind.
func (s *OrderService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	files, err := s.store.OrderFiles.ListByOrder(ctx, id)
	if err != nil {
		return storeError(err, ErrOrderFileNotFound, "list order files")
	}

	if err := s.store.Orders.Delete(ctx, id); err != nil {
		return storeError(err, ErrOrderNotFound, "delete order")
	}

	for _, f := range files {
		if err := s.blobs.Delete(ctx, f.Filepath); err != nil {
			logger.Log.WithError(err).WithField("key", f.Filepath).Warn("Failed to delete order file blob")
		}
	}
	return nil
}
