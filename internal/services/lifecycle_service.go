package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
)

// LifecycleService moves orders and tasks through
// ReadyToStart -> InProgress -> Done, or to Rejected.
type LifecycleService struct {
	store *repository.Store
	now   func() time.Time
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(store *repository.Store) *LifecycleService {
	return &LifecycleService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// TaskCompletion is the result of completing a task.
type TaskCompletion struct {
	Task        *models.Task
	Performance *models.Performance
}

// TaskRejection is the result of rejecting a task.
type TaskRejection struct {
	Task   *models.Task
	Reason *models.RejectReason
}

// OrderRejection is the result of rejecting an order. The order row does
// not reference the reason.
type OrderRejection struct {
	Order  *models.Order
	Reason *models.RejectReason
}

// StartOrder moves a ReadyToStart order to InProgress.
func (s *LifecycleService) StartOrder(ctx context.Context, id uint64) (*models.Order, error) {
	err := s.advance(ctx, s.store.Orders, "order", ErrOrderNotFound, id, "start", models.StatusReadyToStart, map[string]any{
		"status":     models.StatusInProgress,
		"start_time": s.now(),
	})
	if err != nil {
		return nil, err
	}
	return s.loadOrder(ctx, s.store, id)
}

// CompleteOrder moves an InProgress order to Done.
func (s *LifecycleService) CompleteOrder(ctx context.Context, id uint64) (*models.Order, error) {
	err := s.advance(ctx, s.store.Orders, "order", ErrOrderNotFound, id, "complete", models.StatusInProgress, map[string]any{
		"status":   models.StatusDone,
		"end_time": s.now(),
	})
	if err != nil {
		return nil, err
	}
	return s.loadOrder(ctx, s.store, id)
}

// RejectOrder records reason and marks the order Rejected from any status.
func (s *LifecycleService) RejectOrder(ctx context.Context, id uint64, reason string) (*OrderRejection, error) {
	description, err := normalizeReason(reason)
	if err != nil {
		return nil, err
	}

	var result OrderRejection
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.loadOrder(ctx, tx, id); err != nil {
			return err
		}

		rr := &models.RejectReason{Description: description}
		if err := tx.RejectReasons.Create(ctx, rr); err != nil {
			return fmt.Errorf("failed to create reject reason: %w", err)
		}

		if _, err := tx.Orders.UpdateColumns(ctx, id, map[string]any{
			"status":   models.StatusRejected,
			"end_time": s.now(),
		}); err != nil {
			return fmt.Errorf("failed to reject order: %w", err)
		}

		order, err := s.loadOrder(ctx, tx, id)
		if err != nil {
			return err
		}

		result = OrderRejection{Order: order, Reason: rr}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// StartTask moves a ReadyToStart task to InProgress.
func (s *LifecycleService) StartTask(ctx context.Context, id uint64) (*models.Task, error) {
	err := s.advance(ctx, s.store.Tasks, "task", ErrTaskNotFound, id, "start", models.StatusReadyToStart, map[string]any{
		"status":     models.StatusInProgress,
		"start_time": s.now(),
	})
	if err != nil {
		return nil, err
	}
	return s.loadTask(ctx, s.store, id)
}

// CompleteTask moves an InProgress task to Done and awards the operator
// one performance entry in the same transaction.
func (s *LifecycleService) CompleteTask(ctx context.Context, id uint64) (*TaskCompletion, error) {
	var result TaskCompletion
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		err := s.advance(ctx, tx.Tasks, "task", ErrTaskNotFound, id, "complete", models.StatusInProgress, map[string]any{
			"status":   models.StatusDone,
			"end_time": s.now(),
		})
		if err != nil {
			return err
		}

		task, err := s.loadTask(ctx, tx, id)
		if err != nil {
			return err
		}

		perf := &models.Performance{
			UserID: task.OperatorID,
			TaskID: task.ID,
			Points: models.DefaultPerformancePoints,
		}
		if err := tx.Performance.Create(ctx, perf); err != nil {
			return fmt.Errorf("failed to record performance: %w", err)
		}

		result = TaskCompletion{Task: task, Performance: perf}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RejectTask records reason, links it to the task and marks the task
// Rejected from any status.
func (s *LifecycleService) RejectTask(ctx context.Context, id uint64, reason string) (*TaskRejection, error) {
	description, err := normalizeReason(reason)
	if err != nil {
		return nil, err
	}

	var result TaskRejection
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.loadTask(ctx, tx, id); err != nil {
			return err
		}

		rr := &models.RejectReason{Description: description}
		if err := tx.RejectReasons.Create(ctx, rr); err != nil {
			return fmt.Errorf("failed to create reject reason: %w", err)
		}

		if _, err := tx.Tasks.UpdateColumns(ctx, id, map[string]any{
			"status":           models.StatusRejected,
			"end_time":         s.now(),
			"reject_reason_id": rr.ID,
		}); err != nil {
			return fmt.Errorf("failed to reject task: %w", err)
		}

		task, err := s.loadTask(ctx, tx, id)
		if err != nil {
			return err
		}

		result = TaskRejection{Task: task, Reason: rr}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// advance applies a conditional transition. When no row changes it reloads
// the status to tell a missing entity from one in the wrong state.
func (s *LifecycleService) advance(ctx context.Context, repo repository.LifecycleRepository, entity string, notFound *NotFoundError, id uint64, action string, from models.Status, updates map[string]any) error {
	n, err := repo.Transition(ctx, id, from, updates)
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", action, entity, err)
	}
	if n > 0 {
		return nil
	}

	current, err := repo.CurrentStatus(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return fmt.Errorf("failed to load %s status: %w", entity, err)
	}

	return &TransitionError{Entity: entity, Action: action, Current: current, Required: from}
}

func (s *LifecycleService) loadOrder(ctx context.Context, store *repository.Store, id uint64) (*models.Order, error) {
	order, err := store.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrOrderNotFound, "load order")
	}
	return order, nil
}

func (s *LifecycleService) loadTask(ctx context.Context, store *repository.Store, id uint64) (*models.Task, error) {
	task, err := store.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrTaskNotFound, "load task")
	}
	return task, nil
}

func normalizeReason(reason string) (string, error) {
	description := strings.TrimSpace(reason)
	if description == "" {
		return "", ErrRejectReasonRequired
	}
	return description, nil
}
