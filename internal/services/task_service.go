package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/utils"
)

// TaskService handles task business logic outside the lifecycle
type TaskService struct {
	store *repository.Store
}

// NewTaskService creates a new TaskService
func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{store: store}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name          string
	OrderID       uint64
	WorkstationID uint64
	OperatorID    uint64
}

// UpdateTaskInput represents a partial task update. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Name           *string
	OrderID        *uint64
	WorkstationID  *uint64
	OperatorID     *uint64
	Status         *models.Status
	StartTime      *time.Time
	EndTime        *time.Time
	RejectReasonID *uint64
}

func (s *TaskService) List(ctx context.Context, page utils.PaginationParams) ([]models.Task, error) {
	tasks, err := s.store.Tasks.List(ctx, page)
	if err != nil {
		return nil, storeError(err, ErrTaskNotFound, "list tasks")
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.store.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrTaskNotFound, "get task")
	}
	return task, nil
}

// ByOperator lists the tasks assigned to userID. An operator without tasks
// is reported as not found.
func (s *TaskService) ByOperator(ctx context.Context, userID uint64) ([]models.Task, error) {
	tasks, err := s.store.Tasks.ListByOperator(ctx, userID)
	if err != nil {
		return nil, storeError(err, ErrTaskNotFound, "list operator tasks")
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasksForOperator
	}
	return tasks, nil
}

// Create creates a task in ReadyToStart after checking its references
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if err := s.checkReferences(ctx, &input.OrderID, &input.WorkstationID, &input.OperatorID, nil); err != nil {
		return nil, err
	}

	operatorID := input.OperatorID
	task := &models.Task{
		Name:          name,
		OrderID:       input.OrderID,
		WorkstationID: input.WorkstationID,
		OperatorID:    &operatorID,
		Status:        models.StatusReadyToStart,
	}
	if err := s.store.Tasks.Create(ctx, task); err != nil {
		return nil, storeError(err, ErrTaskNotFound, "create task")
	}
	return task, nil
}

// Update applies the non-nil fields of input
func (s *TaskService) Update(ctx context.Context, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, input.OrderID, input.WorkstationID, input.OperatorID, input.RejectReasonID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		task.Name = name
	}
	if input.OrderID != nil {
		task.OrderID = *input.OrderID
	}
	if input.WorkstationID != nil {
		task.WorkstationID = *input.WorkstationID
	}
	if input.OperatorID != nil {
		task.OperatorID = input.OperatorID
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.StartTime != nil {
		task.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		task.EndTime = input.EndTime
	}
	if input.RejectReasonID != nil {
		task.RejectReasonID = input.RejectReasonID
	}

	if err := s.store.Tasks.Update(ctx, task); err != nil {
		return nil, storeError(err, ErrTaskNotFound, "update task")
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Tasks.Delete(ctx, id); err != nil {
		return storeError(err, ErrTaskNotFound, "delete task")
	}
	return nil
}

// checkReferences verifies that every non-nil foreign key points at a row
func (s *TaskService) checkReferences(ctx context.Context, orderID, workstationID, operatorID, rejectReasonID *uint64) error {
	checks := []struct {
		field string
		id    *uint64
		nf    *NotFoundError
		find  func(uint64) error
	}{
		{"order_id", orderID, ErrOrderNotFound, func(id uint64) error { _, err := s.store.Orders.FindByID(ctx, id); return err }},
		{"workstation_id", workstationID, ErrWorkstationNotFound, func(id uint64) error { _, err := s.store.Workstations.FindByID(ctx, id); return err }},
		{"operator_id", operatorID, ErrUserNotFound, func(id uint64) error { _, err := s.store.Users.FindByID(ctx, id); return err }},
		{"reject_reason_id", rejectReasonID, ErrRejectReasonNotFound, func(id uint64) error { _, err := s.store.RejectReasons.FindByID(ctx, id); return err }},
	}

	for _, c := range checks {
		if c.id == nil {
			continue
		}
		if err := c.find(*c.id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalidReference(c.field, c.nf)
			}
			return storeError(err, c.nf, "check "+c.field)
		}
	}
	return nil
}
