package repository

import (
	"context"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/utils"
)

// LifecycleRepository is implemented by the stores of entities that move
// through the ReadyToStart/InProgress/Done/Rejected states.
type LifecycleRepository interface {
	// Transition applies updates only when the row is still in status from.
	// The returned count is zero when the row is missing or has moved on.
	Transition(ctx context.Context, id uint64, from models.Status, updates map[string]any) (int64, error)

	// UpdateColumns applies updates regardless of the current status
	UpdateColumns(ctx context.Context, id uint64, updates map[string]any) (int64, error)

	// CurrentStatus returns the stored status or gorm.ErrRecordNotFound
	CurrentStatus(ctx context.Context, id uint64) (models.Status, error)
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	LifecycleRepository

	// List retrieves orders ordered by ID
	List(ctx context.Context, page utils.PaginationParams) ([]models.Order, error)

	// FindByID finds an order by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Order, error)

	// Create creates a new order
	Create(ctx context.Context, order *models.Order) error

	// Update saves every column of the order
	Update(ctx context.Context, order *models.Order) error

	// Delete removes the order and its file rows
	Delete(ctx context.Context, id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	LifecycleRepository

	// List retrieves tasks ordered by ID
	List(ctx context.Context, page utils.PaginationParams) ([]models.Task, error)

	// ListByOrder retrieves the tasks of an order
	ListByOrder(ctx context.Context, orderID uint64) ([]models.Task, error)

	// ListByOperator retrieves the tasks assigned to a user
	ListByOperator(ctx context.Context, userID uint64) ([]models.Task, error)

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// Update saves every column of the task
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task
	Delete(ctx context.Context, id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// List retrieves users ordered by ID
	List(ctx context.Context, page utils.PaginationParams) ([]models.User, error)

	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update saves every column of the user
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user
	Delete(ctx context.Context, id uint64) error
}

// WorkstationRepository defines the interface for workstation data access
type WorkstationRepository interface {
	List(ctx context.Context, page utils.PaginationParams) ([]models.Workstation, error)
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Workstation, error)
	Create(ctx context.Context, ws *models.Workstation) error
	Update(ctx context.Context, ws *models.Workstation) error
	Delete(ctx context.Context, id uint64) error
}

// RejectReasonRepository defines the interface for reject reason data access
type RejectReasonRepository interface {
	List(ctx context.Context, page utils.PaginationParams) ([]models.RejectReason, error)
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.RejectReason, error)
	Create(ctx context.Context, reason *models.RejectReason) error
	Update(ctx context.Context, reason *models.RejectReason) error
	Delete(ctx context.Context, id uint64) error

	// Count returns the number of stored reasons
	Count(ctx context.Context) (int64, error)
}

// MaintenanceLogRepository defines the interface for maintenance log data access
type MaintenanceLogRepository interface {
	List(ctx context.Context, page utils.PaginationParams) ([]models.MaintenanceLog, error)
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.MaintenanceLog, error)
	Create(ctx context.Context, log *models.MaintenanceLog) error
	Update(ctx context.Context, log *models.MaintenanceLog) error
	Delete(ctx context.Context, id uint64) error
}

// PerformanceRepository defines the interface for performance data access
type PerformanceRepository interface {
	List(ctx context.Context, page utils.PaginationParams) ([]models.Performance, error)
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Performance, error)
	Create(ctx context.Context, perf *models.Performance) error
	Update(ctx context.Context, perf *models.Performance) error
	Delete(ctx context.Context, id uint64) error

	// ListByUser retrieves a user's entries in insertion order
	ListByUser(ctx context.Context, userID uint64) ([]models.Performance, error)

	// ListByTask retrieves the entries awarded for a task
	ListByTask(ctx context.Context, taskID uint64) ([]models.Performance, error)

	// SumPointsByUser totals a user's points, 0 when there are none
	SumPointsByUser(ctx context.Context, userID uint64) (int64, error)
}

// OrderFileRepository defines the interface for order file data access
type OrderFileRepository interface {
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.OrderFile, error)
	Create(ctx context.Context, file *models.OrderFile) error
	Update(ctx context.Context, file *models.OrderFile) error
	Delete(ctx context.Context, id uint64) error

	// ListByOrder retrieves an order's files ordered by ID
	ListByOrder(ctx context.Context, orderID uint64) ([]models.OrderFile, error)
}
