package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the entity repositories over one *gorm.DB so that services
// can run several of them inside a single transaction.
type Store struct {
	db *gorm.DB

	Users           UserRepository
	Orders          OrderRepository
	Tasks           TaskRepository
	Workstations    WorkstationRepository
	RejectReasons   RejectReasonRepository
	MaintenanceLogs MaintenanceLogRepository
	Performance     PerformanceRepository
	OrderFiles      OrderFileRepository
}

// NewStore creates a Store whose repositories all share db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:              db,
		Users:           NewUserRepository(db),
		Orders:          NewOrderRepository(db),
		Tasks:           NewTaskRepository(db),
		Workstations:    NewWorkstationRepository(db),
		RejectReasons:   NewRejectReasonRepository(db),
		MaintenanceLogs: NewMaintenanceLogRepository(db),
		Performance:     NewPerformanceRepository(db),
		OrderFiles:      NewOrderFileRepository(db),
	}
}

// Transaction runs fn with a Store bound to a database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// DB returns the underlying connection
func (s *Store) DB() *gorm.DB {
	return s.db
}
