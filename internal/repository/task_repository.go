package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	gormRepository[models.Task]
	lifecycleRepository[models.Task]
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{
		gormRepository:      gormRepository[models.Task]{db: db},
		lifecycleRepository: lifecycleRepository[models.Task]{db: db},
		db:                  db,
	}
}

// ListByOrder retrieves the tasks of an order
func (r *GormTaskRepository) ListByOrder(ctx context.Context, orderID uint64) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByOperator retrieves the tasks assigned to a user
func (r *GormTaskRepository) ListByOperator(ctx context.Context, userID uint64) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := r.db.WithContext(ctx).
		Where("operator_id = ?", userID).
		Order("id").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
