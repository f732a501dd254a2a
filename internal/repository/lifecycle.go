package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/models"
)

// lifecycleRepository implements LifecycleRepository for any model with
// id and status columns.
type lifecycleRepository[T any] struct {
	db *gorm.DB
}

// Transition runs UPDATE ... WHERE id = ? AND status = ? so that two
// concurrent transitions out of the same state cannot both succeed.
func (r *lifecycleRepository[T]) Transition(ctx context.Context, id uint64, from models.Status, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *lifecycleRepository[T]) UpdateColumns(ctx context.Context, id uint64, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *lifecycleRepository[T]) CurrentStatus(ctx context.Context, id uint64) (models.Status, error) {
	var row struct {
		Status models.Status
	}
	err := r.db.WithContext(ctx).
		Model(new(T)).
		Select("status").
		Where("id = ?", id).
		Take(&row).Error
	return row.Status, err
}
