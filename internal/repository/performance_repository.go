package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/models"
)

// GormPerformanceRepository is a GORM implementation of PerformanceRepository
type GormPerformanceRepository struct {
	gormRepository[models.Performance]
}

func NewPerformanceRepository(db *gorm.DB) PerformanceRepository {
	return &GormPerformanceRepository{gormRepository[models.Performance]{db: db}}
}

func (r *GormPerformanceRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Performance, error) {
	entries := make([]models.Performance, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormPerformanceRepository) ListByTask(ctx context.Context, taskID uint64) ([]models.Performance, error) {
	entries := make([]models.Performance, 0)
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormPerformanceRepository) SumPointsByUser(ctx context.Context, userID uint64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Performance{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}
