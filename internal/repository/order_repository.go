package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/models"
)

// GormOrderRepository is a GORM implementation of OrderRepository
type GormOrderRepository struct {
	gormRepository[models.Order]
	lifecycleRepository[models.Order]
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{
		gormRepository:      gormRepository[models.Order]{db: db},
		lifecycleRepository: lifecycleRepository[models.Order]{db: db},
		db:                  db,
	}
}

// Delete removes the order together with its file rows. Tasks and
// reject reasons are left untouched.
func (r *GormOrderRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderFile{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Order{}, id).Error
	})
}
