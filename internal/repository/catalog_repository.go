package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/models"
)

// GormWorkstationRepository is a GORM implementation of WorkstationRepository
type GormWorkstationRepository struct {
	gormRepository[models.Workstation]
}

func NewWorkstationRepository(db *gorm.DB) WorkstationRepository {
	return &GormWorkstationRepository{gormRepository[models.Workstation]{db: db}}
}

// GormRejectReasonRepository is a GORM implementation of RejectReasonRepository
type GormRejectReasonRepository struct {
	gormRepository[models.RejectReason]
}

func NewRejectReasonRepository(db *gorm.DB) RejectReasonRepository {
	return &GormRejectReasonRepository{gormRepository[models.RejectReason]{db: db}}
}

func (r *GormRejectReasonRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}

// GormMaintenanceLogRepository is a GORM implementation of MaintenanceLogRepository
type GormMaintenanceLogRepository struct {
	gormRepository[models.MaintenanceLog]
}

func NewMaintenanceLogRepository(db *gorm.DB) MaintenanceLogRepository {
	return &GormMaintenanceLogRepository{gormRepository[models.MaintenanceLog]{db: db}}
}

// GormOrderFileRepository is a GORM implementation of OrderFileRepository
type GormOrderFileRepository struct {
	gormRepository[models.OrderFile]
}

func NewOrderFileRepository(db *gorm.DB) OrderFileRepository {
	return &GormOrderFileRepository{gormRepository[models.OrderFile]{db: db}}
}

func (r *GormOrderFileRepository) ListByOrder(ctx context.Context, orderID uint64) ([]models.OrderFile, error) {
	files := make([]models.OrderFile, 0)
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
