package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/database"
	"github.com/yukikurage/apm-api/internal/utils"
)

// gormRepository carries the CRUD operations every entity store shares.
type gormRepository[T any] struct {
	db *gorm.DB
}

// List retrieves rows ordered by ID. The result is never nil.
func (r *gormRepository[T]) List(ctx context.Context, page utils.PaginationParams) ([]T, error) {
	items := make([]T, 0)
	if err := r.db.WithContext(ctx).
		Scopes(database.Paginate(page)).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID finds a row by ID with optional preloading
func (r *gormRepository[T]) FindByID(ctx context.Context, id uint64, preload ...string) (*T, error) {
	var item T
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&item, id).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *gormRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gormRepository[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *gormRepository[T]) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(new(T), id).Error
}

func (r *gormRepository[T]) count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, err
}
