package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/utils"
)

// PerformanceService manages performance entries and the per-user report
type PerformanceService struct {
	store *repository.Store
}

func NewPerformanceService(store *repository.Store) *PerformanceService {
	return &PerformanceService{store: store}
}

type CreatePerformanceInput struct {
	UserID uint64
	TaskID uint64
	// Points defaults to models.DefaultPerformancePoints when nil
	Points *int
}

type UpdatePerformanceInput struct {
	UserID *uint64
	TaskID *uint64
	Points *int
}

// ReportEntry is one line of a performance report.
type ReportEntry struct {
	TaskID    uint64    `json:"task_id"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// Report totals the points a user has earned. It is recomputed on every
// call.
type Report struct {
	UserID      uint64        `json:"user_id"`
	TotalPoints int64         `json:"total_points"`
	Entries     []ReportEntry `json:"entries"`
}

func (s *PerformanceService) List(ctx context.Context, page utils.PaginationParams) ([]models.Performance, error) {
	items, err := s.store.Performance.List(ctx, page)
	if err != nil {
		return nil, storeError(err, ErrPerformanceNotFound, "list performance")
	}
	return items, nil
}

func (s *PerformanceService) Get(ctx context.Context, id uint64) (*models.Performance, error) {
	perf, err := s.store.Performance.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrPerformanceNotFound, "get performance")
	}
	return perf, nil
}

func (s *PerformanceService) Create(ctx context.Context, input CreatePerformanceInput) (*models.Performance, error) {
	points := models.DefaultPerformancePoints
	if input.Points != nil {
		points = *input.Points
	}
	if points < 0 {
		return nil, ErrNegativePoints
	}
	if err := s.checkReferences(ctx, &input.UserID, &input.TaskID); err != nil {
		return nil, err
	}

	userID := input.UserID
	perf := &models.Performance{
		UserID: &userID,
		TaskID: input.TaskID,
		Points: points,
	}
	if err := s.store.Performance.Create(ctx, perf); err != nil {
		return nil, storeError(err, ErrPerformanceNotFound, "create performance")
	}
	return perf, nil
}

func (s *PerformanceService) Update(ctx context.Context, id uint64, input UpdatePerformanceInput) (*models.Performance, error) {
	perf, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Points != nil && *input.Points < 0 {
		return nil, ErrNegativePoints
	}
	if err := s.checkReferences(ctx, input.UserID, input.TaskID); err != nil {
		return nil, err
	}

	if input.UserID != nil {
		perf.UserID = input.UserID
	}
	if input.TaskID != nil {
		perf.TaskID = *input.TaskID
	}
	if input.Points != nil {
		perf.Points = *input.Points
	}

	if err := s.store.Performance.Update(ctx, perf); err != nil {
		return nil, storeError(err, ErrPerformanceNotFound, "update performance")
	}
	return perf, nil
}

func (s *PerformanceService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Performance.Delete(ctx, id); err != nil {
		return storeError(err, ErrPerformanceNotFound, "delete performance")
	}
	return nil
}

// Report returns the user's total and entries in insertion order. A user
// without entries gets a zero total and an empty list.
func (s *PerformanceService) Report(ctx context.Context, userID uint64) (*Report, error) {
	entries, err := s.store.Performance.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, ErrPerformanceNotFound, "list user performance")
	}

	total, err := s.store.Performance.SumPointsByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, ErrPerformanceNotFound, "sum user performance")
	}

	report := &Report{
		UserID:      userID,
		TotalPoints: total,
		Entries:     make([]ReportEntry, 0, len(entries)),
	}
	for _, e := range entries {
		report.Entries = append(report.Entries, ReportEntry{
			TaskID:    e.TaskID,
			Points:    e.Points,
			CreatedAt: e.CreatedAt,
		})
	}
	return report, nil
}

func (s *PerformanceService) checkReferences(ctx context.Context, userID, taskID *uint64) error {
	if userID != nil {
		if _, err := s.store.Users.FindByID(ctx, *userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalidReference("user_id", ErrUserNotFound)
			}
			return storeError(err, ErrUserNotFound, "check user_id")
		}
	}
	if taskID != nil {
		if _, err := s.store.Tasks.FindByID(ctx, *taskID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalidReference("task_id", ErrTaskNotFound)
			}
			return storeError(err, ErrTaskNotFound, "check task_id")
		}
	}
	return nil
}
