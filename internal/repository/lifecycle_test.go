package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/apm-api/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestTransitionIsConditionalOnStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec("UPDATE `tasks` SET .+ WHERE \\(?id = \\? AND status = \\?\\)?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Transition(context.Background(), 7, models.StatusReadyToStart, map[string]any{
		"status":     models.StatusInProgress,
		"start_time": time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionReportsLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectExec("UPDATE `orders` SET .+ WHERE \\(?id = \\? AND status = \\?\\)?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Transition(context.Background(), 3, models.StatusInProgress, map[string]any{
		"status":   models.StatusDone,
		"end_time": time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionPropagatesDriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectExec("UPDATE `orders`").WillReturnError(errors.New("connection reset"))

	_, err := repo.Transition(context.Background(), 3, models.StatusInProgress, map[string]any{
		"status": models.StatusDone,
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
