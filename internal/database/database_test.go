package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/config"
	"github.com/yukikurage/apm-api/internal/logger"
	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/utils"
)

func connectMemory(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{DBDriver: config.DriverSQLite, DBDSN: ":memory:"}
	db, err := Connect(cfg, logger.Gorm(logger.Log))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func TestMigrateCreatesTablesAndIndexes(t *testing.T) {
	db := connectMemory(t)

	require.NoError(t, Migrate(db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}
	for _, idx := range indexes {
		assert.True(t, db.Migrator().HasIndex(idx.model, idx.name), idx.name)
	}

	// A second run must not fail on the existing indexes.
	require.NoError(t, Migrate(db))
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"}, logger.Gorm(logger.Log))
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	db := connectMemory(t)
	require.NoError(t, Migrate(db))

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, db.Create(&models.Order{Name: name}).Error)
	}

	var all []models.Order
	require.NoError(t, db.Scopes(Paginate(utils.PaginationParams{})).Find(&all).Error)
	assert.Len(t, all, 5)

	var page []models.Order
	params := utils.PaginationParams{Page: 2, Limit: 2, Offset: 2}
	require.NoError(t, db.Scopes(Paginate(params)).Order("id").Find(&page).Error)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Name)
}
