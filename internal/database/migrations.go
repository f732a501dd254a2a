package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/logger"
	"github.com/yukikurage/apm-api/internal/models"
)

type index struct {
	model   any
	table   string
	name    string
	columns string
}

var indexes = []index{
	// Lifecycle lookups
	{&models.Order{}, "orders", "idx_orders_status", "status"},
	{&models.Task{}, "tasks", "idx_tasks_status", "status"},
	{&models.Task{}, "tasks", "idx_tasks_order_id", "order_id"},
	{&models.Task{}, "tasks", "idx_tasks_workstation_id", "workstation_id"},
	{&models.Task{}, "tasks", "idx_tasks_operator_id", "operator_id"},

	// Reporting
	{&models.Performance{}, "performance", "idx_performance_user_id", "user_id"},
	{&models.Performance{}, "performance", "idx_performance_task_id", "task_id"},

	{&models.MaintenanceLog{}, "maintenance_logs", "idx_maintenance_logs_workstation_id", "workstation_id"},
	{&models.OrderFile{}, "order_files", "idx_order_files_order_id", "order_id"},
}

// AddIndexes adds the secondary indexes that are not declared on the models.
// Existing indexes are left alone so it is safe to run on every start.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			logger.Log.Debugf("Index %s already exists, skipping", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Log.Debugf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
