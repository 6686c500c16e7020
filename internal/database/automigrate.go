package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

// models lists every persisted model in dependency order
func models() []modelInfo {
	return []modelInfo{
		{&domain.Rocket{}, "rockets"},
		{&domain.StepTemplate{}, "step_templates"},
		{&domain.TemplateField{}, "template_fields"},
		{&domain.ProductionStep{}, "production_steps"},
		{&domain.Approval{}, "approvals"},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	all := models()
	list := make([]interface{}, 0, len(all))
	for _, m := range all {
		list = append(list, m.model)
	}

	if err := db.AutoMigrate(list...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

// SafeAutoMigrate migrates one table at a time and logs whether each table
// was created or only had its schema updated.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	all := models()

	logger.Info("Starting safe auto-migration",
		zap.Int("total_models", len(all)),
	)

	for _, m := range all {
		tableExists := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Successfully migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", tableExists),
		)
	}

	logger.Info("Safe auto-migration completed successfully",
		zap.Int("tables_migrated", len(all)),
	)

	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate up to maxRetries times with linear backoff
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoffDuration := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoffDuration),
				zap.Error(err),
			)
			time.Sleep(backoffDuration)
		}
	}

	logger.Error("Migration failed after all retry attempts",
		zap.Int("total_attempts", maxRetries),
		zap.Error(err),
	)
	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
