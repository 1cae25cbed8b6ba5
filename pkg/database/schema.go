package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/favorites-service/pkg/logger"
)

// Migrate runs additive schema migrations for the given models.
func Migrate(db *gorm.DB, models ...interface{}) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Reset drops the tables for the given models and recreates them, including
// all indexes and foreign key constraints, inside a single transaction. Any
// statement error rolls back the whole batch.
//
// Irreversibly discards all existing data. Intended for bootstrap and demo
// environments only; gate it behind an explicit flag.
func Reset(db *gorm.DB, models ...interface{}) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		// Drop in reverse order so dependent tables go first
		for i := len(models) - 1; i >= 0; i-- {
			if err := tx.Migrator().DropTable(models[i]); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}
		if err := tx.AutoMigrate(models...); err != nil {
			return fmt.Errorf("failed to recreate schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("schema reset failed: %w", err)
	}

	logger.Logger.Warn().Msg("Schema reset: all tables dropped and recreated")
	return nil
}
