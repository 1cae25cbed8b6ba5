package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/pkg/logger"
)

// NewGormConnection opens a PostgreSQL connection from a DSN and configures
// the underlying connection pool. Constraint violations are translated into
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated so callers never have to
// inspect driver error strings.
func NewGormConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Bounded pool shared across all concurrent requests
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger.Info().Msg("Successfully connected to PostgreSQL database")
	return db, nil
}
