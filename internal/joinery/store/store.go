// Package store owns the single lazily-configured database handle. When
// the database config is absent or still a placeholder the handle stays
// nil: reads degrade to empty collections and writes are rejected with
// ErrUnavailable instead of failing at startup.
package store

import (
	"errors"
	"fmt"

	"github.com/bitfantasy/joinery/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnavailable is returned by write paths when no database is configured
var ErrUnavailable = errors.New("store not configured")

// Store wraps the shared gorm handle. Read-only after New; safe for
// concurrent use.
type Store struct {
	db *gorm.DB
}

// New connects to postgres, or returns a degraded Store when the config
// is unconfigured. A configured-but-unreachable database is still an
// error: degraded mode is only for the intentionally absent case.
func New(cfg config.DatabaseConfig) (*Store, error) {
	if !cfg.Configured() {
		return &Store{}, nil
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return &Store{db: db}, nil
}

// FromDB wraps an existing handle (used by tests)
func FromDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Available reports whether a database is configured
func (s *Store) Available() bool {
	return s != nil && s.db != nil
}

// DB returns the gorm handle; nil in degraded mode
func (s *Store) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}
