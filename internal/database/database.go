// Package database owns the local sqlite store: opening the data file,
// applying versioned schema migrations, and seeding first-run defaults.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hetpatel672/BudgetWise/internal/config"
	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/logger"
	"github.com/hetpatel672/BudgetWise/internal/migrations"
)

// Manager handles the lifecycle of the local store.
type Manager struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the sqlite data file. Failure is
// surfaced as a typed STORE_UNAVAILABLE error rather than being swallowed;
// callers decide how to degrade.
func Open(cfg *config.Config) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	dsn := cfg.DBPath + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	return &Manager{db: db}, nil
}

// Migrate applies pending schema migrations from the embedded migration set.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running database migrations...")

	mig, err := m.newMigrate()
	if err != nil {
		return err
	}
	defer closeMigrate(mig)

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// MigrateDown rolls back the given number of migrations.
func (m *Manager) MigrateDown(steps int) error {
	mig, err := m.newMigrate()
	if err != nil {
		return err
	}
	defer closeMigrate(mig)

	if err := mig.Steps(-steps); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// Version returns the current migration version and dirty flag.
func (m *Manager) Version() (uint, bool, error) {
	mig, err := m.newMigrate()
	if err != nil {
		return 0, false, err
	}
	defer closeMigrate(mig)

	return mig.Version()
}

func (m *Manager) newMigrate() (*migrate.Migrate, error) {
	sqlDB, err := m.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	drv, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

func closeMigrate(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Get().Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnf("migrate database close error: %v", dbErr)
	}
}

// Seed inserts the first-run defaults if they are absent.
func (m *Manager) Seed() error {
	return SeedDefaults(m.db)
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close closes the underlying database connection.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
