package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite opens (creating if needed) the embedded database file, brings
// the schema to the latest version and guarantees the default seed data
// exists. The store is opened once per process; a concurrently locked file
// surfaces as ErrStoreBlocked.
func OpenSQLite(dbPath string, log zerolog.Logger) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			&zerologGormWriter{log: log},
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		if isLockedError(err) {
			return nil, fmt.Errorf("%w: %v", ErrStoreBlocked, err)
		}
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Probe before migrating so a lock held by another session is reported
	// as blocked rather than as a migration failure.
	if err := database.Exec(`SELECT 1`).Error; err != nil {
		if isLockedError(err) {
			return nil, fmt.Errorf("%w: %v", ErrStoreBlocked, err)
		}
		return nil, fmt.Errorf("probe sqlite: %w", err)
	}

	if err := applyMigrations(database, log); err != nil {
		if isLockedError(err) {
			return nil, fmt.Errorf("%w: %v", ErrStoreBlocked, err)
		}
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	if err := EnsureSeeded(database); err != nil {
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	return database, nil
}

type zerologGormWriter struct {
	log zerolog.Logger
}

func (w *zerologGormWriter) Printf(format string, args ...any) {
	w.log.Warn().Msgf(format, args...)
}
