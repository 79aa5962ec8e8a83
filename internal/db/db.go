package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/pandeptwidyaop/uniport/pkg/errors"

	"github.com/pandeptwidyaop/uniport/internal/db/models"
)

// uniqueNameCountryIndex is the dedupe key on universities. EnsureSchema adds
// it to tables created by schema versions that predate the constraint.
const uniqueNameCountryIndex = "universities_name_country_key"

// Config holds database configuration.
type Config struct {
	Driver      string // "postgres" or "sqlite"
	DSN         string // connection URL for postgres, file path (or ":memory:") for sqlite
	SQLLogLevel string // silent, error, warn, info (default: silent)
}

// Connect establishes a connection to the database. Postgres connections get
// an unbounded statement timeout since full-dataset imports can run for
// minutes.
func Connect(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch strings.ToLower(cfg.Driver) {
	case "sqlite":
		// SQLite with datetime parsing and foreign key enforcement enabled
		dialector = sqlite.Open(cfg.DSN + "?_pragma=foreign_keys(1)&_time_format=sqlite")

	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN)

	default:
		return nil, fmt.Errorf("%w: %s (supported: sqlite, postgres)", apperrors.ErrUnsupportedDriver, cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(sqlLogLevel(cfg.SQLLogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// The pipeline is strictly sequential: one shared connection spans the
	// whole run, so savepoints and the open batch transaction always live on
	// the same session.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("SET statement_timeout = 0").Error; err != nil {
			return nil, fmt.Errorf("failed to disable statement timeout: %w", err)
		}
	}

	return db, nil
}

// EnsureSchema creates the import tables and their constraints if absent.
// Safe to run on every invocation.
func EnsureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.University{}, // Must be first (parent table)
		&models.UniversityDomain{},
		&models.ImportFailure{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Tables created before the dedupe key existed lack the unique index;
	// AutoMigrate alone does not backfill it on an existing table.
	migrator := db.Migrator()
	if !migrator.HasIndex(&models.University{}, uniqueNameCountryIndex) {
		if err := migrator.CreateIndex(&models.University{}, uniqueNameCountryIndex); err != nil {
			return fmt.Errorf("failed to create unique index %s: %w", uniqueNameCountryIndex, err)
		}
	}

	return nil
}

// sqlLogLevel maps a config string to a gorm log level.
func sqlLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}
