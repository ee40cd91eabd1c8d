// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"time"

	_ "github.com/mattn/go-sqlite3" // cgo SQLite driver, registered as "sqlite3"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure Go SQLite driver, registered as "sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Supported database/sql driver names.
const (
	DriverModernc = "sqlite"
	DriverCGO     = "sqlite3"
)

// DBConfig holds database configuration options.
type DBConfig struct {
	// Driver selects the SQLite driver: DriverModernc (default) or DriverCGO.
	Driver string
	// MaxOpenConns is the maximum number of open connections to the database.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of connections in the idle connection pool.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	ConnMaxIdleTime time.Duration
}

// DefaultDBConfig returns sensible defaults for SQLite.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		Driver: DriverModernc,
		// SQLite with WAL mode supports multiple readers but single writer
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// NewDB opens a SQLite database connection and configures it for optimal performance.
func NewDB(path string) (*sql.DB, error) {
	return NewDBWithConfig(path, DefaultDBConfig())
}

// NewDBWithConfig opens a SQLite database connection with custom configuration.
// Pragmas are passed in the DSN so that every pooled connection gets them,
// foreign key enforcement in particular.
func NewDBWithConfig(path string, cfg DBConfig) (*sql.DB, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverModernc
	}

	dsn, err := buildDSN(cfg.Driver, path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func buildDSN(driver, path string) (string, error) {
	q := url.Values{}
	switch driver {
	case DriverModernc:
		for _, p := range []string{
			"journal_mode(WAL)",   // Write-Ahead Logging for better concurrency
			"busy_timeout(5000)",  // Wait 5s when database is locked
			"synchronous(NORMAL)", // Good balance of safety and speed
			"foreign_keys(1)",     // Enforce foreign key constraints
			"temp_store(MEMORY)",  // Store temp tables in memory
		} {
			q.Add("_pragma", p)
		}
		// Store time.Time in the same layout as mattn/go-sqlite3
		q.Set("_time_format", "sqlite")
	case DriverCGO:
		q.Set("_journal_mode", "WAL")
		q.Set("_busy_timeout", "5000")
		q.Set("_synchronous", "NORMAL")
		q.Set("_foreign_keys", "1")
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
	return "file:" + path + "?" + q.Encode(), nil
}

// Migrate runs all pending database migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// Now returns the current time in the form stored by the queries:
// UTC, truncated to whole seconds, so text comparisons in SQL stay ordered.
func Now() time.Time {
	return Timestamp(time.Now())
}

// Timestamp normalizes t for storage.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
