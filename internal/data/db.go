package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"   // Register the "postgres" driver with database/sql.
	_ "modernc.org/sqlite" // Register the pure-Go "sqlite" driver.
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const pingTimeout = 5 * time.Second

// sqliteSchema mirrors the Postgres lib_books table. Postgres schemas are
// managed outside the application; SQLite databases are created on demand.
const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS lib_books (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		books_name TEXT NOT NULL,
		author     TEXT,
		isbn       TEXT,
		read_date  TIMESTAMP,
		rating     INTEGER,
		notes      TEXT
	)`

// DBConfig describes how to open the connection pool.
type DBConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// OpenDB opens a connection pool for cfg.Driver and pings it. For SQLite the
// lib_books table is created when missing.
func OpenDB(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	if cfg.Driver != DriverPostgres && cfg.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// sql.Open only validates its arguments; it does not connect yet.
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite && isMemoryDSN(cfg.DSN) {
		// Every connection to ":memory:" is a separate database, so the pool
		// must hold on to exactly one.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.MaxIdleTime > 0 {
			db.SetConnMaxIdleTime(cfg.MaxIdleTime)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
			db.Close()
			return nil, fmt.Errorf("create lib_books table: %w", err)
		}
	}

	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == "" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
