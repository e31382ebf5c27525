// Package store persists fetched creatures and generated teams in a relational database.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure go)
)

// Supported database/sql driver names.
const (
	DriverSQLite    = "sqlite"
	DriverSQLiteCGO = "sqlite3"
	DriverPostgres  = "pgx"
)

// Drivers lists every driver name the store can open.
var Drivers = []string{DriverSQLite, DriverSQLiteCGO, DriverPostgres}

type Config struct {
	Driver string
	DSN    string
}

func (c Config) isSQLite() bool {
	return c.Driver == DriverSQLite || c.Driver == DriverSQLiteCGO
}

type Store struct {
	db *sqlx.DB
}

// Open connects to the database and makes sure the schema exists.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, errors.New("store dsn is required")
	}
	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.isSQLite() {
		// sqlite allows a single writer, and every ":memory:" connection is its own database.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting busy timeout: %w", err)
		}
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}

	s := &Store{db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("relational store ready", slog.String("driver", cfg.Driver))
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		/* sql */ `
		CREATE TABLE IF NOT EXISTS creatures (
			name TEXT PRIMARY KEY,
			id INTEGER NOT NULL,
			types TEXT NOT NULL,
			stats TEXT NOT NULL,
			abilities TEXT NOT NULL,
			moves TEXT NOT NULL,
			height DOUBLE PRECISION NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			sprite_url TEXT NOT NULL
		)`,
		/* sql */ `CREATE INDEX IF NOT EXISTS idx_creatures_id ON creatures(id)`,
		/* sql */ `
		CREATE TABLE IF NOT EXISTS teams (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			members TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
