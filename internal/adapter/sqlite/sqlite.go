// Package sqlite persists user profiles in an embedded SQLite database. It
// is the recommended store for single-binary deployments: per-user rows
// instead of the legacy whole-document rewrite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a *sql.DB and implements the user repository port.
type DB struct {
	sql *sql.DB
}

// Open opens the SQLite database at path and bootstraps the schema.
func Open(path string) (*DB, error) {
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
	s, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// The driver serializes writes; a single connection avoids SQLITE_BUSY.
	s.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database handle.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (username TEXT PRIMARY KEY, level INTEGER NOT NULL, xp INTEGER NOT NULL, xp_limit INTEGER NOT NULL);",
		"CREATE TABLE IF NOT EXISTS logs (username TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE, seq INTEGER NOT NULL, date TEXT NOT NULL, action_type TEXT NOT NULL, xp INTEGER NOT NULL, note TEXT NOT NULL, PRIMARY KEY(username, seq));",
		"CREATE INDEX IF NOT EXISTS idx_logs_username_date ON logs(username, date);",
		"CREATE TABLE IF NOT EXISTS reflections (username TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE, seq INTEGER NOT NULL, date TEXT NOT NULL, academic_topic TEXT NOT NULL, skill_topic TEXT NOT NULL, user_notes TEXT NOT NULL, PRIMARY KEY(username, seq));",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
