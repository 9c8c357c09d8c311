// Package postgres persists user profiles in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the user repository port.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and bootstraps the schema.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
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
