// Package store provides storage backends for session state.
//
// This file implements the PostgreSQL-backed store, for deployments that
// share session state across processes.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	_ "github.com/lib/pq"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore is a session store backed by PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL store with the given DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied")

	return &PostgresStore{db: db}, nil
}

// GetSession returns the payload for the key/workflow pair, or (nil, nil)
// when the row is absent or expired.
func (s *PostgresStore) GetSession(key, workflow string) ([]byte, error) {
	var data string
	err := s.db.QueryRow(
		`SELECT data FROM sessions WHERE conversation_key = $1 AND workflow = $2 AND expires_at > now()`,
		key, workflow,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetSession failed", "error", err, "key", key, "workflow", workflow)
		return nil, fmt.Errorf("failed to query session for %s/%s: %w", key, workflow, err)
	}
	return []byte(data), nil
}

// SetSession upserts the payload with the given TTL.
func (s *PostgresStore) SetSession(key, workflow string, data []byte, ttl time.Duration) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (conversation_key, workflow, data, expires_at, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (conversation_key, workflow)
		 DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`,
		key, workflow, string(data), time.Now().UTC().Add(ttl),
	)
	if err != nil {
		slog.Error("PostgresStore SetSession failed", "error", err, "key", key, "workflow", workflow)
		return fmt.Errorf("failed to save session for %s/%s: %w", key, workflow, err)
	}
	slog.Debug("PostgresStore SetSession succeeded", "key", key, "workflow", workflow, "ttl", ttl)
	return nil
}

// DeleteSession removes the row if present.
func (s *PostgresStore) DeleteSession(key, workflow string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE conversation_key = $1 AND workflow = $2`, key, workflow)
	if err != nil {
		slog.Error("PostgresStore DeleteSession failed", "error", err, "key", key, "workflow", workflow)
		return fmt.Errorf("failed to delete session for %s/%s: %w", key, workflow, err)
	}
	return nil
}

// DeleteExpired removes rows whose TTL has elapsed.
func (s *PostgresStore) DeleteExpired() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		slog.Error("PostgresStore DeleteExpired failed", "error", err)
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		slog.Debug("PostgresStore DeleteExpired removed rows", "count", removed)
	}
	return removed, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
