// Package store provides storage backends for session state.
//
// This file implements the SQLite-backed store, the default persistent
// backend.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database
// directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore is a session store backed by a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN. The DSN is a
// file path to the database file; its directory is created if missing.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied")

	return &SQLiteStore{db: db}, nil
}

// GetSession returns the payload for the key/workflow pair, or (nil, nil)
// when the row is absent or expired.
func (s *SQLiteStore) GetSession(key, workflow string) ([]byte, error) {
	var data string
	err := s.db.QueryRow(
		`SELECT data FROM sessions WHERE conversation_key = ? AND workflow = ? AND expires_at > ?`,
		key, workflow, time.Now().UTC(),
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetSession failed", "error", err, "key", key, "workflow", workflow)
		return nil, fmt.Errorf("failed to query session for %s/%s: %w", key, workflow, err)
	}
	return []byte(data), nil
}

// SetSession upserts the payload with the given TTL.
func (s *SQLiteStore) SetSession(key, workflow string, data []byte, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO sessions (conversation_key, workflow, data, expires_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(conversation_key, workflow)
		 DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at, updated_at = excluded.updated_at`,
		key, workflow, string(data), now.Add(ttl), now,
	)
	if err != nil {
		slog.Error("SQLiteStore SetSession failed", "error", err, "key", key, "workflow", workflow)
		return fmt.Errorf("failed to save session for %s/%s: %w", key, workflow, err)
	}
	slog.Debug("SQLiteStore SetSession succeeded", "key", key, "workflow", workflow, "ttl", ttl)
	return nil
}

// DeleteSession removes the row if present.
func (s *SQLiteStore) DeleteSession(key, workflow string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE conversation_key = ? AND workflow = ?`, key, workflow)
	if err != nil {
		slog.Error("SQLiteStore DeleteSession failed", "error", err, "key", key, "workflow", workflow)
		return fmt.Errorf("failed to delete session for %s/%s: %w", key, workflow, err)
	}
	return nil
}

// DeleteExpired removes rows whose TTL has elapsed.
func (s *SQLiteStore) DeleteExpired() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		slog.Error("SQLiteStore DeleteExpired failed", "error", err)
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		slog.Debug("SQLiteStore DeleteExpired removed rows", "count", removed)
	}
	return removed, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
