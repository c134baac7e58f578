package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nextclip/attribution/internal/dbx"
)

// SQLite implements KeyValueStore over a local SQLite database, using a
// DBTX (either *sql.DB or *sql.Tx). SQLite has no per-entry expiry, so
// ttl is ignored: this medium behaves like structured local storage.
type SQLite struct {
	db dbx.DBTX
}

// NewSQLite returns a SQLite store bound to the given DBTX.
func NewSQLite(db dbx.DBTX) *SQLite {
	return &SQLite{db: db}
}

// InitSQLiteSchema creates the backing table if it does not exist yet.
func InitSQLiteSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS attribution_kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("failed to create attribution_kv: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM attribution_kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to select value: %w", err)
	}
	return value, true, nil
}

// Set upserts the value by key. On conflict the value and timestamp are
// replaced.
func (s *SQLite) Set(ctx context.Context, key, value string, _ time.Duration) error {
	query := `INSERT INTO attribution_kv (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value,
				updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to upsert value: %w", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM attribution_kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}
