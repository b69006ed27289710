// Package sqlite is a durable domain.KVStore backed by a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"glucolog/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// Schema versions:
// 1 - kv table
const currentSchemaVersion = 1

// DB is a key-value medium over SQLite in WAL mode.
type DB struct {
	sql *sql.DB
}

var _ domain.KVStore = (*DB)(nil)

// Open creates or opens the database at path, applies pragmas and the schema.
// Safe to call repeatedly on the same file.
func Open(path string) (*DB, error) {
	s, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := s.Ping(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// SQLite allows one writer at a time.
	s.SetMaxOpenConns(1)
	s.SetMaxIdleConns(1)

	if err := applyPragmas(s); err != nil {
		_ = s.Close()
		return nil, err
	}
	if err := migrate(s); err != nil {
		_ = s.Close()
		return nil, err
	}
	return &DB{sql: s}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	if d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

func applyPragmas(s *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := s.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func migrate(s *sql.DB) error {
	if _, err := s.Exec(schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	var version int
	if err := s.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("migrate: get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("migrate: database schema version %d is newer than supported %d", version, currentSchemaVersion)
	}
	if _, err := s.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("migrate: set user_version: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (d *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := d.sql.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set replaces the value stored under key.
func (d *DB) Set(ctx context.Context, key string, value []byte) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Keys lists keys starting with prefix in ascending order.
func (d *DB) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, length(?1)) = ?1 ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("keys %q: %w", prefix, err)
	}
	defer rows.Close() //nolint:errcheck

	out := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("keys %q: %w", prefix, err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}
