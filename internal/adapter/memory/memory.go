// Package memory implements an in-memory key-value medium for development and
// testing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"glucolog/internal/domain"
)

// DB implements an in-memory key-value storage.
type DB struct {
	mu     sync.Mutex
	values map[string][]byte
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		values: make(map[string][]byte),
	}
}

// Ensure interfaces are met.
var _ domain.KVStore = (*DB)(nil)

// Get returns a copy of the value stored under key.
func (db *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set replaces the value stored under key.
func (db *DB) Set(ctx context.Context, key string, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	db.values[key] = v
	return nil
}

// Keys lists stored keys with the given prefix in ascending order.
func (db *DB) Keys(ctx context.Context, prefix string) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	keys := make([]string, 0)
	for k := range db.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op so DB can stand in for the durable media.
func (db *DB) Close() error {
	return nil
}
