// Package domain contains the core health log entities and the ports the
// application depends on.
package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable indicates the storage medium could not be read or
	// written.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrDeserialization indicates stored data exists but does not match its
	// expected shape. It is treated as a storage failure by callers.
	ErrDeserialization = fmt.Errorf("%w: stored data is unreadable", ErrStorageUnavailable)
)

// KVStore is the port for the durable key-value medium events are written to.
// Get reports found=false for a key that has never been written.
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Keys returns every stored key starting with prefix, sorted ascending.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// EventLog is an append-only, insertion-ordered sequence of events of one type.
type EventLog[T any] interface {
	Append(ctx context.Context, event T) (T, error)
	ReadAll(ctx context.Context) ([]T, error)
}
