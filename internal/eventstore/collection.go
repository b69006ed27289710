package eventstore

import (
	"context"

	"glucolog/internal/domain"
)

// Collection is a typed view of one collection key.
type Collection[T any] struct {
	store *Store
	key   string
}

// NewCollection binds key to the event type T.
func NewCollection[T any](s *Store, key string) *Collection[T] {
	return &Collection[T]{store: s, key: key}
}

var (
	_ domain.EventLog[domain.GlucoseEntry]  = (*Collection[domain.GlucoseEntry])(nil)
	_ domain.EventLog[domain.FoodLogEntry]  = (*Collection[domain.FoodLogEntry])(nil)
	_ domain.EventLog[domain.MedicationRow] = (*Collection[domain.MedicationRow])(nil)
)

// Key returns the collection key.
func (c *Collection[T]) Key() string {
	return c.key
}

// Append stores event at the end of the collection.
func (c *Collection[T]) Append(ctx context.Context, event T) (T, error) {
	return Append(ctx, c.store, c.key, event)
}

// ReadAll returns the collection in insertion order.
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	return ReadAll[T](ctx, c.store, c.key)
}
