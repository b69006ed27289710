// Package eventstore persists append-only event collections on a key-value
// medium.
//
// Each collection is stored as one JSON array per physical key. Appends read
// the array, add the new event and write the whole array back; a per-key mutex
// keeps that read-modify-write to one writer at a time within the process.
package eventstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"glucolog/internal/domain"
)

// Layout selects how a collection maps onto physical keys.
type Layout string

const (
	// LayoutSingle stores a collection under exactly its key.
	LayoutSingle Layout = "single"
	// LayoutDaily shards a collection into one key per UTC calendar day of
	// write time. See DayKey.
	LayoutDaily Layout = "daily"
)

// ParseLayout validates a layout name. The empty string means LayoutSingle.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutSingle:
		return LayoutSingle, nil
	case LayoutDaily:
		return LayoutDaily, nil
	}
	return "", fmt.Errorf("unknown store layout %q", s)
}

// DayKey returns the physical key holding the events of collection written on
// the UTC calendar day of t. Key order is write order whatever the local zone.
func DayKey(collection string, t time.Time) string {
	return collection + "/" + t.UTC().Format("2006-01-02")
}

// Store appends and reads event collections.
type Store struct {
	kv     domain.KVStore
	layout Layout
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	last  map[string]time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLayout sets the physical key layout.
func WithLayout(l Layout) Option {
	return func(s *Store) { s.layout = l }
}

// WithClock replaces time.Now as the source of write timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store on top of kv.
func New(kv domain.KVStore, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		layout: LayoutSingle,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
		last:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Layout reports the configured layout.
func (s *Store) Layout() Layout {
	return s.layout
}

// stamper is implemented by events carrying a store-assigned timestamp.
type stamper interface {
	Stamp(t time.Time)
}

// Append adds event to the end of the collection and returns it as stored,
// with any store-assigned timestamp populated.
func Append[T any](ctx context.Context, s *Store, key string, event T) (T, error) {
	var zero T

	unlock := s.lock(key)
	defer unlock()

	now := s.stamp(key)
	if st, ok := any(&event).(stamper); ok {
		st.Stamp(now)
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return zero, fmt.Errorf("append %s: encode event: %w", key, err)
	}

	physical := s.physicalKey(key, now)
	items, err := s.load(ctx, physical)
	if err != nil {
		return zero, fmt.Errorf("append %s: %w", key, err)
	}
	// Refuse to extend a collection that ReadAll could not return.
	for i, existing := range items {
		var ev T
		if err := decodeStrict(existing, &ev); err != nil {
			return zero, fmt.Errorf("append %s: %s[%d]: %w: %v", key, physical, i, domain.ErrDeserialization, err)
		}
	}
	items = append(items, raw)

	data, err := json.Marshal(items)
	if err != nil {
		return zero, fmt.Errorf("append %s: encode collection: %w", key, err)
	}
	if err := s.kv.Set(ctx, physical, data); err != nil {
		return zero, fmt.Errorf("append %s: write %s: %w: %w", key, physical, domain.ErrStorageUnavailable, err)
	}
	return event, nil
}

// ReadAll returns every event in the collection in insertion order. A
// collection that has never been written yields an empty slice.
func ReadAll[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	keys := []string{key}
	if s.layout == LayoutDaily {
		var err error
		keys, err = s.kv.Keys(ctx, key+"/")
		if err != nil {
			return nil, fmt.Errorf("read %s: list shards: %w: %w", key, domain.ErrStorageUnavailable, err)
		}
	}

	out := make([]T, 0)
	for _, k := range keys {
		items, err := s.load(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		for i, raw := range items {
			var ev T
			if err := decodeStrict(raw, &ev); err != nil {
				return nil, fmt.Errorf("read %s: %s[%d]: %w: %v", key, k, i, domain.ErrDeserialization, err)
			}
			out = append(out, ev)
		}
	}
	return out, nil
}

// load reads one physical key as a list of raw events.
func (s *Store) load(ctx context.Context, key string) ([]json.RawMessage, error) {
	data, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w: %w", key, domain.ErrStorageUnavailable, err)
	}
	if !found {
		return []json.RawMessage{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", key, domain.ErrDeserialization, err)
	}
	return items, nil
}

func (s *Store) physicalKey(key string, at time.Time) string {
	if s.layout == LayoutDaily {
		return DayKey(key, at)
	}
	return key
}

// lock acquires the mutex for key and returns its release function.
func (s *Store) lock(key string) func() {
	s.mu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// stamp returns the write timestamp for key, strictly after the previous one
// handed out for the same key.
func (s *Store) stamp(key string) time.Time {
	now := s.now().UTC().Round(0)

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.last[key]; ok && !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	s.last[key] = now
	return now
}

func decodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
