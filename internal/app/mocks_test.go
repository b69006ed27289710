package app_test

import (
	"context"
)

type mockLog[T any] struct {
	appendFn func(ctx context.Context, event T) (T, error)
	readFn   func(ctx context.Context) ([]T, error)
}

func (m *mockLog[T]) Append(ctx context.Context, event T) (T, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, event)
	}
	return event, nil
}

func (m *mockLog[T]) ReadAll(ctx context.Context) ([]T, error) {
	if m.readFn != nil {
		return m.readFn(ctx)
	}
	return nil, nil
}
