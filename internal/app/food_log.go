package app

import (
	"context"

	"glucolog/internal/domain"
)

// FoodLog records and lists meals.
type FoodLog struct {
	events domain.EventLog[domain.FoodLogEntry]
}

// NewFoodLog creates a FoodLog backed by the given event log.
func NewFoodLog(events domain.EventLog[domain.FoodLogEntry]) *FoodLog {
	return &FoodLog{events: events}
}

// Record validates and stores a meal. An empty ID is replaced with a new one;
// a zero timestamp is stamped by the store.
func (l *FoodLog) Record(ctx context.Context, e domain.FoodLogEntry) (domain.FoodLogEntry, error) {
	if !e.MealType.Valid() {
		return domain.FoodLogEntry{}, invalid("mealType must be one of breakfast, lunch, dinner, snack")
	}
	n := e.Nutrition
	if !finiteNonNegative(n.Protein) || !finiteNonNegative(n.Carbs) {
		return domain.FoodLogEntry{}, invalid("nutrition values must be finite, non-negative numbers")
	}
	if n.Calories != nil && !finiteNonNegative(*n.Calories) {
		return domain.FoodLogEntry{}, invalid("nutrition values must be finite, non-negative numbers")
	}
	if e.ID == "" {
		e.ID = newID()
	}
	return l.events.Append(ctx, e)
}

// History returns every meal in the order recorded.
func (l *FoodLog) History(ctx context.Context) ([]domain.FoodLogEntry, error) {
	return l.events.ReadAll(ctx)
}
