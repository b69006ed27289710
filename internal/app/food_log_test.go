package app_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"glucolog/internal/adapter/memory"
	"glucolog/internal/app"
	"glucolog/internal/domain"
	"glucolog/internal/eventstore"
)

func ptr(v float64) *float64 { return &v }

func TestRecordFood_Validation(t *testing.T) {
	svc := app.NewFoodLog(&mockLog[domain.FoodLogEntry]{})

	tests := []struct {
		name  string
		entry domain.FoodLogEntry
	}{
		{"missing meal type", domain.FoodLogEntry{RecipeName: "Toast"}},
		{"unknown meal type", domain.FoodLogEntry{MealType: "brunch"}},
		{"negative carbs", domain.FoodLogEntry{MealType: domain.MealLunch, Nutrition: domain.Nutrition{Carbs: -3}}},
		{"NaN protein", domain.FoodLogEntry{MealType: domain.MealLunch, Nutrition: domain.Nutrition{Protein: math.NaN()}}},
		{"negative calories", domain.FoodLogEntry{MealType: domain.MealSnack, Nutrition: domain.Nutrition{Calories: ptr(-10)}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tc.entry)
			if !errors.Is(err, app.ErrInvalidEntry) {
				t.Fatalf("expected ErrInvalidEntry, got %v", err)
			}
		})
	}
}

func TestRecordFood_AssignsID(t *testing.T) {
	svc := app.NewFoodLog(&mockLog[domain.FoodLogEntry]{})

	got, err := svc.Record(context.Background(), domain.FoodLogEntry{MealType: domain.MealBreakfast})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, err := uuid.Parse(got.ID)
	if err != nil {
		t.Fatalf("expected a UUID id, got %q: %v", got.ID, err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("expected UUIDv7, got version %d", parsed.Version())
	}

	kept, err := svc.Record(context.Background(), domain.FoodLogEntry{ID: "caller-id", MealType: domain.MealBreakfast})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kept.ID != "caller-id" {
		t.Fatalf("expected caller id to be kept, got %q", kept.ID)
	}
}

func TestFoodRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := eventstore.New(memory.New())
	svc := app.NewFoodLog(eventstore.NewCollection[domain.FoodLogEntry](store, domain.FoodKey))

	ate := time.Date(2026, 2, 8, 12, 15, 0, 0, time.UTC)
	in := []domain.FoodLogEntry{
		{
			ID:         "meal-1",
			RecipeID:   "recipe-42",
			RecipeName: "Greek salad",
			Timestamp:  ate,
			MealType:   domain.MealLunch,
			Nutrition:  domain.Nutrition{Protein: 12, Carbs: 18, Calories: ptr(320)},
			ImageURL:   "https://example.com/salad.jpg",
		},
		{ID: "meal-2", RecipeName: "Apple", MealType: domain.MealSnack, Nutrition: domain.Nutrition{Carbs: 25}},
	}
	for _, e := range in {
		if _, err := svc.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	items, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	first := items[0]
	if first.ID != "meal-1" || first.RecipeID != "recipe-42" || first.MealType != domain.MealLunch {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if !first.Timestamp.Equal(ate) {
		t.Errorf("expected caller timestamp %v, got %v", ate, first.Timestamp)
	}
	if first.Nutrition.Calories == nil || *first.Nutrition.Calories != 320 {
		t.Errorf("expected 320 calories, got %v", first.Nutrition.Calories)
	}
	second := items[1]
	if second.ID != "meal-2" || second.Nutrition.Calories != nil {
		t.Errorf("unexpected second entry: %+v", second)
	}
	if second.Timestamp.IsZero() {
		t.Error("expected store to stamp a missing timestamp")
	}
}
