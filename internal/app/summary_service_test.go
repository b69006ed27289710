package app_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"glucolog/internal/app"
	"glucolog/internal/domain"
)

// summaryNow is the fixed "now" of every summary built by newSummary.
var summaryNow = time.Date(2026, 2, 8, 12, 0, 0, 0, time.Local)

func newSummary(g []domain.GlucoseEntry, f []domain.FoodLogEntry, m []domain.MedicationRow) *app.SummaryService {
	return app.NewSummaryService(
		&mockLog[domain.GlucoseEntry]{readFn: func(context.Context) ([]domain.GlucoseEntry, error) { return g, nil }},
		&mockLog[domain.FoodLogEntry]{readFn: func(context.Context) ([]domain.FoodLogEntry, error) { return f, nil }},
		&mockLog[domain.MedicationRow]{readFn: func(context.Context) ([]domain.MedicationRow, error) { return m, nil }},
		app.WithSummaryClock(func() time.Time { return summaryNow }),
	)
}

func TestDaily_BadUnit(t *testing.T) {
	_, err := newSummary(nil, nil, nil).Daily(context.Background(), 7, "mg")
	if !errors.Is(err, app.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry for bad unit, got %v", err)
	}
}

func TestDaily_Success(t *testing.T) {
	now := summaryNow
	yesterday := now.AddDate(0, 0, -1)
	svc := newSummary(
		[]domain.GlucoseEntry{
			{GlucoseMgDL: 100, Timestamp: now},
			{GlucoseMgDL: 140, Timestamp: now},
			{GlucoseMgDL: 90, Timestamp: yesterday},
			{GlucoseMgDL: 300, Timestamp: now.AddDate(0, 0, -30)},
		},
		[]domain.FoodLogEntry{
			{MealType: domain.MealLunch, Timestamp: now, Nutrition: domain.Nutrition{Carbs: 40, Protein: 20, Calories: ptr(500)}},
			{MealType: domain.MealSnack, Timestamp: now, Nutrition: domain.Nutrition{Carbs: 15}},
		},
		[]domain.MedicationRow{{RecordedAt: now}, {RecordedAt: yesterday}},
	)

	points, err := svc.Daily(context.Background(), 3, domain.UnitMgDL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Glucose != nil || points[0].Meals != 0 {
		t.Errorf("expected empty first day, got %+v", points[0])
	}

	y := points[1]
	if y.Glucose == nil || y.Glucose.Count != 1 || y.Glucose.Mean != 90 {
		t.Errorf("unexpected yesterday glucose: %+v", y.Glucose)
	}
	if y.MedicationDoses != 1 {
		t.Errorf("expected 1 dose yesterday, got %d", y.MedicationDoses)
	}

	today := points[2]
	if today.Day != "2026-02-08" {
		t.Errorf("expected last point to be today, got %s", today.Day)
	}
	g := today.Glucose
	if g == nil || g.Count != 2 || g.Min != 100 || g.Max != 140 || g.Mean != 120 {
		t.Errorf("unexpected today glucose: %+v", g)
	}
	if today.Meals != 2 || today.CarbsGrams != 55 || today.ProteinGrams != 20 || today.Calories != 500 {
		t.Errorf("unexpected today food totals: %+v", today)
	}
}

func TestDaily_ConvertUnit(t *testing.T) {
	svc := newSummary([]domain.GlucoseEntry{{GlucoseMgDL: 180, Timestamp: summaryNow}}, nil, nil)

	points, err := svc.Daily(context.Background(), 1, domain.UnitMmolL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g := points[0].Glucose
	if g == nil || g.Unit != domain.UnitMmolL {
		t.Fatalf("expected mmol/L stats, got %+v", g)
	}
	if math.Abs(g.Mean-9.99) > 0.01 {
		t.Errorf("expected ~9.99 mmol/L, got %v", g.Mean)
	}
}

func TestDaily_ClampsDays(t *testing.T) {
	svc := newSummary(nil, nil, nil)

	points, err := svc.Daily(context.Background(), 1000, domain.UnitMgDL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 366 {
		t.Fatalf("expected 366 points, got %d", len(points))
	}

	points, _ = svc.Daily(context.Background(), 0, domain.UnitMgDL)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
}

func TestDaily_StorageError(t *testing.T) {
	svc := app.NewSummaryService(
		&mockLog[domain.GlucoseEntry]{readFn: func(context.Context) ([]domain.GlucoseEntry, error) {
			return nil, domain.ErrDeserialization
		}},
		&mockLog[domain.FoodLogEntry]{},
		&mockLog[domain.MedicationRow]{},
	)
	_, err := svc.Daily(context.Background(), 7, domain.UnitMgDL)
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestDaily_DayBoundariesFollowClock(t *testing.T) {
	lastMoment := time.Date(2026, 2, 8, 23, 59, 59, 0, time.Local)
	readings := []domain.GlucoseEntry{
		{GlucoseMgDL: 100, Timestamp: time.Date(2026, 2, 8, 0, 0, 0, 0, time.Local)},
		{GlucoseMgDL: 200, Timestamp: lastMoment},
		{GlucoseMgDL: 300, Timestamp: lastMoment.Add(2 * time.Second)},
	}
	svc := app.NewSummaryService(
		&mockLog[domain.GlucoseEntry]{readFn: func(context.Context) ([]domain.GlucoseEntry, error) { return readings, nil }},
		&mockLog[domain.FoodLogEntry]{},
		&mockLog[domain.MedicationRow]{},
		app.WithSummaryClock(func() time.Time { return lastMoment }),
	)

	points, err := svc.Daily(context.Background(), 1, domain.UnitMgDL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 || points[0].Day != "2026-02-08" {
		t.Fatalf("expected a single 2026-02-08 point, got %+v", points)
	}
	g := points[0].Glucose
	if g == nil || g.Count != 2 || g.Max != 200 {
		t.Fatalf("expected the two readings of 2026-02-08, got %+v", g)
	}
}
