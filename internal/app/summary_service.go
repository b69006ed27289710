package app

import (
	"context"
	"math"
	"time"

	"glucolog/internal/domain"
)

// SummaryService aggregates the logs into per-day summaries.
type SummaryService struct {
	glucose     domain.EventLog[domain.GlucoseEntry]
	food        domain.EventLog[domain.FoodLogEntry]
	medications domain.EventLog[domain.MedicationRow]
	now         func() time.Time
}

// SummaryOption configures a SummaryService.
type SummaryOption func(*SummaryService)

// WithSummaryClock replaces time.Now as the source of "today".
func WithSummaryClock(now func() time.Time) SummaryOption {
	return func(s *SummaryService) { s.now = now }
}

// NewSummaryService creates a SummaryService over the three logs.
func NewSummaryService(g domain.EventLog[domain.GlucoseEntry], f domain.EventLog[domain.FoodLogEntry], m domain.EventLog[domain.MedicationRow], opts ...SummaryOption) *SummaryService {
	s := &SummaryService{glucose: g, food: f, medications: m, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DaySummary is a single day returned by Daily.
type DaySummary struct {
	Day             string        `json:"day"`
	Glucose         *GlucoseStats `json:"glucose"`
	Meals           int           `json:"meals"`
	CarbsGrams      float64       `json:"carbsGrams"`
	ProteinGrams    float64       `json:"proteinGrams"`
	Calories        float64       `json:"calories"`
	MedicationDoses int           `json:"medicationDoses"`
}

// GlucoseStats summarises a day's readings in Unit.
type GlucoseStats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Unit  string  `json:"unit"`
}

// Daily returns summaries for the last days local days, oldest first, with
// glucose converted to unit.
func (s *SummaryService) Daily(ctx context.Context, days int, unit string) ([]DaySummary, error) {
	if unit != domain.UnitMgDL && unit != domain.UnitMmolL {
		return nil, invalid("unit must be %q or %q", domain.UnitMgDL, domain.UnitMmolL)
	}
	if days < 1 {
		days = 1
	}
	if days > 366 {
		days = 366
	}

	readings, err := s.glucose.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	meals, err := s.food.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	doses, err := s.medications.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().In(time.Local)
	points := make([]DaySummary, 0, days)
	index := make(map[string]int, days)
	for i := days - 1; i >= 0; i-- {
		day := localDay(today.AddDate(0, 0, -i))
		index[day] = len(points)
		points = append(points, DaySummary{Day: day})
	}

	sums := make(map[string]float64)
	for _, r := range readings {
		i, ok := index[localDay(r.Timestamp)]
		if !ok {
			continue
		}
		p := &points[i]
		v := domain.ConvertGlucose(r.GlucoseMgDL, domain.UnitMgDL, unit)
		if p.Glucose == nil {
			p.Glucose = &GlucoseStats{Min: v, Max: v, Unit: unit}
		}
		p.Glucose.Count++
		p.Glucose.Min = math.Min(p.Glucose.Min, v)
		p.Glucose.Max = math.Max(p.Glucose.Max, v)
		sums[p.Day] += v
	}
	for i := range points {
		if g := points[i].Glucose; g != nil {
			g.Mean = sums[points[i].Day] / float64(g.Count)
		}
	}

	for _, m := range meals {
		i, ok := index[localDay(m.Timestamp)]
		if !ok {
			continue
		}
		p := &points[i]
		p.Meals++
		p.CarbsGrams += m.Nutrition.Carbs
		p.ProteinGrams += m.Nutrition.Protein
		if m.Nutrition.Calories != nil {
			p.Calories += *m.Nutrition.Calories
		}
	}

	for _, d := range doses {
		if i, ok := index[localDay(d.RecordedAt)]; ok {
			points[i].MedicationDoses++
		}
	}
	return points, nil
}

func localDay(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
