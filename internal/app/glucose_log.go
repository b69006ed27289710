package app

import (
	"context"

	"glucolog/internal/domain"
)

// GlucoseReading is what a caller supplies when recording glucose; the
// timestamp is assigned by the store.
type GlucoseReading struct {
	GlucoseMgDL float64  `json:"glucose_mg_dl"`
	Context     []string `json:"context"`
}

// GlucoseLog records and lists glucose readings.
type GlucoseLog struct {
	events domain.EventLog[domain.GlucoseEntry]
}

// NewGlucoseLog creates a GlucoseLog backed by the given event log.
func NewGlucoseLog(events domain.EventLog[domain.GlucoseEntry]) *GlucoseLog {
	return &GlucoseLog{events: events}
}

// Record validates and stores a reading. Values outside the physiological
// range are kept as given.
func (l *GlucoseLog) Record(ctx context.Context, r GlucoseReading) (domain.GlucoseEntry, error) {
	if !finiteNonNegative(r.GlucoseMgDL) {
		return domain.GlucoseEntry{}, invalid("glucose_mg_dl must be a finite, non-negative number")
	}
	return l.events.Append(ctx, domain.GlucoseEntry{
		GlucoseMgDL: r.GlucoseMgDL,
		Context:     contextTags(r.Context),
	})
}

// History returns every reading in the order recorded.
func (l *GlucoseLog) History(ctx context.Context) ([]domain.GlucoseEntry, error) {
	return l.events.ReadAll(ctx)
}

// contextTags drops empty and repeated tags and keeps the rest verbatim in
// first-seen order.
func contextTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, tag := range in {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
