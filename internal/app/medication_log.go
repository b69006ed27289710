package app

import (
	"context"

	"glucolog/internal/domain"
)

// Classifier assigns a pharmacological class to a medication name.
type Classifier interface {
	Classify(name string) domain.MedicationClass
}

// MedicationLog records medication administrations, classifying each one when
// it is written. Stored rows are never reclassified, so changing the rule
// table only affects rows recorded afterwards.
type MedicationLog struct {
	events     domain.EventLog[domain.MedicationRow]
	classifier Classifier
}

// NewMedicationLog creates a MedicationLog backed by the given event log and
// classifier.
func NewMedicationLog(events domain.EventLog[domain.MedicationRow], c Classifier) *MedicationLog {
	return &MedicationLog{events: events, classifier: c}
}

// Record classifies row and stores it.
func (l *MedicationLog) Record(ctx context.Context, row domain.MedicationRow) (domain.MedicationRow, error) {
	row.MedClass = l.classifier.Classify(row.MedicationName)
	if row.ID == "" {
		row.ID = newID()
	}
	return l.events.Append(ctx, row)
}

// History returns every stored row as it was recorded.
func (l *MedicationLog) History(ctx context.Context) ([]domain.MedicationRow, error) {
	return l.events.ReadAll(ctx)
}

// Classify exposes the log's classifier for previews that do not record.
func (l *MedicationLog) Classify(name string) domain.MedicationClass {
	return l.classifier.Classify(name)
}
