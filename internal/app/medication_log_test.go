package app_test

import (
	"context"
	"reflect"
	"testing"

	"glucolog/internal/adapter/memory"
	"glucolog/internal/app"
	"glucolog/internal/domain"
	"glucolog/internal/eventstore"
	"glucolog/internal/medclass"
)

type classifierFunc func(string) domain.MedicationClass

func (f classifierFunc) Classify(name string) domain.MedicationClass { return f(name) }

func TestRecordMedication_ClassifiesBeforeAppend(t *testing.T) {
	var appended domain.MedicationRow
	svc := app.NewMedicationLog(&mockLog[domain.MedicationRow]{
		appendFn: func(_ context.Context, r domain.MedicationRow) (domain.MedicationRow, error) {
			appended = r
			return r, nil
		},
	}, medclass.Default())

	got, err := svc.Record(context.Background(), domain.MedicationRow{MedicationName: "Insulin Glargine", Dosage: "10u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appended.MedClass != domain.ClassBasalInsulin {
		t.Fatalf("expected basal_insulin to be stored, got %q", appended.MedClass)
	}
	if got.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
}

func TestRecordMedication_OverridesCallerClass(t *testing.T) {
	svc := app.NewMedicationLog(&mockLog[domain.MedicationRow]{}, medclass.Default())

	got, err := svc.Record(context.Background(), domain.MedicationRow{MedicationName: "aspirin", MedClass: domain.ClassTZD})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MedClass != domain.ClassOther {
		t.Fatalf("expected other, got %q", got.MedClass)
	}
}

func TestMedicationEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := eventstore.New(memory.New())
	svc := app.NewMedicationLog(eventstore.NewCollection[domain.MedicationRow](store, domain.MedicationKey), medclass.Default())

	stored, err := svc.Record(ctx, domain.MedicationRow{MedicationName: "Semaglutide", Dosage: "0.5mg"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if stored.MedClass != domain.ClassGLP1Weekly {
		t.Fatalf("expected glp1_weekly, got %q", stored.MedClass)
	}

	first, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	second, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 row, got %d", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("history changed between reads: %+v vs %+v", first, second)
	}
	row := first[0]
	if row.ID != stored.ID || row.Dosage != "0.5mg" || row.MedClass != domain.ClassGLP1Weekly {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestMedicationClassNotRewrittenByNewRules(t *testing.T) {
	ctx := context.Background()
	events := eventstore.NewCollection[domain.MedicationRow](eventstore.New(memory.New()), domain.MedicationKey)

	before := app.NewMedicationLog(events, medclass.Default())
	if _, err := before.Record(ctx, domain.MedicationRow{MedicationName: "Semaglutide", Dosage: "0.5mg"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// A later rule table that classifies everything as tzd.
	after := app.NewMedicationLog(events, classifierFunc(func(string) domain.MedicationClass { return domain.ClassTZD }))
	if _, err := after.Record(ctx, domain.MedicationRow{MedicationName: "Semaglutide", Dosage: "1mg"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	rows, err := after.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].MedClass != domain.ClassGLP1Weekly {
		t.Errorf("existing row was reclassified to %q", rows[0].MedClass)
	}
	if rows[1].MedClass != domain.ClassTZD {
		t.Errorf("new row should use the new rules, got %q", rows[1].MedClass)
	}
}

func TestMedicationClassifyPreview(t *testing.T) {
	calls := 0
	svc := app.NewMedicationLog(&mockLog[domain.MedicationRow]{
		appendFn: func(_ context.Context, r domain.MedicationRow) (domain.MedicationRow, error) {
			calls++
			return r, nil
		},
	}, medclass.Default())

	if got := svc.Classify("METFORMIN"); got != domain.ClassBiguanide {
		t.Fatalf("expected biguanide, got %q", got)
	}
	if calls != 0 {
		t.Fatal("Classify must not record anything")
	}
}
