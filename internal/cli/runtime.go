package cli

import (
	"fmt"
	"io"

	"glucolog/internal/adapter/memory"
	"glucolog/internal/adapter/postgres"
	"glucolog/internal/adapter/sqlite"
	"glucolog/internal/app"
	"glucolog/internal/config"
	"glucolog/internal/domain"
	"glucolog/internal/eventstore"
	"glucolog/internal/medclass"
)

// runtime is the set of services every command works against.
type runtime struct {
	glucose     *app.GlucoseLog
	food        *app.FoodLog
	medications *app.MedicationLog
	summary     *app.SummaryService
	closer      io.Closer
}

func (r *runtime) Close() error {
	return r.closer.Close()
}

type kvCloser interface {
	domain.KVStore
	io.Closer
}

func openKV(cfg config.Config) (kvCloser, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DatabaseURL)
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StoreDriver)
	}
}

func loadClassifier(cfg config.Config) (*medclass.Classifier, error) {
	if cfg.MedRulesFile == "" {
		return medclass.Default(), nil
	}
	rules, err := medclass.LoadRulesFile(cfg.MedRulesFile)
	if err != nil {
		return nil, err
	}
	return medclass.New(rules), nil
}

func (o *RootOptions) openRuntime() (*runtime, error) {
	cfg := o.Config
	layout, err := eventstore.ParseLayout(cfg.StoreLayout)
	if err != nil {
		return nil, err
	}
	classifier, err := loadClassifier(cfg)
	if err != nil {
		return nil, err
	}
	kv, err := openKV(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	o.Logger.Debug("store opened", "driver", cfg.StoreDriver, "layout", layout, "rules", len(classifier.Rules()))

	store := eventstore.New(kv, eventstore.WithLayout(layout))
	glucose := eventstore.NewCollection[domain.GlucoseEntry](store, domain.GlucoseKey)
	food := eventstore.NewCollection[domain.FoodLogEntry](store, domain.FoodKey)
	meds := eventstore.NewCollection[domain.MedicationRow](store, domain.MedicationKey)

	return &runtime{
		glucose:     app.NewGlucoseLog(glucose),
		food:        app.NewFoodLog(food),
		medications: app.NewMedicationLog(meds, classifier),
		summary:     app.NewSummaryService(glucose, food, meds),
		closer:      kv,
	}, nil
}
