// Package config reads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the process settings.
type Config struct {
	Addr         string
	StoreDriver  string
	SQLitePath   string
	DatabaseURL  string
	StoreLayout  string
	MedRulesFile string
	LogLevel     string
}

// Load applies the given dotenv files (missing files are skipped) and then
// reads the environment. Variables already set in the environment win over
// file values.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(), nil
}

// FromEnv reads the settings from the environment with defaults.
func FromEnv() Config {
	return Config{
		Addr:         env("ADDR", ":8080"),
		StoreDriver:  env("STORE_DRIVER", DriverSQLite),
		SQLitePath:   env("SQLITE_PATH", "glucolog.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		StoreLayout:  env("STORE_LAYOUT", "single"),
		MedRulesFile: os.Getenv("MED_RULES_FILE"),
		LogLevel:     env("LOG_LEVEL", "info"),
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s, %s or %s)", c.StoreDriver, DriverSQLite, DriverPostgres, DriverMemory)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel accepts debug, info, warn and error in any case.
func ParseLogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return l, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
