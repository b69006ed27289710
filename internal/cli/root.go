// Package cli implements the glucolog command line.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"glucolog/internal/config"
)

// RootOptions holds global flags and the settings resolved from them.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Driver  string
	DB      string
	EnvFile string

	Config config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the glucolog CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "glucolog",
		Short: "Personal glucose, food and medication log",
		Long: `glucolog records glucose readings, meals and medication doses to a durable
event store, classifies medications by pharmacological class, and serves the
logs over a JSON HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "storage driver (sqlite|postgres|memory), overrides STORE_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "SQLite file or PostgreSQL URL, overrides SQLITE_PATH / DATABASE_URL")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load if present")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewGlucoseCommand(opts))
	cmd.AddCommand(NewFoodCommand(opts))
	cmd.AddCommand(NewMedCommand(opts))

	return cmd
}

// resolve loads configuration, applies flag overrides and builds the logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.EnvFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.StoreDriver = o.Driver
	}
	if flags.Changed("db") {
		switch cfg.StoreDriver {
		case config.DriverPostgres:
			cfg.DatabaseURL = o.DB
		default:
			cfg.SQLitePath = o.DB
		}
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	o.Config = cfg
	o.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
