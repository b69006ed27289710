package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"glucolog/internal/app"
)

// NewGlucoseCommand creates the glucose command group.
func NewGlucoseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glucose",
		Short: "Record and list glucose readings",
	}
	cmd.AddCommand(newGlucoseRecordCommand(rootOpts))
	cmd.AddCommand(newGlucoseHistoryCommand(rootOpts))
	return cmd
}

func newGlucoseRecordCommand(opts *RootOptions) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "record <mg/dL>",
		Short: "Record a glucose reading",
		Long: `Record a glucose reading in mg/dL. The timestamp is assigned when the
reading is stored.

Example:
  glucolog glucose record 110 --context fasting`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid reading %q: %w", args[0], err)
			}
			rt, err := opts.openRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			entry, err := rt.glucose.Record(cmd.Context(), app.GlucoseReading{GlucoseMgDL: value, Context: tags})
			if err != nil {
				return err
			}
			opts.Logger.Debug("glucose recorded", "value", entry.GlucoseMgDL, "timestamp", entry.Timestamp)
			return opts.printer(cmd.OutOrStdout()).table(entry,
				[]string{"TIME", "MG/DL", "CONTEXT"},
				[][]string{{formatTime(entry.Timestamp), formatFloat(entry.GlucoseMgDL), strings.Join(entry.Context, ",")}})
		},
	}

	cmd.Flags().StringSliceVar(&tags, "context", nil, "context tag (repeatable)")
	return cmd
}

func newGlucoseHistoryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List glucose readings oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.openRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			items, err := rt.glucose.History(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(items))
			for _, e := range items {
				rows = append(rows, []string{formatTime(e.Timestamp), formatFloat(e.GlucoseMgDL), strings.Join(e.Context, ",")})
			}
			return opts.printer(cmd.OutOrStdout()).table(items, []string{"TIME", "MG/DL", "CONTEXT"}, rows)
		},
	}
}
