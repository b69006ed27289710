package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"glucolog/internal/domain"
)

// NewMedCommand creates the med command group.
func NewMedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "med",
		Short: "Record, list and classify medications",
	}
	cmd.AddCommand(newMedRecordCommand(rootOpts))
	cmd.AddCommand(newMedHistoryCommand(rootOpts))
	cmd.AddCommand(newMedClassifyCommand(rootOpts))
	return cmd
}

func newMedRecordCommand(opts *RootOptions) *cobra.Command {
	var dosage string

	cmd := &cobra.Command{
		Use:   "record <name>",
		Short: "Record a medication dose",
		Long: `Record a medication dose. The pharmacological class is assigned from the
name when the dose is stored and is not changed afterwards.

Example:
  glucolog med record Semaglutide --dosage 0.5mg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.openRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			row, err := rt.medications.Record(cmd.Context(), domain.MedicationRow{
				MedicationName: strings.Join(args, " "),
				Dosage:         dosage,
			})
			if err != nil {
				return err
			}
			return opts.printer(cmd.OutOrStdout()).table(row, medHeader, [][]string{medRow(row)})
		},
	}

	cmd.Flags().StringVar(&dosage, "dosage", "", "dose as free text, e.g. 500mg")
	return cmd
}

func newMedHistoryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List medication doses oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.openRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			rows, err := rt.medications.History(cmd.Context())
			if err != nil {
				return err
			}
			out := make([][]string, 0, len(rows))
			for _, r := range rows {
				out = append(out, medRow(r))
			}
			return opts.printer(cmd.OutOrStdout()).table(rows, medHeader, out)
		},
	}
}

func newMedClassifyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <name>",
		Short: "Show the class a medication name would be recorded with",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := loadClassifier(opts.Config)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			class := classifier.Classify(name)
			p := opts.printer(cmd.OutOrStdout())
			if opts.Format == "json" {
				return p.encode(map[string]any{"medication_name": name, "med_class": class})
			}
			_, err = cmd.OutOrStdout().Write([]byte(string(class) + "\n"))
			return err
		},
	}
}

var medHeader = []string{"TIME", "NAME", "DOSAGE", "CLASS"}

func medRow(r domain.MedicationRow) []string {
	return []string{formatTime(r.RecordedAt), r.MedicationName, r.Dosage, string(r.MedClass)}
}
