package cli

import (
	"github.com/spf13/cobra"

	"glucolog/internal/domain"
)

// FoodRecordOptions holds flags for food record.
type FoodRecordOptions struct {
	*RootOptions
	Meal     string
	Name     string
	RecipeID string
	ImageURL string
	Protein  float64
	Carbs    float64
	Calories float64
}

// NewFoodCommand creates the food command group.
func NewFoodCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "food",
		Short: "Record and list meals",
	}
	cmd.AddCommand(newFoodRecordCommand(rootOpts))
	cmd.AddCommand(newFoodHistoryCommand(rootOpts))
	return cmd
}

func newFoodRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FoodRecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a meal",
		Long: `Record a meal with its nutrition facts.

Example:
  glucolog food record --meal lunch --name "Greek salad" --carbs 18 --protein 12 --calories 320`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := domain.FoodLogEntry{
				RecipeID:   opts.RecipeID,
				RecipeName: opts.Name,
				MealType:   domain.MealType(opts.Meal),
				Nutrition:  domain.Nutrition{Protein: opts.Protein, Carbs: opts.Carbs},
				ImageURL:   opts.ImageURL,
			}
			if cmd.Flags().Changed("calories") {
				kcal := opts.Calories
				entry.Nutrition.Calories = &kcal
			}

			rt, err := opts.openRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			stored, err := rt.food.Record(cmd.Context(), entry)
			if err != nil {
				return err
			}
			return opts.printer(cmd.OutOrStdout()).table(stored, foodHeader, [][]string{foodRow(stored)})
		},
	}

	cmd.Flags().StringVar(&opts.Meal, "meal", "", "meal type (breakfast|lunch|dinner|snack)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "recipe or food name")
	cmd.Flags().StringVar(&opts.RecipeID, "recipe-id", "", "recipe id")
	cmd.Flags().StringVar(&opts.ImageURL, "image-url", "", "image url")
	cmd.Flags().Float64Var(&opts.Protein, "protein", 0, "protein in grams")
	cmd.Flags().Float64Var(&opts.Carbs, "carbs", 0, "carbohydrates in grams")
	cmd.Flags().Float64Var(&opts.Calories, "calories", 0, "energy in kcal")
	_ = cmd.MarkFlagRequired("meal")

	return cmd
}

func newFoodHistoryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List meals oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.openRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			items, err := rt.food.History(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(items))
			for _, e := range items {
				rows = append(rows, foodRow(e))
			}
			return opts.printer(cmd.OutOrStdout()).table(items, foodHeader, rows)
		},
	}
}

var foodHeader = []string{"TIME", "MEAL", "NAME", "CARBS", "PROTEIN", "KCAL"}

func foodRow(e domain.FoodLogEntry) []string {
	kcal := "-"
	if e.Nutrition.Calories != nil {
		kcal = formatFloat(*e.Nutrition.Calories)
	}
	return []string{
		formatTime(e.Timestamp), string(e.MealType), e.RecipeName,
		formatFloat(e.Nutrition.Carbs), formatFloat(e.Nutrition.Protein), kcal,
	}
}
