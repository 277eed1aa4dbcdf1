package nutri

import (
	"fmt"
	"io"

	"github.com/nelsoncalle/nutricion/internal/service"
	"github.com/nelsoncalle/nutricion/internal/store"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show intake, burn and meals for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := dateOrToday(todayDate)
		return withStore(cmd.Context(), func(s *store.Store) error {
			printDailySummary(cmd.OutOrStdout(), s.GetDailySummary(cmd.Context(), date))
			return nil
		})
	},
}

func printDailySummary(w io.Writer, r *service.DailySummaryReport) {
	fmt.Fprintf(w, "Date: %s\n", r.Date)
	fmt.Fprintf(w, "Intake: %d kcal\n", r.IntakeCalories)
	fmt.Fprintf(w, "Burned: %d kcal\n", r.ExerciseCalories)
	fmt.Fprintf(w, "Net: %d kcal\n", r.NetCalories)
	fmt.Fprintf(w, "Macros: P %.1fg | C %.1fg | F %.1fg\n", r.Protein, r.Carbs, r.Fat)
	for _, m := range r.Meals {
		fmt.Fprintf(w, "\n%s\t%d kcal\n", m.MealType, m.Calories)
		for _, f := range m.Foods {
			fmt.Fprintf(w, "  %d\t%s\tx%d\t%d\n", f.ID, f.Name, f.Quantity, f.TotalCalories())
		}
	}
	if len(r.Exercises) > 0 {
		fmt.Fprintln(w, "\nexercise")
		for _, e := range r.Exercises {
			fmt.Fprintf(w, "  %d\t%s\t%d min\t%d\n", e.ID, e.Name, e.Duration, e.CaloriesBurned)
		}
	}
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default: today)")
}
