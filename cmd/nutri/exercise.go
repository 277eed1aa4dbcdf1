package nutri

import (
	"fmt"

	"github.com/nelsoncalle/nutricion/internal/model"
	"github.com/nelsoncalle/nutricion/internal/store"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage exercise entries",
}

var (
	exerciseName     string
	exerciseDuration int
	exerciseCalories int
	exerciseDate     string
	exerciseNotes    string
)

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add exercise entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := model.ExerciseEntry{
			Name:           exerciseName,
			Duration:       exerciseDuration,
			CaloriesBurned: exerciseCalories,
			Date:           dateOrToday(exerciseDate),
			Notes:          exerciseNotes,
		}
		return withStore(cmd.Context(), func(s *store.Store) error {
			id := s.AddExercise(cmd.Context(), in)
			if err := s.Err(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added exercise entry %d\n", id)
			return nil
		})
	},
}

var exerciseListDate string

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercise entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s *store.Store) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tNAME\tDURATION_MIN\tKCAL_BURNED\tNOTES")
			for _, e := range s.GetExercises(cmd.Context(), exerciseListDate) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d\t%d\t%s\n", e.ID, e.Date, e.Name, e.Duration, e.CaloriesBurned, e.Notes)
			}
			if exerciseListDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Total\t%d kcal\n", s.GetDailyExerciseCalories(cmd.Context(), exerciseListDate))
			}
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete exercise entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("exercise id", args[0])
		if err != nil {
			return err
		}
		return withStore(cmd.Context(), func(s *store.Store) error {
			s.DeleteExercise(cmd.Context(), id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise entry %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseDeleteCmd)

	exerciseAddCmd.Flags().StringVar(&exerciseName, "name", "", "Exercise name")
	exerciseAddCmd.Flags().IntVar(&exerciseDuration, "duration", 0, "Duration in minutes")
	exerciseAddCmd.Flags().IntVar(&exerciseCalories, "calories", 0, "Calories burned")
	exerciseAddCmd.Flags().StringVar(&exerciseDate, "date", "", "Date YYYY-MM-DD (default: today)")
	exerciseAddCmd.Flags().StringVar(&exerciseNotes, "notes", "", "Optional notes")
	_ = exerciseAddCmd.MarkFlagRequired("name")
	_ = exerciseAddCmd.MarkFlagRequired("duration")
	_ = exerciseAddCmd.MarkFlagRequired("calories")

	exerciseListCmd.Flags().StringVar(&exerciseListDate, "date", "", "Filter by date YYYY-MM-DD (default: all dates)")
}
