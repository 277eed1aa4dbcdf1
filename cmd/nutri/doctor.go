package nutri

import (
	"database/sql"
	"fmt"

	"github.com/nelsoncalle/nutricion/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(cmd.Context(), sqldb, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Invalid weights: %d\n", report.InvalidWeights)
			fmt.Fprintf(out, "Invalid foods: %d\n", report.InvalidFoods)
			fmt.Fprintf(out, "Invalid exercises: %d\n", report.InvalidExercises)
			fmt.Fprintf(out, "Malformed dates: %d\n", report.MalformedDates)
			fmt.Fprintf(out, "Null macros: %d\n", report.NullMacros)
			fmt.Fprintf(out, "Invalid quantities: %d\n", report.InvalidQuantities)
			fmt.Fprintf(out, "Legacy meal types: %d\n", report.LegacyMealTypes)
			if doctorFix {
				fmt.Fprintf(out, "Fixed rows: %d\n", report.FixedRows)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(cmd.Context(), sqldb, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				if report.Unrepairable() == 0 {
					return fmt.Errorf("doctor found %d repairable issues; rerun with --fix", report.Repairable())
				}
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair null macros, quantities and legacy meal types")
}
