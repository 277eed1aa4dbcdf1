package nutri

import (
	"fmt"

	"github.com/nelsoncalle/nutricion/internal/service"
	"github.com/nelsoncalle/nutricion/internal/store"
	"github.com/spf13/cobra"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Manage body weight entries",
}

var (
	weightValue float64
	weightUnit  string
	weightDate  string
	weightNotes string
)

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add weight entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		kg, err := service.ToKg(weightValue, weightUnit)
		if err != nil {
			return err
		}
		date := dateOrToday(weightDate)
		return withStore(cmd.Context(), func(s *store.Store) error {
			id := s.AddWeight(cmd.Context(), date, kg, weightNotes)
			if err := s.Err(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added weight entry %d\n", id)
			return nil
		})
	},
}

var weightListUnit string

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := service.FromKg(1, weightListUnit); err != nil {
			return err
		}
		return withStore(cmd.Context(), func(s *store.Store) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tWEIGHT\tNOTES")
			for _, w := range s.GetWeights(cmd.Context()) {
				weight, _ := service.FormatWeight(w.Weight, weightListUnit)
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", w.ID, w.Date, weight, w.Notes)
			}
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete weight entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("weight id", args[0])
		if err != nil {
			return err
		}
		return withStore(cmd.Context(), func(s *store.Store) error {
			s.DeleteWeight(cmd.Context(), id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted weight entry %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightDeleteCmd)

	weightAddCmd.Flags().Float64Var(&weightValue, "weight", 0, "Body weight")
	weightAddCmd.Flags().StringVar(&weightUnit, "unit", "kg", "Weight unit: kg, lb or st")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default: today)")
	weightAddCmd.Flags().StringVar(&weightNotes, "notes", "", "Optional notes")
	_ = weightAddCmd.MarkFlagRequired("weight")

	weightListCmd.Flags().StringVar(&weightListUnit, "unit", "kg", "Display unit: kg, lb or st")
}
