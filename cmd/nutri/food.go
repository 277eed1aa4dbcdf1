package nutri

import (
	"fmt"

	"github.com/nelsoncalle/nutricion/internal/model"
	"github.com/nelsoncalle/nutricion/internal/service"
	"github.com/nelsoncalle/nutricion/internal/store"
	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage food entries",
}

var (
	foodName     string
	foodCalories int
	foodProtein  float64
	foodCarbs    float64
	foodFat      float64
	foodMeal     string
	foodQuantity int
	foodDate     string
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add food entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := model.FoodEntry{
			Name:     foodName,
			Calories: foodCalories,
			Protein:  foodProtein,
			Carbs:    foodCarbs,
			Fat:      foodFat,
			Date:     dateOrToday(foodDate),
			MealType: model.MealType(foodMeal),
			Quantity: foodQuantity,
		}
		return withStore(cmd.Context(), func(s *store.Store) error {
			id := s.AddFood(cmd.Context(), in)
			if err := s.Err(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food entry %d\n", id)
			return nil
		})
	},
}

var (
	foodListDate string
	foodListMeal string
)

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List food entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.FoodFilter{Date: foodListDate, MealType: foodListMeal}
		return withStore(cmd.Context(), func(s *store.Store) error {
			items := s.FindFoods(cmd.Context(), filter)
			if err := s.Err(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tMEAL\tNAME\tQTY\tKCAL\tP\tC\tF")
			for _, f := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%d\t%d\t%.1f\t%.1f\t%.1f\n",
					f.ID, f.Date, f.MealType, f.Name, f.Quantity, f.TotalCalories(), f.TotalProtein(), f.TotalCarbs(), f.TotalFat())
			}
			if foodListDate != "" && foodListMeal == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Total\t%d kcal\n", s.GetDailyCalories(cmd.Context(), foodListDate))
			}
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete food entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withStore(cmd.Context(), func(s *store.Store) error {
			s.DeleteFood(cmd.Context(), id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food entry %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd, foodDeleteCmd)

	foodAddCmd.Flags().StringVar(&foodName, "name", "", "Food name")
	foodAddCmd.Flags().IntVar(&foodCalories, "calories", 0, "Calories per unit")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams per unit")
	foodAddCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carb grams per unit")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams per unit")
	foodAddCmd.Flags().StringVar(&foodMeal, "meal", "", "Meal: breakfast, lunch, dinner or snack")
	foodAddCmd.Flags().IntVar(&foodQuantity, "quantity", 1, "Number of units eaten")
	foodAddCmd.Flags().StringVar(&foodDate, "date", "", "Date YYYY-MM-DD (default: today)")
	_ = foodAddCmd.MarkFlagRequired("name")
	_ = foodAddCmd.MarkFlagRequired("calories")
	_ = foodAddCmd.MarkFlagRequired("meal")

	foodListCmd.Flags().StringVar(&foodListDate, "date", "", "Filter by date YYYY-MM-DD (default: all dates)")
	foodListCmd.Flags().StringVar(&foodListMeal, "meal", "", "Filter by meal: breakfast, lunch, dinner or snack")
}
