package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nelsoncalle/nutricion/internal/model"
	"golang.org/x/sync/errgroup"
)

type MealGroup struct {
	MealType model.MealType    `json:"meal_type" yaml:"meal_type"`
	Calories int               `json:"calories" yaml:"calories"`
	Foods    []model.FoodEntry `json:"foods" yaml:"foods"`
}

type DailySummaryReport struct {
	Date             string                `json:"date" yaml:"date"`
	IntakeCalories   int                   `json:"intake_calories" yaml:"intake_calories"`
	ExerciseCalories int                   `json:"exercise_calories" yaml:"exercise_calories"`
	NetCalories      int                   `json:"net_calories" yaml:"net_calories"`
	Protein          float64               `json:"protein" yaml:"protein"`
	Carbs            float64               `json:"carbs" yaml:"carbs"`
	Fat              float64               `json:"fat" yaml:"fat"`
	Meals            []MealGroup           `json:"meals" yaml:"meals"`
	Exercises        []model.ExerciseEntry `json:"exercises" yaml:"exercises"`
}

// DailySummary gathers the intake, burn and meal breakdown for one date.
// The independent reads are issued concurrently; the single pooled
// connection serialises them at the engine.
func DailySummary(ctx context.Context, sqldb *sql.DB, date string) (*DailySummaryReport, error) {
	day, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	report := &DailySummaryReport{Date: day}

	var foods []model.FoodEntry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := DailyCalories(gctx, sqldb, day)
		report.IntakeCalories = v
		return err
	})
	g.Go(func() error {
		v, err := DailyExerciseCalories(gctx, sqldb, day)
		report.ExerciseCalories = v
		return err
	})
	g.Go(func() error {
		v, err := ListFoods(gctx, sqldb, FoodFilter{Date: day})
		foods = v
		return err
	})
	g.Go(func() error {
		v, err := ListExercises(gctx, sqldb, day)
		report.Exercises = v
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("daily summary for %s: %w", day, err)
	}

	report.NetCalories = report.IntakeCalories - report.ExerciseCalories
	for _, f := range foods {
		report.Protein += f.TotalProtein()
		report.Carbs += f.TotalCarbs()
		report.Fat += f.TotalFat()
	}
	report.Meals = GroupFoodsByMeal(foods)
	return report, nil
}

// GroupFoodsByMeal buckets foods by meal type in breakfast, lunch, dinner,
// snack order, skipping empty meals. Rows with an unrecognised meal type are
// collected last under their stored value.
func GroupFoodsByMeal(foods []model.FoodEntry) []MealGroup {
	buckets := make(map[model.MealType]*MealGroup)
	order := append([]model.MealType(nil), model.MealTypes...)
	for _, f := range foods {
		g, ok := buckets[f.MealType]
		if !ok {
			g = &MealGroup{MealType: f.MealType}
			buckets[f.MealType] = g
			if !f.MealType.Valid() {
				order = append(order, f.MealType)
			}
		}
		g.Foods = append(g.Foods, f)
		g.Calories += f.TotalCalories()
	}
	groups := make([]MealGroup, 0, len(buckets))
	for _, m := range order {
		if g, ok := buckets[m]; ok {
			groups = append(groups, *g)
		}
	}
	return groups
}
