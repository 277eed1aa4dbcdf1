package service_test

import (
	"context"
	"testing"

	"github.com/nelsoncalle/nutricion/internal/model"
	"github.com/nelsoncalle/nutricion/internal/service"
)

func TestDailySummary(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	mustAddFood(t, db, model.FoodEntry{Name: "Eggs", Calories: 80, Protein: 6, Fat: 5, Quantity: 2, Date: "2026-02-20", MealType: "breakfast"})
	mustAddFood(t, db, model.FoodEntry{Name: "Salad", Calories: 300, Protein: 10, Carbs: 20, Fat: 12, Date: "2026-02-20", MealType: "lunch"})
	mustAddFood(t, db, model.FoodEntry{Name: "Nuts", Calories: 180, Protein: 5, Carbs: 4, Fat: 16, Date: "2026-02-20", MealType: "snack"})
	mustAddExercise(t, db, model.ExerciseEntry{Name: "Running", Duration: 30, CaloriesBurned: 300, Date: "2026-02-20"})

	report, err := service.DailySummary(ctx, db, "2026-02-20")
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if report.IntakeCalories != 640 {
		t.Fatalf("expected 640 kcal intake, got %d", report.IntakeCalories)
	}
	if report.ExerciseCalories != 300 || report.NetCalories != 340 {
		t.Fatalf("expected 300 burned and 340 net, got %d and %d", report.ExerciseCalories, report.NetCalories)
	}
	if report.Protein != 27 || report.Carbs != 24 || report.Fat != 38 {
		t.Fatalf("unexpected macros: P %.1f C %.1f F %.1f", report.Protein, report.Carbs, report.Fat)
	}
	if len(report.Meals) != 3 {
		t.Fatalf("expected 3 meal groups, got %d", len(report.Meals))
	}
	wantOrder := []model.MealType{model.MealBreakfast, model.MealLunch, model.MealSnack}
	for i, m := range wantOrder {
		if report.Meals[i].MealType != m {
			t.Fatalf("meal %d: expected %q, got %q", i, m, report.Meals[i].MealType)
		}
	}
	if report.Meals[0].Calories != 160 {
		t.Fatalf("expected breakfast to total 160 kcal, got %d", report.Meals[0].Calories)
	}
	if len(report.Exercises) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(report.Exercises))
	}
}

func TestDailySummaryEmptyDay(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	report, err := service.DailySummary(context.Background(), db, "2026-02-20")
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if report.IntakeCalories != 0 || report.ExerciseCalories != 0 || report.NetCalories != 0 || len(report.Meals) != 0 {
		t.Fatalf("expected zero summary, got %+v", report)
	}
}

func TestGroupFoodsByMealKeepsUnknownTypesLast(t *testing.T) {
	t.Parallel()

	groups := service.GroupFoodsByMeal([]model.FoodEntry{
		{Name: "Mystery", Calories: 10, Quantity: 1, MealType: "merienda"},
		{Name: "Soup", Calories: 200, Quantity: 1, MealType: model.MealDinner},
		{Name: "Toast", Calories: 90, Quantity: 2, MealType: model.MealBreakfast},
	})
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].MealType != model.MealBreakfast || groups[0].Calories != 180 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].MealType != model.MealDinner || groups[2].MealType != "merienda" {
		t.Fatalf("unexpected group order: %+v", groups)
	}
}
