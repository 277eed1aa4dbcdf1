package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nelsoncalle/nutricion/internal/model"
)

type FoodFilter struct {
	Date     string
	MealType string
}

// NormalizeFood validates a food entry and applies defaults: quantity
// falls back to 1 when absent (<= 0).
func NormalizeFood(in model.FoodEntry) (model.FoodEntry, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.FoodEntry{}, invalidf("food name is required")
	}
	if err := validateIntRange("calories", in.Calories, 0, MaxCalories); err != nil {
		return model.FoodEntry{}, err
	}
	if err := validateNonNegativeFloat("protein", in.Protein); err != nil {
		return model.FoodEntry{}, err
	}
	if err := validateNonNegativeFloat("carbs", in.Carbs); err != nil {
		return model.FoodEntry{}, err
	}
	if err := validateNonNegativeFloat("fat", in.Fat); err != nil {
		return model.FoodEntry{}, err
	}
	date, err := normalizeDate(in.Date)
	if err != nil {
		return model.FoodEntry{}, err
	}
	in.Date = date
	meal, err := model.ParseMealType(string(in.MealType))
	if err != nil {
		return model.FoodEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	in.MealType = meal
	if in.Quantity <= 0 {
		in.Quantity = 1
	}
	if in.Quantity > MaxQuantity {
		return model.FoodEntry{}, invalidf("quantity must be <= %d", MaxQuantity)
	}
	return in, nil
}

func AddFood(ctx context.Context, q Querier, in model.FoodEntry) (int64, error) {
	f, err := NormalizeFood(in)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
INSERT INTO foods(name, calories, protein, carbs, fat, date, meal_type, quantity)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, f.Name, f.Calories, f.Protein, f.Carbs, f.Fat, f.Date, string(f.MealType), f.Quantity)
	if err != nil {
		return 0, fmt.Errorf("add food: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve food id: %w", err)
	}
	return id, nil
}

// ListFoods returns foods ordered by date then id, both descending. An empty
// filter date returns every row.
func ListFoods(ctx context.Context, q Querier, f FoodFilter) ([]model.FoodEntry, error) {
	date, err := optionalDate(f.Date)
	if err != nil {
		return nil, err
	}
	query := `SELECT id, name, calories, IFNULL(protein, 0), IFNULL(carbs, 0), IFNULL(fat, 0), date, meal_type, IFNULL(quantity, 1) FROM foods WHERE 1=1`
	args := make([]any, 0)
	if date != "" {
		query += ` AND date = ?`
		args = append(args, date)
	}
	if strings.TrimSpace(f.MealType) != "" {
		meal, err := model.ParseMealType(f.MealType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		query += ` AND meal_type = ?`
		args = append(args, string(meal))
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	items := make([]model.FoodEntry, 0)
	for rows.Next() {
		var item model.FoodEntry
		var meal string
		if err := rows.Scan(&item.ID, &item.Name, &item.Calories, &item.Protein, &item.Carbs, &item.Fat, &item.Date, &meal, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		// Legacy rows may still carry Spanish meal names until doctor --fix runs.
		if parsed, err := model.ParseMealType(meal); err == nil {
			item.MealType = parsed
		} else {
			item.MealType = model.MealType(meal)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return items, nil
}

// DeleteFood removes the entry with id. A missing id is not an error.
func DeleteFood(ctx context.Context, q Querier, id int64) error {
	if err := validateID("food", id); err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM foods WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete food %d: %w", id, err)
	}
	return nil
}

// DailyCalories sums calories * quantity over the foods logged on date.
func DailyCalories(ctx context.Context, q Querier, date string) (int, error) {
	day, err := normalizeDate(date)
	if err != nil {
		return 0, err
	}
	var total int
	if err := q.QueryRowContext(ctx, `SELECT IFNULL(SUM(calories * IFNULL(quantity, 1)), 0) FROM foods WHERE date = ?`, day).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum daily calories for %s: %w", day, err)
	}
	return total, nil
}
