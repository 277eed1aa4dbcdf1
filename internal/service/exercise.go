package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nelsoncalle/nutricion/internal/model"
)

// NormalizeExercise validates an exercise entry.
func NormalizeExercise(in model.ExerciseEntry) (model.ExerciseEntry, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.ExerciseEntry{}, invalidf("exercise name is required")
	}
	if in.Duration <= 0 {
		return model.ExerciseEntry{}, invalidf("duration must be > 0")
	}
	if in.Duration > MaxDurationMinutes {
		return model.ExerciseEntry{}, invalidf("duration must be <= %d minutes", MaxDurationMinutes)
	}
	if err := validateIntRange("calories burned", in.CaloriesBurned, 0, MaxCalories); err != nil {
		return model.ExerciseEntry{}, err
	}
	date, err := normalizeDate(in.Date)
	if err != nil {
		return model.ExerciseEntry{}, err
	}
	in.Date = date
	in.Notes = strings.TrimSpace(in.Notes)
	return in, nil
}

func AddExercise(ctx context.Context, q Querier, in model.ExerciseEntry) (int64, error) {
	e, err := NormalizeExercise(in)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
INSERT INTO exercises(name, duration, calories_burned, date, notes)
VALUES(?, ?, ?, ?, ?)
`, e.Name, e.Duration, e.CaloriesBurned, e.Date, e.Notes)
	if err != nil {
		return 0, fmt.Errorf("add exercise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve exercise id: %w", err)
	}
	return id, nil
}

// ListExercises follows the same date filter and ordering as ListFoods.
func ListExercises(ctx context.Context, q Querier, date string) ([]model.ExerciseEntry, error) {
	day, err := optionalDate(date)
	if err != nil {
		return nil, err
	}
	query := `SELECT id, name, duration, calories_burned, date, IFNULL(notes, '') FROM exercises`
	args := make([]any, 0)
	if day != "" {
		query += ` WHERE date = ?`
		args = append(args, day)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	items := make([]model.ExerciseEntry, 0)
	for rows.Next() {
		var item model.ExerciseEntry
		if err := rows.Scan(&item.ID, &item.Name, &item.Duration, &item.CaloriesBurned, &item.Date, &item.Notes); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}
	return items, nil
}

// DeleteExercise removes the entry with id. A missing id is not an error.
func DeleteExercise(ctx context.Context, q Querier, id int64) error {
	if err := validateID("exercise", id); err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}
	return nil
}

func DailyExerciseCalories(ctx context.Context, q Querier, date string) (int, error) {
	day, err := normalizeDate(date)
	if err != nil {
		return 0, err
	}
	var total int
	if err := q.QueryRowContext(ctx, `SELECT IFNULL(SUM(calories_burned), 0) FROM exercises WHERE date = ?`, day).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum exercise calories for %s: %w", day, err)
	}
	return total, nil
}
