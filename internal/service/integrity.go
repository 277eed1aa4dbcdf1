package service

import (
	"context"
	"database/sql"
	"fmt"
)

// DoctorReport counts rows that break the record invariants. Databases
// written by the mobile app have no CHECK constraints, so these can exist.
type DoctorReport struct {
	InvalidWeights    int `json:"invalid_weights"`
	InvalidFoods      int `json:"invalid_foods"`
	InvalidExercises  int `json:"invalid_exercises"`
	MalformedDates    int `json:"malformed_dates"`
	NullMacros        int `json:"null_macros"`
	InvalidQuantities int `json:"invalid_quantities"`
	LegacyMealTypes   int `json:"legacy_meal_types"`
	FixedRows         int `json:"fixed_rows,omitempty"`
}

// Repairable reports issues that RunDoctor with fix can resolve.
func (r DoctorReport) Repairable() int {
	return r.NullMacros + r.InvalidQuantities + r.LegacyMealTypes
}

// Unrepairable reports issues that need a manual delete.
func (r DoctorReport) Unrepairable() int {
	return r.InvalidWeights + r.InvalidFoods + r.InvalidExercises + r.MalformedDates
}

func (r DoctorReport) Healthy() bool {
	return r.Repairable() == 0 && r.Unrepairable() == 0
}

const dateGlob = `'[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'`

var doctorChecks = []struct {
	name  string
	query string
	field func(*DoctorReport) *int
}{
	{
		name:  "invalid weights",
		query: `SELECT COUNT(1) FROM profiles WHERE weight IS NULL OR weight <= 0`,
		field: func(r *DoctorReport) *int { return &r.InvalidWeights },
	},
	{
		name:  "invalid foods",
		query: `SELECT COUNT(1) FROM foods WHERE trim(IFNULL(name, '')) = '' OR calories IS NULL OR calories < 0 OR IFNULL(protein, 0) < 0 OR IFNULL(carbs, 0) < 0 OR IFNULL(fat, 0) < 0 OR meal_type NOT IN ('breakfast', 'lunch', 'dinner', 'snack', 'desayuno', 'almuerzo', 'cena', 'snacks')`,
		field: func(r *DoctorReport) *int { return &r.InvalidFoods },
	},
	{
		name:  "invalid exercises",
		query: `SELECT COUNT(1) FROM exercises WHERE trim(IFNULL(name, '')) = '' OR duration IS NULL OR duration <= 0 OR calories_burned IS NULL OR calories_burned < 0`,
		field: func(r *DoctorReport) *int { return &r.InvalidExercises },
	},
	{
		name:  "malformed dates",
		query: `SELECT
  (SELECT COUNT(1) FROM profiles WHERE date NOT GLOB ` + dateGlob + `) +
  (SELECT COUNT(1) FROM foods WHERE date NOT GLOB ` + dateGlob + `) +
  (SELECT COUNT(1) FROM exercises WHERE date NOT GLOB ` + dateGlob + `)`,
		field: func(r *DoctorReport) *int { return &r.MalformedDates },
	},
	{
		name:  "null macros",
		query: `SELECT COUNT(1) FROM foods WHERE protein IS NULL OR carbs IS NULL OR fat IS NULL`,
		field: func(r *DoctorReport) *int { return &r.NullMacros },
	},
	{
		name:  "invalid quantities",
		query: `SELECT COUNT(1) FROM foods WHERE quantity IS NULL OR quantity < 1`,
		field: func(r *DoctorReport) *int { return &r.InvalidQuantities },
	},
	{
		name:  "legacy meal types",
		query: `SELECT COUNT(1) FROM foods WHERE meal_type IN ('desayuno', 'almuerzo', 'cena', 'snacks')`,
		field: func(r *DoctorReport) *int { return &r.LegacyMealTypes },
	},
}

var doctorFixes = []string{
	`UPDATE foods SET protein = IFNULL(protein, 0), carbs = IFNULL(carbs, 0), fat = IFNULL(fat, 0) WHERE protein IS NULL OR carbs IS NULL OR fat IS NULL`,
	`UPDATE foods SET quantity = 1 WHERE quantity IS NULL OR quantity < 1`,
	`UPDATE foods SET meal_type = CASE meal_type WHEN 'desayuno' THEN 'breakfast' WHEN 'almuerzo' THEN 'lunch' WHEN 'cena' THEN 'dinner' ELSE 'snack' END WHERE meal_type IN ('desayuno', 'almuerzo', 'cena', 'snacks')`,
}

// RunDoctor inspects the three record tables. With fix, repairable rows are
// normalised in a single transaction; other violations are only reported.
func RunDoctor(ctx context.Context, sqldb *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	for _, c := range doctorChecks {
		if err := sqldb.QueryRowContext(ctx, c.query).Scan(c.field(&report)); err != nil {
			return report, fmt.Errorf("doctor %s check: %w", c.name, err)
		}
	}
	if !fix || report.Repairable() == 0 {
		return report, nil
	}

	tx, err := sqldb.BeginTx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("doctor fix begin tx: %w", err)
	}
	for _, stmt := range doctorFixes {
		res, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("read rows affected: %w", err)
		}
		report.FixedRows += int(affected)
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("doctor fix commit: %w", err)
	}
	return report, nil
}
