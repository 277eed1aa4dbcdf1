package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nelsoncalle/nutricion/internal/model"
)

type WeightInput struct {
	Date   string
	Weight float64
	Notes  string
}

func normalizeWeightInput(in WeightInput) (WeightInput, error) {
	date, err := normalizeDate(in.Date)
	if err != nil {
		return WeightInput{}, err
	}
	if in.Weight <= 0 {
		return WeightInput{}, invalidf("weight must be > 0")
	}
	return WeightInput{Date: date, Weight: in.Weight, Notes: strings.TrimSpace(in.Notes)}, nil
}

func AddWeight(ctx context.Context, q Querier, in WeightInput) (int64, error) {
	normalized, err := normalizeWeightInput(in)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
INSERT INTO profiles(date, weight, notes)
VALUES(?, ?, ?)
`, normalized.Date, normalized.Weight, normalized.Notes)
	if err != nil {
		return 0, fmt.Errorf("add weight: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve weight id: %w", err)
	}
	return id, nil
}

// ListWeights returns every weight entry, most recent date first.
func ListWeights(ctx context.Context, q Querier) ([]model.WeightEntry, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, date, weight, IFNULL(notes, '') FROM profiles ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	defer rows.Close()

	items := make([]model.WeightEntry, 0)
	for rows.Next() {
		var w model.WeightEntry
		if err := rows.Scan(&w.ID, &w.Date, &w.Weight, &w.Notes); err != nil {
			return nil, fmt.Errorf("scan weight: %w", err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weights: %w", err)
	}
	return items, nil
}

// DeleteWeight removes the entry with id. A missing id is not an error.
func DeleteWeight(ctx context.Context, q Querier, id int64) error {
	if err := validateID("weight", id); err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete weight %d: %w", id, err)
	}
	return nil
}
