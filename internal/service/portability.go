package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nelsoncalle/nutricion/internal/db"
	"github.com/nelsoncalle/nutricion/internal/model"
	"gopkg.in/yaml.v3"
)

const SnapshotVersion = 1

type Snapshot struct {
	Version    int                   `json:"version" yaml:"version"`
	ExportedAt string                `json:"exported_at" yaml:"exported_at"`
	Weights    []model.WeightEntry   `json:"weights" yaml:"weights"`
	Foods      []model.FoodEntry     `json:"foods" yaml:"foods"`
	Exercises  []model.ExerciseEntry `json:"exercises" yaml:"exercises"`
}

type SnapshotFormat string

const (
	FormatJSON SnapshotFormat = "json"
	FormatYAML SnapshotFormat = "yaml"
)

func ParseSnapshotFormat(value string) (SnapshotFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use json or yaml)", value)
	}
}

type ImportMode string

const (
	ImportModeAppend  ImportMode = "append"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Weights   int `json:"weights"`
	Foods     int `json:"foods"`
	Exercises int `json:"exercises"`
	Cleared   int `json:"cleared,omitempty"`
}

// ExportSnapshot reads every record inside one transaction so the
// three tables are mutually consistent.
func ExportSnapshot(ctx context.Context, sqldb *sql.DB, now time.Time) (*Snapshot, error) {
	tx, err := sqldb.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("export begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	out := &Snapshot{Version: SnapshotVersion, ExportedAt: now.UTC().Format(time.RFC3339)}
	if out.Weights, err = ListWeights(ctx, tx); err != nil {
		return nil, fmt.Errorf("export weights: %w", err)
	}
	if out.Foods, err = ListFoods(ctx, tx, FoodFilter{}); err != nil {
		return nil, fmt.Errorf("export foods: %w", err)
	}
	if out.Exercises, err = ListExercises(ctx, tx, ""); err != nil {
		return nil, fmt.Errorf("export exercises: %w", err)
	}
	return out, nil
}

func EncodeSnapshot(w io.Writer, s *Snapshot, format SnapshotFormat) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode yaml snapshot: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode json snapshot: %w", err)
		}
		return nil
	}
}

func DecodeSnapshot(r io.Reader, format SnapshotFormat) (*Snapshot, error) {
	var s Snapshot
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("parse yaml snapshot: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("parse json snapshot: %w", err)
		}
	}
	if s.Version > SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", s.Version, SnapshotVersion)
	}
	return &s, nil
}

// ImportSnapshot inserts every record of s in one transaction. Source ids are
// not preserved; rows get fresh ids. Any invalid row aborts the whole import.
func ImportSnapshot(ctx context.Context, sqldb *sql.DB, s *Snapshot, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	mode := opts.Mode
	if mode == "" {
		mode = ImportModeAppend
	}
	if mode != ImportModeAppend && mode != ImportModeReplace {
		return report, fmt.Errorf("invalid import mode %q (use append or replace)", opts.Mode)
	}

	tx, err := sqldb.BeginTx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("import begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace {
		cleared, err := clearRecords(ctx, tx)
		if err != nil {
			return report, err
		}
		report.Cleared = cleared
	}

	for i, w := range s.Weights {
		if _, err := AddWeight(ctx, tx, WeightInput{Date: w.Date, Weight: w.Weight, Notes: w.Notes}); err != nil {
			return report, fmt.Errorf("import weight #%d: %w", i+1, err)
		}
		report.Weights++
	}
	for i, f := range s.Foods {
		if _, err := AddFood(ctx, tx, f); err != nil {
			return report, fmt.Errorf("import food #%d: %w", i+1, err)
		}
		report.Foods++
	}
	for i, e := range s.Exercises {
		if _, err := AddExercise(ctx, tx, e); err != nil {
			return report, fmt.Errorf("import exercise #%d: %w", i+1, err)
		}
		report.Exercises++
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("import commit: %w", err)
	}
	return report, nil
}

func clearRecords(ctx context.Context, tx *sql.Tx) (int, error) {
	cleared := 0
	for _, table := range db.Tables {
		res, err := tx.ExecContext(ctx, `DELETE FROM `+table)
		if err != nil {
			return 0, fmt.Errorf("clear %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("read rows affected: %w", err)
		}
		cleared += int(n)
	}
	return cleared, nil
}
