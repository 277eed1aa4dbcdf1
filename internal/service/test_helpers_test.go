package service_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/nelsoncalle/nutricion/internal/db"
	"github.com/nelsoncalle/nutricion/internal/model"
	"github.com/nelsoncalle/nutricion/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutriapp.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func mustAddFood(t *testing.T, sqldb *sql.DB, f model.FoodEntry) int64 {
	t.Helper()
	id, err := service.AddFood(context.Background(), sqldb, f)
	if err != nil {
		t.Fatalf("add food %q: %v", f.Name, err)
	}
	return id
}

func mustAddExercise(t *testing.T, sqldb *sql.DB, e model.ExerciseEntry) int64 {
	t.Helper()
	id, err := service.AddExercise(context.Background(), sqldb, e)
	if err != nil {
		t.Fatalf("add exercise %q: %v", e.Name, err)
	}
	return id
}
