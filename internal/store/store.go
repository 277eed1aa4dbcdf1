// Package store is the fail-soft record store used by the CLI.
//
// Every operation resolves: storage failures are logged and replaced by a
// fallback value (a synthesized id, an empty list or zero) so callers never
// branch on persistence errors. The strict, error-returning operations live
// in package service; Store is a thin absorbing layer on top of them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nelsoncalle/nutricion/internal/db"
	"github.com/nelsoncalle/nutricion/internal/model"
	"github.com/nelsoncalle/nutricion/internal/service"
	"go.uber.org/zap"
)

// ErrUnavailable is reported by Err and Handle while the store is degraded.
var ErrUnavailable = errors.New("storage unavailable")

type Store struct {
	path   string
	logger *zap.Logger
	now    func() time.Time

	openOnce sync.Once
	sqldb    *sql.DB

	mu      sync.Mutex
	lastErr error
}

// New returns a store for the SQLite file at path. The file is opened on
// first use and the handle is reused until Close.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger.Named("store"), now: time.Now}
}

// NewWithDB wraps an already open handle.
func NewWithDB(sqldb *sql.DB, logger *zap.Logger) *Store {
	s := New("", logger)
	s.openOnce.Do(func() { s.sqldb = sqldb })
	return s
}

func (s *Store) handle() *sql.DB {
	s.openOnce.Do(func() {
		sqldb, err := openFile(s.path)
		if err != nil {
			s.setErr(fmt.Errorf("%w: %v", ErrUnavailable, err))
			s.logger.Warn("storage unavailable, running in degraded mode; nothing will be persisted",
				zap.String("path", s.path), zap.Error(err))
			return
		}
		s.sqldb = sqldb
	})
	return s.sqldb
}

func openFile(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	return db.Open(path)
}

// Degraded reports whether the storage engine could not be opened.
func (s *Store) Degraded() bool {
	return s.handle() == nil
}

// Handle exposes the underlying connection for maintenance commands that
// need strict error reporting (doctor, export, import).
func (s *Store) Handle() (*sql.DB, error) {
	if h := s.handle(); h != nil {
		return h, nil
	}
	return nil, s.Err()
}

// Err returns the most recent absorbed error, for diagnostics only.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Initialize creates the record tables if they are missing. It is safe to
// call any number of times; only the first call on a fresh file changes it.
func (s *Store) Initialize(ctx context.Context) {
	h := s.handle()
	if h == nil {
		s.logger.Debug("skip initialize in degraded mode")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		s.lastErr = err
		return
	}
	if err := db.ApplyMigrations(h); err != nil {
		s.lastErr = err
		s.logger.Error("initialize schema", zap.Error(err))
		return
	}
	s.lastErr = nil
}

// Close releases the connection. Operations after Close resolve with their
// fallback values.
func (s *Store) Close() error {
	s.openOnce.Do(func() {})
	if s.sqldb == nil {
		return nil
	}
	return s.sqldb.Close()
}

func (s *Store) absorb(op, table string, err error, fields ...zap.Field) {
	s.setErr(err)
	fields = append(fields, zap.String("op", op), zap.String("table", table), zap.Error(err))
	if errors.Is(err, service.ErrInvalidInput) {
		s.logger.Warn("rejected invalid input", fields...)
		return
	}
	s.logger.Error("storage operation failed", fields...)
}

func (s *Store) fallbackID(op, table string, err error, fields ...zap.Field) int64 {
	id := s.now().UnixMilli()
	s.absorb(op, table, err, append(fields, zap.Int64("fallback_id", id))...)
	return id
}

func (s *Store) AddWeight(ctx context.Context, date string, weight float64, notes string) int64 {
	h := s.handle()
	if h == nil {
		return s.now().UnixMilli()
	}
	id, err := service.AddWeight(ctx, h, service.WeightInput{Date: date, Weight: weight, Notes: notes})
	if err != nil {
		return s.fallbackID("add_weight", "profiles", err, zap.String("date", date))
	}
	return id
}

// GetWeights lists every weight entry, most recent date first.
func (s *Store) GetWeights(ctx context.Context) []model.WeightEntry {
	h := s.handle()
	if h == nil {
		return []model.WeightEntry{}
	}
	items, err := service.ListWeights(ctx, h)
	if err != nil {
		s.absorb("get_weights", "profiles", err)
		return []model.WeightEntry{}
	}
	return items
}

func (s *Store) DeleteWeight(ctx context.Context, id int64) {
	h := s.handle()
	if h == nil {
		return
	}
	if err := service.DeleteWeight(ctx, h, id); err != nil {
		s.absorb("delete_weight", "profiles", err, zap.Int64("id", id))
	}
}

func (s *Store) AddFood(ctx context.Context, f model.FoodEntry) int64 {
	h := s.handle()
	if h == nil {
		return s.now().UnixMilli()
	}
	id, err := service.AddFood(ctx, h, f)
	if err != nil {
		return s.fallbackID("add_food", "foods", err, zap.String("date", f.Date), zap.String("name", f.Name))
	}
	return id
}

// GetFoods lists foods for date, or for every date when date is empty.
func (s *Store) GetFoods(ctx context.Context, date string) []model.FoodEntry {
	return s.FindFoods(ctx, service.FoodFilter{Date: date})
}

// FindFoods lists foods matching every non-empty field of f. An unknown
// meal type is absorbed like any other invalid input.
func (s *Store) FindFoods(ctx context.Context, f service.FoodFilter) []model.FoodEntry {
	h := s.handle()
	if h == nil {
		return []model.FoodEntry{}
	}
	items, err := service.ListFoods(ctx, h, f)
	if err != nil {
		s.absorb("get_foods", "foods", err, zap.String("date", f.Date), zap.String("meal", f.MealType))
		return []model.FoodEntry{}
	}
	return items
}

func (s *Store) DeleteFood(ctx context.Context, id int64) {
	h := s.handle()
	if h == nil {
		return
	}
	if err := service.DeleteFood(ctx, h, id); err != nil {
		s.absorb("delete_food", "foods", err, zap.Int64("id", id))
	}
}

// GetDailyCalories sums calories * quantity for date.
func (s *Store) GetDailyCalories(ctx context.Context, date string) int {
	h := s.handle()
	if h == nil {
		return 0
	}
	total, err := service.DailyCalories(ctx, h, date)
	if err != nil {
		s.absorb("get_daily_calories", "foods", err, zap.String("date", date))
		return 0
	}
	return total
}

func (s *Store) AddExercise(ctx context.Context, e model.ExerciseEntry) int64 {
	h := s.handle()
	if h == nil {
		return s.now().UnixMilli()
	}
	id, err := service.AddExercise(ctx, h, e)
	if err != nil {
		return s.fallbackID("add_exercise", "exercises", err, zap.String("date", e.Date), zap.String("name", e.Name))
	}
	return id
}

func (s *Store) GetExercises(ctx context.Context, date string) []model.ExerciseEntry {
	h := s.handle()
	if h == nil {
		return []model.ExerciseEntry{}
	}
	items, err := service.ListExercises(ctx, h, date)
	if err != nil {
		s.absorb("get_exercises", "exercises", err, zap.String("date", date))
		return []model.ExerciseEntry{}
	}
	return items
}

func (s *Store) DeleteExercise(ctx context.Context, id int64) {
	h := s.handle()
	if h == nil {
		return
	}
	if err := service.DeleteExercise(ctx, h, id); err != nil {
		s.absorb("delete_exercise", "exercises", err, zap.Int64("id", id))
	}
}

func (s *Store) GetDailyExerciseCalories(ctx context.Context, date string) int {
	h := s.handle()
	if h == nil {
		return 0
	}
	total, err := service.DailyExerciseCalories(ctx, h, date)
	if err != nil {
		s.absorb("get_daily_exercise_calories", "exercises", err, zap.String("date", date))
		return 0
	}
	return total
}

// GetDailySummary returns an all-zero report for date when the summary
// cannot be computed.
func (s *Store) GetDailySummary(ctx context.Context, date string) *service.DailySummaryReport {
	empty := &service.DailySummaryReport{
		Date:      date,
		Meals:     []service.MealGroup{},
		Exercises: []model.ExerciseEntry{},
	}
	h := s.handle()
	if h == nil {
		return empty
	}
	report, err := service.DailySummary(ctx, h, date)
	if err != nil {
		s.absorb("get_daily_summary", "foods", err, zap.String("date", date))
		return empty
	}
	return report
}
