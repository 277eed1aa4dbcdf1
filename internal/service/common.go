package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nelsoncalle/nutricion/internal/model"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Upper bounds keep daily sums well inside int64.
const (
	MaxCalories        = 100000
	MaxQuantity        = 1000
	MaxDurationMinutes = 24 * 60
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateIntRange(name string, value, min, max int) error {
	if value < min || value > max {
		return invalidf("%s must be between %d and %d", name, min, max)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return invalidf("%s must be >= 0", name)
	}
	return nil
}

func validateID(name string, id int64) error {
	if id <= 0 {
		return invalidf("%s id must be > 0", name)
	}
	return nil
}

// normalizeDate checks that value is a YYYY-MM-DD calendar date.
func normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return "", invalidf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.Format(model.DateLayout), nil
}

// optionalDate is normalizeDate for filters, where empty means "all dates".
func optionalDate(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return normalizeDate(value)
}

// Today formats t as the calendar date used by every table.
func Today(t time.Time) string {
	return t.Format(model.DateLayout)
}
