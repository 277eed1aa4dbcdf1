package nutri

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nelsoncalle/nutricion/internal/service"
	"github.com/nelsoncalle/nutricion/internal/store"
)

// withStore runs fn against an initialized record store. Reads and writes
// inside fn never fail; anything the store absorbed is reported afterwards
// so the command exits non-zero.
func withStore(ctx context.Context, fn func(*store.Store) error) error {
	s := store.New(cfg.DBPath, logger)
	defer s.Close()

	s.Initialize(ctx)
	if err := fn(s); err != nil {
		return err
	}
	return s.Err()
}

// withDB is for maintenance commands that need strict errors; it refuses
// to run while storage is unavailable.
func withDB(ctx context.Context, fn func(*sql.DB) error) error {
	s := store.New(cfg.DBPath, logger)
	defer s.Close()

	s.Initialize(ctx)
	if err := s.Err(); err != nil {
		return err
	}
	sqldb, err := s.Handle()
	if err != nil {
		return err
	}
	return fn(sqldb)
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func dateOrToday(date string) string {
	if strings.TrimSpace(date) == "" {
		return service.Today(time.Now())
	}
	return strings.TrimSpace(date)
}
