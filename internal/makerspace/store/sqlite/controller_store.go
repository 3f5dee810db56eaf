package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dbpkg "github.com/BrandonDHaskell/makerspace-crm/internal/db"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

type ControllerStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewControllerStore(db *sql.DB, writer *dbpkg.Worker) *ControllerStore {
	return &ControllerStore{db: db, writer: writer}
}

// IsKnown treats "known" as "registered and enabled".
func (s *ControllerStore) IsKnown(ctx context.Context, controller int) (bool, error) {
	var enabled int
	err := s.db.QueryRowContext(ctx, `
SELECT enabled FROM controllers WHERE controller = ?;
`, controller).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("IsKnown query: %w", err)
	}
	return enabled == 1, nil
}

// MarkSeen creates the controller if needed and advances last_event_at.
func (s *ControllerStore) MarkSeen(ctx context.Context, controller int, t time.Time) error {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	ms := toMs(t)
	nowMs := toMs(time.Now())

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := ensureController(ctx, tx, controller, nowMs); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
UPDATE controllers
SET last_event_at_ms = MAX(COALESCE(last_event_at_ms, 0), ?),
    updated_at_ms    = ?
WHERE controller = ?;
`, ms, nowMs, controller); err != nil {
			return fmt.Errorf("MarkSeen update controller: %w", err)
		}
		return nil
	})
}

// GetController is used by admin tooling and tests.
func (s *ControllerStore) GetController(ctx context.Context, controller int) (store.ControllerRecord, error) {
	var (
		rec     store.ControllerRecord
		enabled int
		last    sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT controller, name, enabled, last_event_at_ms FROM controllers WHERE controller = ?;
`, controller).Scan(&rec.Controller, &rec.Name, &enabled, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ControllerRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.ControllerRecord{}, fmt.Errorf("GetController: %w", err)
	}
	rec.Enabled = enabled == 1
	rec.LastEventAt = nullableMs(last)
	return rec, nil
}
