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

type AccessLogStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewAccessLogStore(db *sql.DB, writer *dbpkg.Worker) *AccessLogStore {
	return &AccessLogStore{db: db, writer: writer}
}

const accessLogColumns = `id, log_sha1, event_at_ms, card_number, event_type, event_type_id,
       event_reason, door, controller, access_granted, person_id, recorded_at_ms`

func (s *AccessLogStore) RecordEvent(ctx context.Context, rec store.AccessLogRecord) (int64, bool, error) {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}
	recordedMs := toMs(rec.RecordedAt)

	var (
		id       int64
		inserted bool
	)
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
SELECT id FROM door_access_log WHERE log_sha1 = ?;
`, rec.LogSHA1).Scan(&id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("RecordEvent dedupe lookup: %w", err)
		}

		if err := ensureController(ctx, tx, rec.Controller, recordedMs); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
INSERT INTO door_access_log(
  log_sha1, event_at_ms, card_number, event_type, event_type_id,
  event_reason, door, controller, access_granted, person_id, recorded_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
			rec.LogSHA1, toMs(rec.EventAt), rec.CardNumber, rec.EventType, rec.EventTypeID,
			rec.EventReason, rec.Door, rec.Controller, boolInt(rec.Granted), rec.PersonID, recordedMs,
		)
		if err != nil {
			return fmt.Errorf("RecordEvent insert: %w", translate(err))
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("RecordEvent last id: %w", err)
		}
		inserted = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return id, inserted, nil
}

func (s *AccessLogStore) GetEvent(ctx context.Context, id int64) (store.AccessLogRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accessLogColumns+` FROM door_access_log WHERE id = ?;`, id)
	rec, err := scanAccessLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.AccessLogRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.AccessLogRecord{}, fmt.Errorf("GetEvent: %w", err)
	}
	return rec, nil
}

func (s *AccessLogStore) DeleteEvent(ctx context.Context, id int64) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM door_access_log WHERE id = ?;`, id)
		if err != nil {
			return fmt.Errorf("DeleteEvent: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

// FetchEvents is a single ordered range scan over
// idx_door_access_log_person_time, so the caller gets a consistent snapshot.
func (s *AccessLogStore) FetchEvents(ctx context.Context, personID int64, start, end time.Time, limit int) ([]store.AccessLogRecord, error) {
	q := `SELECT ` + accessLogColumns + `
FROM door_access_log
WHERE person_id = ? AND event_at_ms >= ? AND event_at_ms <= ?
ORDER BY event_at_ms ASC, id ASC`
	args := []any{personID, toMs(start), toMs(end)}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q+";", args...)
	if err != nil {
		return nil, fmt.Errorf("FetchEvents query: %w", err)
	}
	defer rows.Close()

	var out []store.AccessLogRecord
	for rows.Next() {
		rec, err := scanAccessLog(rows)
		if err != nil {
			return nil, fmt.Errorf("FetchEvents scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FetchEvents rows: %w", err)
	}
	return out, nil
}

// PruneOlderThan deletes rows whose event time is before cutoff and returns
// how many were removed.  Uses idx_door_access_log_time.
func (s *AccessLogStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM door_access_log
WHERE event_at_ms < ?;
`, toMs(cutoff))
		if err != nil {
			return fmt.Errorf("PruneOlderThan: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccessLog(r rowScanner) (store.AccessLogRecord, error) {
	var (
		rec        store.AccessLogRecord
		eventMs    int64
		granted    int
		recordedMs int64
	)
	if err := r.Scan(
		&rec.ID, &rec.LogSHA1, &eventMs, &rec.CardNumber, &rec.EventType, &rec.EventTypeID,
		&rec.EventReason, &rec.Door, &rec.Controller, &granted, &rec.PersonID, &recordedMs,
	); err != nil {
		return store.AccessLogRecord{}, err
	}
	rec.EventAt = fromMs(eventMs)
	rec.Granted = granted == 1
	rec.RecordedAt = fromMs(recordedMs)
	return rec, nil
}
