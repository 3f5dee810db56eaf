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

type PersonStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewPersonStore(db *sql.DB, writer *dbpkg.Worker) *PersonStore {
	return &PersonStore{db: db, writer: writer}
}

func (s *PersonStore) CreatePerson(ctx context.Context, rec store.PersonRecord) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	var id int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO persons(first, last, email, created_at_ms) VALUES (?, ?, ?, ?);
`, rec.First, rec.Last, rec.Email, toMs(rec.CreatedAt))
		if err != nil {
			return fmt.Errorf("CreatePerson: %w", translate(err))
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

func (s *PersonStore) GetPerson(ctx context.Context, id int64) (store.PersonRecord, error) {
	var (
		rec store.PersonRecord
		m   metaScan
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, first, last, email, `+metaColumns+` FROM persons WHERE id = ?;
`, id).Scan(append([]any{&rec.ID, &rec.First, &rec.Last, &rec.Email}, m.dest()...)...)
	if errors.Is(err, sql.ErrNoRows) {
		return store.PersonRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.PersonRecord{}, fmt.Errorf("GetPerson: %w", err)
	}
	rec.Meta = m.meta()
	return rec, nil
}

func (s *PersonStore) ListPeople(ctx context.Context) ([]store.PersonRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, first, last, email, `+metaColumns+`
FROM persons
WHERE is_deleted = 0 AND is_hidden = 0
ORDER BY id;
`)
	if err != nil {
		return nil, fmt.Errorf("ListPeople: %w", err)
	}
	defer rows.Close()

	var out []store.PersonRecord
	for rows.Next() {
		var (
			rec store.PersonRecord
			m   metaScan
		)
		if err := rows.Scan(append([]any{&rec.ID, &rec.First, &rec.Last, &rec.Email}, m.dest()...)...); err != nil {
			return nil, fmt.Errorf("ListPeople scan: %w", err)
		}
		rec.Meta = m.meta()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PersonStore) UpdatePerson(ctx context.Context, rec store.PersonRecord) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE persons SET first = ?, last = ?, email = ?, updated_at_ms = ? WHERE id = ?;
`, rec.First, rec.Last, rec.Email, toMs(time.Now()), rec.ID)
		if err != nil {
			return fmt.Errorf("UpdatePerson: %w", translate(err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *PersonStore) ApplyPersonLifecycle(ctx context.Context, id int64, action store.LifecycleAction) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return applyLifecycle(ctx, tx, "persons", id, action)
	})
}
