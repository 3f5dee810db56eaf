package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

// ── Chore ownership ──────────────────────────────────────────────────────────

const ownershipColumns = `id, person_id, chore_id, completion_percentage, notes, ` + metaColumns

func (s *CatalogStore) CreateChoreOwnership(ctx context.Context, rec store.ChoreOwnershipRecord) (int64, error) {
	return s.insert(ctx, "CreateChoreOwnership", `
INSERT INTO chore_ownership(person_id, chore_id, completion_percentage, notes, created_at_ms)
VALUES (?, ?, ?, ?, ?);`,
		rec.PersonID, rec.ChoreID, rec.CompletionPercentage, rec.Notes, toMs(time.Now()))
}

func (s *CatalogStore) GetChoreOwnership(ctx context.Context, id int64) (store.ChoreOwnershipRecord, error) {
	rec, err := scanOwnership(s.db.QueryRowContext(ctx,
		`SELECT `+ownershipColumns+` FROM chore_ownership WHERE id = ?;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return store.ChoreOwnershipRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.ChoreOwnershipRecord{}, fmt.Errorf("GetChoreOwnership: %w", err)
	}
	return rec, nil
}

func (s *CatalogStore) ListChoreOwnerships(ctx context.Context, choreID int64) ([]store.ChoreOwnershipRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+ownershipColumns+` FROM chore_ownership
WHERE chore_id = ? AND is_deleted = 0 AND is_hidden = 0 ORDER BY id;`, choreID)
	if err != nil {
		return nil, fmt.Errorf("ListChoreOwnerships: %w", err)
	}
	defer rows.Close()

	var out []store.ChoreOwnershipRecord
	for rows.Next() {
		rec, err := scanOwnership(rows)
		if err != nil {
			return nil, fmt.Errorf("ListChoreOwnerships scan: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *CatalogStore) UpdateChoreOwnership(ctx context.Context, rec store.ChoreOwnershipRecord) error {
	return s.update(ctx, "UpdateChoreOwnership", `
UPDATE chore_ownership
SET person_id = ?, chore_id = ?, completion_percentage = ?, notes = ?, updated_at_ms = ?
WHERE id = ?;`,
		rec.PersonID, rec.ChoreID, rec.CompletionPercentage, rec.Notes, toMs(time.Now()), rec.ID)
}

func scanOwnership(r rowScanner) (store.ChoreOwnershipRecord, error) {
	var (
		rec store.ChoreOwnershipRecord
		m   metaScan
	)
	dest := append([]any{&rec.ID, &rec.PersonID, &rec.ChoreID, &rec.CompletionPercentage, &rec.Notes}, m.dest()...)
	if err := r.Scan(dest...); err != nil {
		return store.ChoreOwnershipRecord{}, err
	}
	rec.Meta = m.meta()
	return rec, nil
}

// ── Chore history ────────────────────────────────────────────────────────────

const historyColumns = `id, chore_id, person_id, notes, class_type, status, ` + metaColumns

func (s *CatalogStore) CreateChoreHistory(ctx context.Context, rec store.ChoreHistoryRecord) (int64, error) {
	return s.insert(ctx, "CreateChoreHistory", `
INSERT INTO chore_history(chore_id, person_id, notes, class_type, status, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?);`,
		rec.ChoreID, int64OrNil(rec.PersonID), rec.Notes, rec.ClassType, rec.Status, toMs(time.Now()))
}

func (s *CatalogStore) GetChoreHistory(ctx context.Context, id int64) (store.ChoreHistoryRecord, error) {
	rec, err := scanHistory(s.db.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM chore_history WHERE id = ?;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return store.ChoreHistoryRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.ChoreHistoryRecord{}, fmt.Errorf("GetChoreHistory: %w", err)
	}
	return rec, nil
}

func (s *CatalogStore) ListChoreHistory(ctx context.Context, choreID int64) ([]store.ChoreHistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+historyColumns+` FROM chore_history
WHERE chore_id = ? AND is_deleted = 0 AND is_hidden = 0
ORDER BY created_at_ms DESC, id DESC;`, choreID)
	if err != nil {
		return nil, fmt.Errorf("ListChoreHistory: %w", err)
	}
	defer rows.Close()

	var out []store.ChoreHistoryRecord
	for rows.Next() {
		rec, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("ListChoreHistory scan: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *CatalogStore) UpdateChoreHistory(ctx context.Context, rec store.ChoreHistoryRecord) error {
	return s.update(ctx, "UpdateChoreHistory", `
UPDATE chore_history
SET chore_id = ?, person_id = ?, notes = ?, class_type = ?, status = ?, updated_at_ms = ?
WHERE id = ?;`,
		rec.ChoreID, int64OrNil(rec.PersonID), rec.Notes, rec.ClassType, rec.Status, toMs(time.Now()), rec.ID)
}

func scanHistory(r rowScanner) (store.ChoreHistoryRecord, error) {
	var (
		rec    store.ChoreHistoryRecord
		person sql.NullInt64
		m      metaScan
	)
	dest := append([]any{&rec.ID, &rec.ChoreID, &person, &rec.Notes, &rec.ClassType, &rec.Status}, m.dest()...)
	if err := r.Scan(dest...); err != nil {
		return store.ChoreHistoryRecord{}, err
	}
	if person.Valid {
		v := person.Int64
		rec.PersonID = &v
	}
	rec.Meta = m.meta()
	return rec, nil
}
