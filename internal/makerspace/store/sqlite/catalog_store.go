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

type CatalogStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewCatalogStore(db *sql.DB, writer *dbpkg.Worker) *CatalogStore {
	return &CatalogStore{db: db, writer: writer}
}

var catalogTables = map[store.Kind]string{
	store.KindLocation: "locations",
	store.KindZone:     "zones",
	store.KindChore:    "chores",

	store.KindChoreOwnership: "chore_ownership",
	store.KindChoreHistory:   "chore_history",
	store.KindEquipment:      "equipment",
	store.KindMembershipType: "membership_types",
}

func (s *CatalogStore) insert(ctx context.Context, op, q string, args ...any) (int64, error) {
	var id int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("%s: %w", op, translate(err))
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

func (s *CatalogStore) update(ctx context.Context, op, q string, args ...any) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("%s: %w", op, translate(err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

// ── Locations ────────────────────────────────────────────────────────────────

func (s *CatalogStore) CreateLocation(ctx context.Context, rec store.LocationRecord) (int64, error) {
	return s.insert(ctx, "CreateLocation",
		`INSERT INTO locations(name, created_at_ms) VALUES (?, ?);`,
		rec.Name, toMs(time.Now()))
}

func (s *CatalogStore) GetLocation(ctx context.Context, id int64) (store.LocationRecord, error) {
	var (
		rec store.LocationRecord
		m   metaScan
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, `+metaColumns+` FROM locations WHERE id = ?;`, id,
	).Scan(append([]any{&rec.ID, &rec.Name}, m.dest()...)...)
	if errors.Is(err, sql.ErrNoRows) {
		return store.LocationRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.LocationRecord{}, fmt.Errorf("GetLocation: %w", err)
	}
	rec.Meta = m.meta()
	return rec, nil
}

func (s *CatalogStore) ListLocations(ctx context.Context) ([]store.LocationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, `+metaColumns+` FROM locations
WHERE is_deleted = 0 AND is_hidden = 0 ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("ListLocations: %w", err)
	}
	defer rows.Close()

	var out []store.LocationRecord
	for rows.Next() {
		var (
			rec store.LocationRecord
			m   metaScan
		)
		if err := rows.Scan(append([]any{&rec.ID, &rec.Name}, m.dest()...)...); err != nil {
			return nil, fmt.Errorf("ListLocations scan: %w", err)
		}
		rec.Meta = m.meta()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *CatalogStore) UpdateLocation(ctx context.Context, rec store.LocationRecord) error {
	return s.update(ctx, "UpdateLocation",
		`UPDATE locations SET name = ?, updated_at_ms = ? WHERE id = ?;`,
		rec.Name, toMs(time.Now()), rec.ID)
}

// ── Zones ────────────────────────────────────────────────────────────────────

func (s *CatalogStore) CreateZone(ctx context.Context, rec store.ZoneRecord) (int64, error) {
	return s.insert(ctx, "CreateZone",
		`INSERT INTO zones(name, location_id, created_at_ms) VALUES (?, ?, ?);`,
		rec.Name, rec.LocationID, toMs(time.Now()))
}

func (s *CatalogStore) GetZone(ctx context.Context, id int64) (store.ZoneRecord, error) {
	var (
		rec store.ZoneRecord
		m   metaScan
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, location_id, `+metaColumns+` FROM zones WHERE id = ?;`, id,
	).Scan(append([]any{&rec.ID, &rec.Name, &rec.LocationID}, m.dest()...)...)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ZoneRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.ZoneRecord{}, fmt.Errorf("GetZone: %w", err)
	}
	rec.Meta = m.meta()
	return rec, nil
}

func (s *CatalogStore) ListZones(ctx context.Context) ([]store.ZoneRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, location_id, `+metaColumns+` FROM zones
WHERE is_deleted = 0 AND is_hidden = 0 ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("ListZones: %w", err)
	}
	defer rows.Close()

	var out []store.ZoneRecord
	for rows.Next() {
		var (
			rec store.ZoneRecord
			m   metaScan
		)
		if err := rows.Scan(append([]any{&rec.ID, &rec.Name, &rec.LocationID}, m.dest()...)...); err != nil {
			return nil, fmt.Errorf("ListZones scan: %w", err)
		}
		rec.Meta = m.meta()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *CatalogStore) UpdateZone(ctx context.Context, rec store.ZoneRecord) error {
	return s.update(ctx, "UpdateZone",
		`UPDATE zones SET name = ?, location_id = ?, updated_at_ms = ? WHERE id = ?;`,
		rec.Name, rec.LocationID, toMs(time.Now()), rec.ID)
}

// ── Chores ───────────────────────────────────────────────────────────────────

const choreColumns = `id, name, description, classification, frequency, creator_id, last_completed_ms, ` + metaColumns

func (s *CatalogStore) CreateChore(ctx context.Context, rec store.ChoreRecord) (int64, error) {
	return s.insert(ctx, "CreateChore", `
INSERT INTO chores(name, description, classification, frequency, creator_id, last_completed_ms, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?);`,
		rec.Name, rec.Description, rec.Classification, rec.Frequency,
		int64OrNil(rec.CreatorID), msOrNil(rec.LastCompleted), toMs(time.Now()))
}

func (s *CatalogStore) GetChore(ctx context.Context, id int64) (store.ChoreRecord, error) {
	rec, err := scanChore(s.db.QueryRowContext(ctx, `SELECT `+choreColumns+` FROM chores WHERE id = ?;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return store.ChoreRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.ChoreRecord{}, fmt.Errorf("GetChore: %w", err)
	}
	return rec, nil
}

func (s *CatalogStore) ListChores(ctx context.Context) ([]store.ChoreRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+choreColumns+` FROM chores
WHERE is_deleted = 0 AND is_hidden = 0 ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("ListChores: %w", err)
	}
	defer rows.Close()

	var out []store.ChoreRecord
	for rows.Next() {
		rec, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("ListChores scan: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *CatalogStore) UpdateChore(ctx context.Context, rec store.ChoreRecord) error {
	return s.update(ctx, "UpdateChore", `
UPDATE chores
SET name = ?, description = ?, classification = ?, frequency = ?,
    creator_id = ?, last_completed_ms = ?, updated_at_ms = ?
WHERE id = ?;`,
		rec.Name, rec.Description, rec.Classification, rec.Frequency,
		int64OrNil(rec.CreatorID), msOrNil(rec.LastCompleted), toMs(time.Now()), rec.ID)
}

func scanChore(r rowScanner) (store.ChoreRecord, error) {
	var (
		rec       store.ChoreRecord
		creator   sql.NullInt64
		completed sql.NullInt64
		m         metaScan
	)
	dest := append([]any{
		&rec.ID, &rec.Name, &rec.Description, &rec.Classification, &rec.Frequency, &creator, &completed,
	}, m.dest()...)
	if err := r.Scan(dest...); err != nil {
		return store.ChoreRecord{}, err
	}
	if creator.Valid {
		v := creator.Int64
		rec.CreatorID = &v
	}
	rec.LastCompleted = nullableMs(completed)
	rec.Meta = m.meta()
	return rec, nil
}

func int64OrNil(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func (s *CatalogStore) ApplyCatalogLifecycle(ctx context.Context, kind store.Kind, id int64, action store.LifecycleAction) error {
	table, ok := catalogTables[kind]
	if !ok {
		return fmt.Errorf("unknown catalog kind %q", kind)
	}
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return applyLifecycle(ctx, tx, table, id, action)
	})
}
