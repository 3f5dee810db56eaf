package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

const equipmentColumns = `id, name, equipment_type, manufacturer, model, serial_number, asset_id,
description, out_of_order, requires_training, zone_id, ` + metaColumns

func (s *CatalogStore) CreateEquipment(ctx context.Context, rec store.EquipmentRecord) (int64, error) {
	return s.insert(ctx, "CreateEquipment", `
INSERT INTO equipment(name, equipment_type, manufacturer, model, serial_number, asset_id,
                      description, out_of_order, requires_training, zone_id, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.Name, rec.EquipmentType, rec.Manufacturer, rec.Model, rec.SerialNumber, int64OrNil(rec.AssetID),
		rec.Description, boolInt(rec.OutOfOrder), boolInt(rec.RequiresTraining), rec.ZoneID, toMs(time.Now()))
}

func (s *CatalogStore) GetEquipment(ctx context.Context, id int64) (store.EquipmentRecord, error) {
	rec, err := scanEquipment(s.db.QueryRowContext(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = ?;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return store.EquipmentRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.EquipmentRecord{}, fmt.Errorf("GetEquipment: %w", err)
	}
	return rec, nil
}

func (s *CatalogStore) ListEquipment(ctx context.Context) ([]store.EquipmentRecord, error) {
	return s.queryEquipment(ctx, "ListEquipment", `SELECT `+equipmentColumns+` FROM equipment
WHERE is_deleted = 0 AND is_hidden = 0 ORDER BY id;`)
}

func (s *CatalogStore) UpdateEquipment(ctx context.Context, rec store.EquipmentRecord) error {
	return s.update(ctx, "UpdateEquipment", `
UPDATE equipment
SET name = ?, equipment_type = ?, manufacturer = ?, model = ?, serial_number = ?, asset_id = ?,
    description = ?, out_of_order = ?, requires_training = ?, zone_id = ?, updated_at_ms = ?
WHERE id = ?;`,
		rec.Name, rec.EquipmentType, rec.Manufacturer, rec.Model, rec.SerialNumber, int64OrNil(rec.AssetID),
		rec.Description, boolInt(rec.OutOfOrder), boolInt(rec.RequiresTraining), rec.ZoneID, toMs(time.Now()), rec.ID)
}

func (s *CatalogStore) queryEquipment(ctx context.Context, op, q string, args ...any) ([]store.EquipmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []store.EquipmentRecord
	for rows.Next() {
		rec, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanEquipment(r rowScanner) (store.EquipmentRecord, error) {
	var (
		rec      store.EquipmentRecord
		asset    sql.NullInt64
		broken   int
		training int
		m        metaScan
	)
	dest := append([]any{
		&rec.ID, &rec.Name, &rec.EquipmentType, &rec.Manufacturer, &rec.Model, &rec.SerialNumber, &asset,
		&rec.Description, &broken, &training, &rec.ZoneID,
	}, m.dest()...)
	if err := r.Scan(dest...); err != nil {
		return store.EquipmentRecord{}, err
	}
	if asset.Valid {
		v := asset.Int64
		rec.AssetID = &v
	}
	rec.OutOfOrder = broken == 1
	rec.RequiresTraining = training == 1
	rec.Meta = m.meta()
	return rec, nil
}

// ── Person ↔ equipment ──────────────────────────────────────────────────────

func (s *CatalogStore) AllowEquipment(ctx context.Context, personID, equipmentID int64) (bool, error) {
	return s.link(ctx, "AllowEquipment", `
INSERT OR IGNORE INTO person_allowed_equipment(person_id, equipment_id, created_at_ms) VALUES (?, ?, ?);`,
		personID, equipmentID, toMs(time.Now()))
}

func (s *CatalogStore) RevokeEquipment(ctx context.Context, personID, equipmentID int64) error {
	return s.update(ctx, "RevokeEquipment",
		`DELETE FROM person_allowed_equipment WHERE person_id = ? AND equipment_id = ?;`,
		personID, equipmentID)
}

func (s *CatalogStore) ListAllowedEquipment(ctx context.Context, personID int64) ([]store.EquipmentRecord, error) {
	return s.queryEquipment(ctx, "ListAllowedEquipment", `
SELECT `+equipmentColumns+` FROM equipment
WHERE id IN (SELECT equipment_id FROM person_allowed_equipment WHERE person_id = ?)
  AND is_deleted = 0 AND is_hidden = 0
ORDER BY id;`, personID)
}

// link runs an INSERT OR IGNORE and reports whether a row was added.
func (s *CatalogStore) link(ctx context.Context, op, q string, args ...any) (bool, error) {
	var created bool
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("%s: %w", op, translate(err))
		}
		n, err := res.RowsAffected()
		created = n == 1
		return err
	})
	return created, err
}
