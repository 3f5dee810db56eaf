package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

const membershipTypeColumns = `id, name, description, ` + metaColumns

func (s *CatalogStore) CreateMembershipType(ctx context.Context, rec store.MembershipTypeRecord) (int64, error) {
	return s.insert(ctx, "CreateMembershipType",
		`INSERT INTO membership_types(name, description, created_at_ms) VALUES (?, ?, ?);`,
		rec.Name, rec.Description, toMs(time.Now()))
}

func (s *CatalogStore) GetMembershipType(ctx context.Context, id int64) (store.MembershipTypeRecord, error) {
	rec, err := scanMembershipType(s.db.QueryRowContext(ctx,
		`SELECT `+membershipTypeColumns+` FROM membership_types WHERE id = ?;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return store.MembershipTypeRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.MembershipTypeRecord{}, fmt.Errorf("GetMembershipType: %w", err)
	}
	return rec, nil
}

func (s *CatalogStore) ListMembershipTypes(ctx context.Context) ([]store.MembershipTypeRecord, error) {
	return s.queryMembershipTypes(ctx, "ListMembershipTypes", `SELECT `+membershipTypeColumns+` FROM membership_types
WHERE is_deleted = 0 AND is_hidden = 0 ORDER BY id;`)
}

func (s *CatalogStore) UpdateMembershipType(ctx context.Context, rec store.MembershipTypeRecord) error {
	return s.update(ctx, "UpdateMembershipType",
		`UPDATE membership_types SET name = ?, description = ?, updated_at_ms = ? WHERE id = ?;`,
		rec.Name, rec.Description, toMs(time.Now()), rec.ID)
}

func (s *CatalogStore) AddMembership(ctx context.Context, personID, membershipTypeID int64) (bool, error) {
	return s.link(ctx, "AddMembership", `
INSERT OR IGNORE INTO person_memberships(person_id, membership_type_id, created_at_ms) VALUES (?, ?, ?);`,
		personID, membershipTypeID, toMs(time.Now()))
}

func (s *CatalogStore) RemoveMembership(ctx context.Context, personID, membershipTypeID int64) error {
	return s.update(ctx, "RemoveMembership",
		`DELETE FROM person_memberships WHERE person_id = ? AND membership_type_id = ?;`,
		personID, membershipTypeID)
}

func (s *CatalogStore) ListMemberships(ctx context.Context, personID int64) ([]store.MembershipTypeRecord, error) {
	return s.queryMembershipTypes(ctx, "ListMemberships", `
SELECT `+membershipTypeColumns+` FROM membership_types
WHERE id IN (SELECT membership_type_id FROM person_memberships WHERE person_id = ?)
  AND is_deleted = 0
ORDER BY id;`, personID)
}

func (s *CatalogStore) queryMembershipTypes(ctx context.Context, op, q string, args ...any) ([]store.MembershipTypeRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []store.MembershipTypeRecord
	for rows.Next() {
		rec, err := scanMembershipType(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanMembershipType(r rowScanner) (store.MembershipTypeRecord, error) {
	var (
		rec store.MembershipTypeRecord
		m   metaScan
	)
	if err := r.Scan(append([]any{&rec.ID, &rec.Name, &rec.Description}, m.dest()...)...); err != nil {
		return store.MembershipTypeRecord{}, err
	}
	rec.Meta = m.meta()
	return rec, nil
}
