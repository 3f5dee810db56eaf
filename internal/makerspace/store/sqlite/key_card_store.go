package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbpkg "github.com/BrandonDHaskell/makerspace-crm/internal/db"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

type KeyCardStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewKeyCardStore(db *sql.DB, writer *dbpkg.Worker) *KeyCardStore {
	return &KeyCardStore{db: db, writer: writer}
}

func (s *KeyCardStore) CreateKeyCard(ctx context.Context, rec store.KeyCardRecord) (int64, error) {
	var id int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO key_cards(card_number, card_type, person_id) VALUES (?, ?, ?);
`, rec.CardNumber, rec.CardType, rec.PersonID)
		if err != nil {
			return fmt.Errorf("CreateKeyCard: %w", translate(err))
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

func (s *KeyCardStore) GetKeyCard(ctx context.Context, id int64) (store.KeyCardRecord, error) {
	var rec store.KeyCardRecord
	err := s.db.QueryRowContext(ctx, `
SELECT id, card_number, card_type, person_id FROM key_cards WHERE id = ?;
`, id).Scan(&rec.ID, &rec.CardNumber, &rec.CardType, &rec.PersonID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.KeyCardRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.KeyCardRecord{}, fmt.Errorf("GetKeyCard: %w", err)
	}
	return rec, nil
}

func (s *KeyCardStore) DeleteKeyCard(ctx context.Context, id int64) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM key_cards WHERE id = ?;`, id)
		if err != nil {
			return fmt.Errorf("DeleteKeyCard: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *KeyCardStore) PersonForCard(ctx context.Context, cardNumber int64) (int64, error) {
	var personID int64
	err := s.db.QueryRowContext(ctx, `
SELECT person_id FROM key_cards WHERE card_number = ?;
`, cardNumber).Scan(&personID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, store.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("PersonForCard: %w", err)
	}
	return personID, nil
}

// ── Key codes ────────────────────────────────────────────────────────────────

func (s *KeyCardStore) CreateKeyCode(ctx context.Context, rec store.KeyCodeRecord) (int64, error) {
	var id int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO key_codes(passcode, person_id) VALUES (?, ?);`, rec.Passcode, rec.PersonID)
		if err != nil {
			return fmt.Errorf("CreateKeyCode: %w", translate(err))
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

func (s *KeyCardStore) GetKeyCode(ctx context.Context, id int64) (store.KeyCodeRecord, error) {
	var rec store.KeyCodeRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, passcode, person_id FROM key_codes WHERE id = ?;`, id,
	).Scan(&rec.ID, &rec.Passcode, &rec.PersonID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.KeyCodeRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.KeyCodeRecord{}, fmt.Errorf("GetKeyCode: %w", err)
	}
	return rec, nil
}

func (s *KeyCardStore) UpdateKeyCode(ctx context.Context, rec store.KeyCodeRecord) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE key_codes SET passcode = ?, person_id = ? WHERE id = ?;`, rec.Passcode, rec.PersonID, rec.ID)
		if err != nil {
			return fmt.Errorf("UpdateKeyCode: %w", translate(err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *KeyCardStore) DeleteKeyCode(ctx context.Context, id int64) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM key_codes WHERE id = ?;`, id)
		if err != nil {
			return fmt.Errorf("DeleteKeyCode: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}
