package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SeedDevOptions struct {
	// Controllers to pre-register as enabled, e.g. the configured check-in
	// and check-out controllers.
	Controllers []int
}

// SeedDev inserts a small fixture set for local development: the given
// controllers, a "Main Shop" location with one zone, and a demo volunteer
// with a key fob.  It is idempotent.
func SeedDev(ctx context.Context, db *sql.DB, opt SeedDevOptions) error {
	now := time.Now().UTC().UnixMilli()

	for _, c := range opt.Controllers {
		if c <= 0 {
			continue
		}
		if _, err := db.ExecContext(ctx, `
INSERT INTO controllers(controller, name, enabled, created_at_ms, updated_at_ms)
VALUES (?, ?, 1, ?, ?)
ON CONFLICT(controller) DO UPDATE SET
  enabled = 1,
  updated_at_ms = excluded.updated_at_ms;
`, c, fmt.Sprintf("Controller %d", c), now, now); err != nil {
			return fmt.Errorf("seed controller %d: %w", c, err)
		}
	}

	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO locations(id, name, created_at_ms) VALUES (1, 'Main Shop', ?);`, now); err != nil {
		return fmt.Errorf("seed location: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO zones(id, name, location_id, created_at_ms) VALUES (1, 'Wood Shop', 1, ?);`, now); err != nil {
		return fmt.Errorf("seed zone: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO persons(id, first, last, email, created_at_ms)
VALUES (1, 'Demo', 'Volunteer', 'volunteer@example.org', ?);`, now); err != nil {
		return fmt.Errorf("seed person: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO key_cards(card_number, card_type, person_id) VALUES (1001, 'keyfob', 1);`); err != nil {
		return fmt.Errorf("seed key card: %w", err)
	}

	return nil
}
