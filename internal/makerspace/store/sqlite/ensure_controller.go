package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// ensureController guarantees a controllers row exists so the foreign key
// from door_access_log is satisfied.
//
// New rows start disabled; only an admin action (or the dev seeder) marks a
// controller enabled.
//
// Must be called inside an existing transaction.
func ensureController(ctx context.Context, tx *sql.Tx, controller int, nowMs int64) error {
	if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO controllers(
  controller, enabled, created_at_ms, updated_at_ms
) VALUES (?, 0, ?, ?);
`, controller, nowMs, nowMs); err != nil {
		return fmt.Errorf("ensureController %d: %w", controller, err)
	}
	return nil
}
