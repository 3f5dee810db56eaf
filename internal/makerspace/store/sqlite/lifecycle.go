package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

// applyLifecycle runs a lifecycle action against one row of a managed table.
// table is always a compile-time constant from this package.
//
// Must be called inside an existing transaction.
func applyLifecycle(ctx context.Context, tx *sql.Tx, table string, id int64, action store.LifecycleAction) error {
	var (
		q    string
		args []any
	)
	nowMs := toMs(time.Now())

	switch action {
	case store.ActionHardDelete:
		q = `DELETE FROM ` + table + ` WHERE id = ?;`
		args = []any{id}
	case store.ActionSoftDelete, store.ActionRestore:
		q = `UPDATE ` + table + ` SET is_deleted = ?, updated_at_ms = ? WHERE id = ?;`
		args = []any{boolInt(action == store.ActionSoftDelete), nowMs, id}
	case store.ActionHide, store.ActionUnhide:
		q = `UPDATE ` + table + ` SET is_hidden = ?, updated_at_ms = ? WHERE id = ?;`
		args = []any{boolInt(action == store.ActionHide), nowMs, id}
	default:
		return fmt.Errorf("unknown lifecycle action %q", action)
	}

	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		// Hard-deleting a row that is still referenced trips a foreign key.
		if errors.Is(translate(err), store.ErrInvalidReference) {
			return store.ErrConflict
		}
		return fmt.Errorf("%s %s: %w", action, table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}
