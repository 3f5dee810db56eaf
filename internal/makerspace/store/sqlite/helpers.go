package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

func toMs(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMs(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func nullableMs(ns sql.NullInt64) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := fromMs(ns.Int64)
	return &t
}

func msOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return toMs(*t)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// translate maps SQLite constraint failures onto store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return store.ErrConflict
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return store.ErrInvalidReference
	}
	return err
}

// metaColumns is the column list every managed table shares, in scan order.
const metaColumns = "created_at_ms, updated_at_ms, is_deleted, is_hidden"

type metaScan struct {
	created int64
	updated sql.NullInt64
	deleted int
	hidden  int
}

func (m *metaScan) dest() []any { return []any{&m.created, &m.updated, &m.deleted, &m.hidden} }

func (m *metaScan) meta() store.Meta {
	return store.Meta{
		CreatedAt: fromMs(m.created),
		UpdatedAt: nullableMs(m.updated),
		Deleted:   m.deleted == 1,
		Hidden:    m.hidden == 1,
	}
}
