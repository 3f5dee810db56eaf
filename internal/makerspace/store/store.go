package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing one")

	// ErrInvalidReference means a foreign key pointed at a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// Meta carries the bookkeeping columns shared by every managed table.
type Meta struct {
	CreatedAt time.Time
	UpdatedAt *time.Time
	Deleted   bool
	Hidden    bool
}

type LifecycleAction string

const (
	ActionSoftDelete LifecycleAction = "soft_delete"
	ActionRestore    LifecycleAction = "restore_softdelete"
	ActionHardDelete LifecycleAction = "hard_delete"
	ActionHide       LifecycleAction = "hide"
	ActionUnhide     LifecycleAction = "unhide"
)

// Apply mutates m for every action except ActionHardDelete, which callers
// handle by removing the row.
func (m *Meta) Apply(a LifecycleAction, now time.Time) {
	switch a {
	case ActionSoftDelete:
		m.Deleted = true
	case ActionRestore:
		m.Deleted = false
	case ActionHide:
		m.Hidden = true
	case ActionUnhide:
		m.Hidden = false
	default:
		return
	}
	t := now.UTC()
	m.UpdatedAt = &t
}
