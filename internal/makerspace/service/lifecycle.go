package service

import (
	"strings"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
)

func parseAction(raw string) (store.LifecycleAction, error) {
	a := store.LifecycleAction(strings.TrimSpace(raw))
	switch a {
	case store.ActionSoftDelete, store.ActionRestore, store.ActionHardDelete, store.ActionHide, store.ActionUnhide:
		return a, nil
	}
	return "", ErrInvalidAction
}

// visible gates reads: deleted reads as gone, hidden as forbidden.
func visible(m store.Meta) error {
	if m.Deleted {
		return ErrDeleted
	}
	if m.Hidden {
		return ErrHidden
	}
	return nil
}

func editable(m store.Meta) error {
	if m.Deleted || m.Hidden {
		return ErrNotEditable
	}
	return nil
}

func toRecord(m store.Meta) types.Record {
	return types.Record{
		CreatedAt: formatTime(m.CreatedAt),
		UpdatedAt: formatOptionalTime(m.UpdatedAt),
		IsHidden:  m.Hidden,
	}
}
