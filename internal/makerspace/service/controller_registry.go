package service

import (
	"context"
	"time"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

type ControllerRegistry struct {
	store store.ControllerStore
}

func NewControllerRegistry(st store.ControllerStore) *ControllerRegistry {
	return &ControllerRegistry{store: st}
}

func (r *ControllerRegistry) IsKnown(ctx context.Context, controller int) (bool, error) {
	if controller <= 0 {
		return false, nil
	}
	return r.store.IsKnown(ctx, controller)
}

func (r *ControllerRegistry) NoteSeen(ctx context.Context, controller int, at time.Time) error {
	if controller <= 0 {
		return nil
	}
	return r.store.MarkSeen(ctx, controller, at.UTC())
}
