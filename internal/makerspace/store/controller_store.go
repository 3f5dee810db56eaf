package store

import (
	"context"
	"time"
)

type ControllerRecord struct {
	Controller  int
	Name        string
	Enabled     bool
	LastEventAt *time.Time
}

type ControllerStore interface {
	IsKnown(ctx context.Context, controller int) (bool, error)
	MarkSeen(ctx context.Context, controller int, t time.Time) error
}
