package service

import (
	"context"
	"time"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/volunteer"
)

// accessLogSource exposes an AccessLogStore as a volunteer.EventSource.
type accessLogSource struct {
	logs store.AccessLogStore
}

func (a accessLogSource) FetchEvents(ctx context.Context, personID int64, start, end time.Time, limit int) ([]volunteer.Event, error) {
	recs, err := a.logs.FetchEvents(ctx, personID, start, end, limit)
	if err != nil {
		return nil, err
	}
	out := make([]volunteer.Event, len(recs))
	for i, r := range recs {
		out[i] = volunteer.Event{
			PersonID:   r.PersonID,
			At:         r.EventAt,
			Controller: r.Controller,
			Door:       r.Door,
			Granted:    r.Granted,
		}
	}
	return out, nil
}
