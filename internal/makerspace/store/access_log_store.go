package store

import (
	"context"
	"time"
)

// AccessLogRecord is one row scraped off a door controller log.
type AccessLogRecord struct {
	ID          int64
	LogSHA1     string // dedupe key across controller polls
	EventAt     time.Time
	CardNumber  int64
	EventType   string
	EventTypeID int
	EventReason string
	Door        int
	Controller  int
	Granted     bool
	PersonID    int64
	RecordedAt  time.Time
}

// AccessLogStore persists door events as an append-only log.
type AccessLogStore interface {
	// RecordEvent inserts rec unless a row with the same LogSHA1 already
	// exists, in which case the existing id is returned with inserted=false.
	RecordEvent(ctx context.Context, rec AccessLogRecord) (id int64, inserted bool, err error)
	GetEvent(ctx context.Context, id int64) (AccessLogRecord, error)
	DeleteEvent(ctx context.Context, id int64) error

	// FetchEvents returns personID's events with EventAt in [start, end],
	// oldest first. limit <= 0 means no limit.
	FetchEvents(ctx context.Context, personID int64, start, end time.Time, limit int) ([]AccessLogRecord, error)

	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
