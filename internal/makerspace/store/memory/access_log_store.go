package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

// AccessLogStore is an in-memory append-only door log.
// It is intended for use in tests and dev environments.
type AccessLogStore struct {
	mu     sync.Mutex
	nextID int64
	events []store.AccessLogRecord
	bySHA  map[string]int64
}

func NewAccessLogStore() *AccessLogStore {
	return &AccessLogStore{bySHA: make(map[string]int64)}
}

func (s *AccessLogStore) RecordEvent(_ context.Context, rec store.AccessLogRecord) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.LogSHA1 != "" {
		if id, ok := s.bySHA[rec.LogSHA1]; ok {
			return id, false, nil
		}
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	s.nextID++
	rec.ID = s.nextID
	s.events = append(s.events, rec)
	if rec.LogSHA1 != "" {
		s.bySHA[rec.LogSHA1] = rec.ID
	}
	return rec.ID, true, nil
}

func (s *AccessLogStore) GetEvent(_ context.Context, id int64) (store.AccessLogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return store.AccessLogRecord{}, store.ErrNotFound
}

func (s *AccessLogStore) DeleteEvent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ev := range s.events {
		if ev.ID == id {
			delete(s.bySHA, ev.LogSHA1)
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *AccessLogStore) FetchEvents(_ context.Context, personID int64, start, end time.Time, limit int) ([]store.AccessLogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.AccessLogRecord
	for _, ev := range s.events {
		if ev.PersonID != personID || ev.EventAt.Before(start) || ev.EventAt.After(end) {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EventAt.Equal(out[j].EventAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].EventAt.Before(out[j].EventAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *AccessLogStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	var deleted int64
	for _, ev := range s.events {
		if ev.EventAt.Before(cutoff) {
			delete(s.bySHA, ev.LogSHA1)
			deleted++
			continue
		}
		kept = append(kept, ev)
	}
	s.events = kept
	return deleted, nil
}

// Events returns a copy of all recorded events.  Test-only helper.
func (s *AccessLogStore) Events() []store.AccessLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.AccessLogRecord, len(s.events))
	copy(out, s.events)
	return out
}
