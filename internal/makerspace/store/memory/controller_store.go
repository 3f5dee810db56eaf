package memory

import (
	"context"
	"sync"
	"time"
)

type ControllerStore struct {
	mu    sync.RWMutex
	known map[int]struct{}
	seen  map[int]time.Time
}

func NewControllerStore(knownControllers []int) *ControllerStore {
	k := make(map[int]struct{}, len(knownControllers))
	for _, c := range knownControllers {
		if c > 0 {
			k[c] = struct{}{}
		}
	}
	return &ControllerStore{
		known: k,
		seen:  make(map[int]time.Time),
	}
}

func (s *ControllerStore) IsKnown(_ context.Context, controller int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.known[controller]
	return ok, nil
}

func (s *ControllerStore) MarkSeen(_ context.Context, controller int, t time.Time) error {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.seen[controller]; !ok || t.After(prev) {
		s.seen[controller] = t
	}
	return nil
}

// LastSeen reports when controller last produced an event.  Test-only helper.
func (s *ControllerStore) LastSeen(controller int) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.seen[controller]
	return t, ok
}
