package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

type PersonStore struct {
	mu     sync.RWMutex
	nextID int64
	people map[int64]store.PersonRecord
}

func NewPersonStore() *PersonStore {
	return &PersonStore{people: make(map[int64]store.PersonRecord)}
}

func (s *PersonStore) CreatePerson(_ context.Context, rec store.PersonRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec.ID = s.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.people[rec.ID] = rec
	return rec.ID, nil
}

func (s *PersonStore) GetPerson(_ context.Context, id int64) (store.PersonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.people[id]
	if !ok {
		return store.PersonRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *PersonStore) ListPeople(_ context.Context) ([]store.PersonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.PersonRecord, 0, len(s.people))
	for _, p := range s.people {
		if p.Deleted || p.Hidden {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *PersonStore) UpdatePerson(_ context.Context, rec store.PersonRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.people[rec.ID]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now().UTC()
	cur.First, cur.Last, cur.Email = rec.First, rec.Last, rec.Email
	cur.UpdatedAt = &now
	s.people[rec.ID] = cur
	return nil
}

func (s *PersonStore) ApplyPersonLifecycle(_ context.Context, id int64, action store.LifecycleAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.people[id]
	if !ok {
		return store.ErrNotFound
	}
	if action == store.ActionHardDelete {
		delete(s.people, id)
		return nil
	}
	cur.Meta.Apply(action, time.Now())
	s.people[id] = cur
	return nil
}
