package memory

import (
	"context"
	"sort"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

// ── Chore ownership ──────────────────────────────────────────────────────────

func (s *CatalogStore) CreateChoreOwnership(_ context.Context, rec store.ChoreOwnershipRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chores[rec.ChoreID]; !ok {
		return 0, store.ErrInvalidReference
	}
	rec.ID = s.id()
	stamp(&rec.Meta)
	s.ownerships[rec.ID] = rec
	return rec.ID, nil
}

func (s *CatalogStore) GetChoreOwnership(_ context.Context, id int64) (store.ChoreOwnershipRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.ownerships[id]
	if !ok {
		return store.ChoreOwnershipRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *CatalogStore) ListChoreOwnerships(_ context.Context, choreID int64) ([]store.ChoreOwnershipRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.ChoreOwnershipRecord
	for _, o := range s.ownerships {
		if o.ChoreID == choreID && !o.Deleted && !o.Hidden {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *CatalogStore) UpdateChoreOwnership(_ context.Context, rec store.ChoreOwnershipRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.ownerships[rec.ID]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := s.chores[rec.ChoreID]; !ok {
		return store.ErrInvalidReference
	}
	meta := cur.Meta
	cur = rec
	cur.Meta = meta
	cur.UpdatedAt = touched()
	s.ownerships[rec.ID] = cur
	return nil
}

// ── Chore history ────────────────────────────────────────────────────────────

func (s *CatalogStore) CreateChoreHistory(_ context.Context, rec store.ChoreHistoryRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chores[rec.ChoreID]; !ok {
		return 0, store.ErrInvalidReference
	}
	rec.ID = s.id()
	stamp(&rec.Meta)
	s.history[rec.ID] = rec
	return rec.ID, nil
}

func (s *CatalogStore) GetChoreHistory(_ context.Context, id int64) (store.ChoreHistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.history[id]
	if !ok {
		return store.ChoreHistoryRecord{}, store.ErrNotFound
	}
	return rec, nil
}

// ListChoreHistory returns the newest entries first.
func (s *CatalogStore) ListChoreHistory(_ context.Context, choreID int64) ([]store.ChoreHistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.ChoreHistoryRecord
	for _, h := range s.history {
		if h.ChoreID == choreID && !h.Deleted && !h.Hidden {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *CatalogStore) UpdateChoreHistory(_ context.Context, rec store.ChoreHistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.history[rec.ID]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := s.chores[rec.ChoreID]; !ok {
		return store.ErrInvalidReference
	}
	meta := cur.Meta
	cur = rec
	cur.Meta = meta
	cur.UpdatedAt = touched()
	s.history[rec.ID] = cur
	return nil
}
