package memory

import (
	"context"
	"sort"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

func (s *CatalogStore) CreateMembershipType(_ context.Context, rec store.MembershipTypeRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.id()
	stamp(&rec.Meta)
	s.membershipTypes[rec.ID] = rec
	return rec.ID, nil
}

func (s *CatalogStore) GetMembershipType(_ context.Context, id int64) (store.MembershipTypeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.membershipTypes[id]
	if !ok {
		return store.MembershipTypeRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *CatalogStore) ListMembershipTypes(_ context.Context) ([]store.MembershipTypeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.MembershipTypeRecord, 0, len(s.membershipTypes))
	for _, m := range s.membershipTypes {
		if !m.Deleted && !m.Hidden {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *CatalogStore) UpdateMembershipType(_ context.Context, rec store.MembershipTypeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.membershipTypes[rec.ID]
	if !ok {
		return store.ErrNotFound
	}
	cur.Name = rec.Name
	cur.Description = rec.Description
	cur.UpdatedAt = touched()
	s.membershipTypes[rec.ID] = cur
	return nil
}

func (s *CatalogStore) AddMembership(_ context.Context, personID, membershipTypeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.membershipTypes[membershipTypeID]; !ok {
		return false, store.ErrInvalidReference
	}
	key := [2]int64{personID, membershipTypeID}
	if _, ok := s.membershipLinks[key]; ok {
		return false, nil
	}
	s.membershipLinks[key] = struct{}{}
	return true, nil
}

func (s *CatalogStore) RemoveMembership(_ context.Context, personID, membershipTypeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int64{personID, membershipTypeID}
	if _, ok := s.membershipLinks[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.membershipLinks, key)
	return nil
}

// ListMemberships includes hidden membership types so a person keeps seeing
// a plan that was retired from the public list.
func (s *CatalogStore) ListMemberships(_ context.Context, personID int64) ([]store.MembershipTypeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.MembershipTypeRecord, 0)
	for key := range s.membershipLinks {
		if key[0] != personID {
			continue
		}
		if m, ok := s.membershipTypes[key[1]]; ok && !m.Deleted {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
