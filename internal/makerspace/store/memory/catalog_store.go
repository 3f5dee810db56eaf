package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

type CatalogStore struct {
	mu        sync.RWMutex
	nextID    int64
	locations map[int64]store.LocationRecord
	zones     map[int64]store.ZoneRecord
	chores    map[int64]store.ChoreRecord

	ownerships      map[int64]store.ChoreOwnershipRecord
	history         map[int64]store.ChoreHistoryRecord
	equipment       map[int64]store.EquipmentRecord
	membershipTypes map[int64]store.MembershipTypeRecord

	// person id, equipment or membership type id
	equipmentLinks  map[[2]int64]struct{}
	membershipLinks map[[2]int64]struct{}
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		locations: make(map[int64]store.LocationRecord),
		zones:     make(map[int64]store.ZoneRecord),
		chores:    make(map[int64]store.ChoreRecord),

		ownerships:      make(map[int64]store.ChoreOwnershipRecord),
		history:         make(map[int64]store.ChoreHistoryRecord),
		equipment:       make(map[int64]store.EquipmentRecord),
		membershipTypes: make(map[int64]store.MembershipTypeRecord),
		equipmentLinks:  make(map[[2]int64]struct{}),
		membershipLinks: make(map[[2]int64]struct{}),
	}
}

func (s *CatalogStore) id() int64 {
	s.nextID++
	return s.nextID
}

func stamp(m *store.Meta) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
}

func touched() *time.Time {
	now := time.Now().UTC()
	return &now
}

// ── Locations ────────────────────────────────────────────────────────────────

func (s *CatalogStore) CreateLocation(_ context.Context, rec store.LocationRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.id()
	stamp(&rec.Meta)
	s.locations[rec.ID] = rec
	return rec.ID, nil
}

func (s *CatalogStore) GetLocation(_ context.Context, id int64) (store.LocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.locations[id]
	if !ok {
		return store.LocationRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *CatalogStore) ListLocations(_ context.Context) ([]store.LocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.LocationRecord, 0, len(s.locations))
	for _, l := range s.locations {
		if !l.Deleted && !l.Hidden {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *CatalogStore) UpdateLocation(_ context.Context, rec store.LocationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.locations[rec.ID]
	if !ok {
		return store.ErrNotFound
	}
	cur.Name = rec.Name
	cur.UpdatedAt = touched()
	s.locations[rec.ID] = cur
	return nil
}

// ── Zones ────────────────────────────────────────────────────────────────────

func (s *CatalogStore) CreateZone(_ context.Context, rec store.ZoneRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[rec.LocationID]; !ok {
		return 0, store.ErrInvalidReference
	}
	rec.ID = s.id()
	stamp(&rec.Meta)
	s.zones[rec.ID] = rec
	return rec.ID, nil
}

func (s *CatalogStore) GetZone(_ context.Context, id int64) (store.ZoneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.zones[id]
	if !ok {
		return store.ZoneRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *CatalogStore) ListZones(_ context.Context) ([]store.ZoneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.ZoneRecord, 0, len(s.zones))
	for _, z := range s.zones {
		if !z.Deleted && !z.Hidden {
			out = append(out, z)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *CatalogStore) UpdateZone(_ context.Context, rec store.ZoneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.zones[rec.ID]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := s.locations[rec.LocationID]; !ok {
		return store.ErrInvalidReference
	}
	cur.Name = rec.Name
	cur.LocationID = rec.LocationID
	cur.UpdatedAt = touched()
	s.zones[rec.ID] = cur
	return nil
}

// ── Chores ───────────────────────────────────────────────────────────────────

func (s *CatalogStore) CreateChore(_ context.Context, rec store.ChoreRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.chores {
		if c.Name == rec.Name {
			return 0, store.ErrConflict
		}
	}
	rec.ID = s.id()
	stamp(&rec.Meta)
	s.chores[rec.ID] = rec
	return rec.ID, nil
}

func (s *CatalogStore) GetChore(_ context.Context, id int64) (store.ChoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.chores[id]
	if !ok {
		return store.ChoreRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *CatalogStore) ListChores(_ context.Context) ([]store.ChoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.ChoreRecord, 0, len(s.chores))
	for _, c := range s.chores {
		if !c.Deleted && !c.Hidden {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *CatalogStore) UpdateChore(_ context.Context, rec store.ChoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.chores[rec.ID]
	if !ok {
		return store.ErrNotFound
	}
	for _, c := range s.chores {
		if c.ID != rec.ID && c.Name == rec.Name {
			return store.ErrConflict
		}
	}
	meta := cur.Meta
	cur = rec
	cur.Meta = meta
	cur.UpdatedAt = touched()
	s.chores[rec.ID] = cur
	return nil
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func (s *CatalogStore) ApplyCatalogLifecycle(_ context.Context, kind store.Kind, id int64, action store.LifecycleAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()

	switch kind {
	case store.KindLocation:
		rec, ok := s.locations[id]
		if !ok {
			return store.ErrNotFound
		}
		if action == store.ActionHardDelete {
			for _, z := range s.zones {
				if z.LocationID == id {
					return store.ErrConflict
				}
			}
			delete(s.locations, id)
			return nil
		}
		rec.Meta.Apply(action, now)
		s.locations[id] = rec
	case store.KindZone:
		rec, ok := s.zones[id]
		if !ok {
			return store.ErrNotFound
		}
		if action == store.ActionHardDelete {
			for _, e := range s.equipment {
				if e.ZoneID == id {
					return store.ErrConflict
				}
			}
			delete(s.zones, id)
			return nil
		}
		rec.Meta.Apply(action, now)
		s.zones[id] = rec
	case store.KindChore:
		rec, ok := s.chores[id]
		if !ok {
			return store.ErrNotFound
		}
		if action == store.ActionHardDelete {
			if s.choreReferenced(id) {
				return store.ErrConflict
			}
			delete(s.chores, id)
			return nil
		}
		rec.Meta.Apply(action, now)
		s.chores[id] = rec
	case store.KindChoreOwnership:
		rec, ok := s.ownerships[id]
		if !ok {
			return store.ErrNotFound
		}
		if action == store.ActionHardDelete {
			delete(s.ownerships, id)
			return nil
		}
		rec.Meta.Apply(action, now)
		s.ownerships[id] = rec
	case store.KindChoreHistory:
		rec, ok := s.history[id]
		if !ok {
			return store.ErrNotFound
		}
		if action == store.ActionHardDelete {
			delete(s.history, id)
			return nil
		}
		rec.Meta.Apply(action, now)
		s.history[id] = rec
	case store.KindEquipment:
		rec, ok := s.equipment[id]
		if !ok {
			return store.ErrNotFound
		}
		if action == store.ActionHardDelete {
			delete(s.equipment, id)
			dropLinks(s.equipmentLinks, id)
			return nil
		}
		rec.Meta.Apply(action, now)
		s.equipment[id] = rec
	case store.KindMembershipType:
		rec, ok := s.membershipTypes[id]
		if !ok {
			return store.ErrNotFound
		}
		if action == store.ActionHardDelete {
			delete(s.membershipTypes, id)
			dropLinks(s.membershipLinks, id)
			return nil
		}
		rec.Meta.Apply(action, now)
		s.membershipTypes[id] = rec
	default:
		return store.ErrNotFound
	}
	return nil
}

func (s *CatalogStore) choreReferenced(id int64) bool {
	for _, o := range s.ownerships {
		if o.ChoreID == id {
			return true
		}
	}
	for _, h := range s.history {
		if h.ChoreID == id {
			return true
		}
	}
	return false
}

// dropLinks removes every person link pointing at target.
func dropLinks(links map[[2]int64]struct{}, target int64) {
	for k := range links {
		if k[1] == target {
			delete(links, k)
		}
	}
}
