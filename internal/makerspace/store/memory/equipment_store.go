package memory

import (
	"context"
	"sort"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

func (s *CatalogStore) CreateEquipment(_ context.Context, rec store.EquipmentRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[rec.ZoneID]; !ok {
		return 0, store.ErrInvalidReference
	}
	rec.ID = s.id()
	stamp(&rec.Meta)
	s.equipment[rec.ID] = rec
	return rec.ID, nil
}

func (s *CatalogStore) GetEquipment(_ context.Context, id int64) (store.EquipmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.equipment[id]
	if !ok {
		return store.EquipmentRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *CatalogStore) ListEquipment(_ context.Context) ([]store.EquipmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visibleEquipment(func(store.EquipmentRecord) bool { return true }), nil
}

func (s *CatalogStore) UpdateEquipment(_ context.Context, rec store.EquipmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.equipment[rec.ID]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := s.zones[rec.ZoneID]; !ok {
		return store.ErrInvalidReference
	}
	meta := cur.Meta
	cur = rec
	cur.Meta = meta
	cur.UpdatedAt = touched()
	s.equipment[rec.ID] = cur
	return nil
}

func (s *CatalogStore) AllowEquipment(_ context.Context, personID, equipmentID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.equipment[equipmentID]; !ok {
		return false, store.ErrInvalidReference
	}
	key := [2]int64{personID, equipmentID}
	if _, ok := s.equipmentLinks[key]; ok {
		return false, nil
	}
	s.equipmentLinks[key] = struct{}{}
	return true, nil
}

func (s *CatalogStore) RevokeEquipment(_ context.Context, personID, equipmentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int64{personID, equipmentID}
	if _, ok := s.equipmentLinks[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.equipmentLinks, key)
	return nil
}

func (s *CatalogStore) ListAllowedEquipment(_ context.Context, personID int64) ([]store.EquipmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visibleEquipment(func(e store.EquipmentRecord) bool {
		_, ok := s.equipmentLinks[[2]int64{personID, e.ID}]
		return ok
	}), nil
}

// visibleEquipment must be called with s.mu held.
func (s *CatalogStore) visibleEquipment(keep func(store.EquipmentRecord) bool) []store.EquipmentRecord {
	out := make([]store.EquipmentRecord, 0)
	for _, e := range s.equipment {
		if !e.Deleted && !e.Hidden && keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
