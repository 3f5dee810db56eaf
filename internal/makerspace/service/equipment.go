package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
)

func (s *CatalogService) equipmentRecord(ctx context.Context, req types.EquipmentRequest) (store.EquipmentRecord, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return store.EquipmentRecord{}, err
	}
	rec := store.EquipmentRecord{
		Name:             name,
		EquipmentType:    strings.ToLower(strings.TrimSpace(req.EquipmentType)),
		Manufacturer:     strings.TrimSpace(req.Manufacturer),
		Model:            strings.TrimSpace(req.Model),
		SerialNumber:     strings.TrimSpace(req.SerialNumber),
		AssetID:          req.AssetID,
		Description:      strings.TrimSpace(req.Description),
		OutOfOrder:       req.OutOfOrder,
		RequiresTraining: req.RequiresTraining,
	}
	switch {
	case !slices.Contains(store.EquipmentTypes, rec.EquipmentType):
		return rec, invalid("equipment_type", "must be one of "+strings.Join(store.EquipmentTypes, ", "))
	case rec.Description == "":
		return rec, invalid("description", "is required")
	case req.ZoneID == nil || *req.ZoneID <= 0:
		return rec, invalid("zone_id", "must be a positive integer")
	}
	zone, err := s.store.GetZone(ctx, *req.ZoneID)
	if errors.Is(err, store.ErrNotFound) {
		return rec, invalid("zone_id", "zone does not exist")
	}
	if err != nil {
		return rec, err
	}
	if zone.Deleted {
		return rec, invalid("zone_id", "zone has been deleted")
	}
	rec.ZoneID = zone.ID
	return rec, nil
}

func (s *CatalogService) CreateEquipment(ctx context.Context, req types.EquipmentRequest) (types.Equipment, error) {
	rec, err := s.equipmentRecord(ctx, req)
	if err != nil {
		return types.Equipment{}, err
	}
	id, err := s.store.CreateEquipment(ctx, rec)
	if err != nil {
		return types.Equipment{}, err
	}
	return s.GetEquipment(ctx, id)
}

func (s *CatalogService) GetEquipment(ctx context.Context, id int64) (types.Equipment, error) {
	rec, err := s.store.GetEquipment(ctx, id)
	if err != nil {
		return types.Equipment{}, err
	}
	if err := visible(rec.Meta); err != nil {
		return types.Equipment{}, err
	}
	return toEquipment(rec), nil
}

func (s *CatalogService) ListEquipment(ctx context.Context) ([]types.Equipment, error) {
	recs, err := s.store.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}
	return toEquipmentList(recs), nil
}

func (s *CatalogService) UpdateEquipment(ctx context.Context, id int64, req types.EquipmentRequest) (types.Equipment, error) {
	cur, err := s.store.GetEquipment(ctx, id)
	if err != nil {
		return types.Equipment{}, err
	}
	if err := editable(cur.Meta); err != nil {
		return types.Equipment{}, err
	}
	rec, err := s.equipmentRecord(ctx, req)
	if err != nil {
		return types.Equipment{}, err
	}
	rec.ID = id
	if err := s.store.UpdateEquipment(ctx, rec); err != nil {
		return types.Equipment{}, err
	}
	return s.GetEquipment(ctx, id)
}

// ── Person ↔ equipment ──────────────────────────────────────────────────────

// pathPerson resolves the person named in a URL. Unknown ids stay
// ErrNotFound so the handler answers 404.
func (s *CatalogService) pathPerson(ctx context.Context, id int64) error {
	p, err := s.people.GetPerson(ctx, id)
	if err != nil {
		return err
	}
	if p.Deleted {
		return ErrDeleted
	}
	return nil
}

// AllowEquipment grants personID use of a piece of equipment. created is
// false when the grant already existed.
func (s *CatalogService) AllowEquipment(ctx context.Context, personID int64, req types.AllowEquipmentRequest) (created bool, err error) {
	if err := s.pathPerson(ctx, personID); err != nil {
		return false, err
	}
	if req.EquipmentID == nil || *req.EquipmentID <= 0 {
		return false, invalid("equipment_id", "must be a positive integer")
	}
	eq, err := s.store.GetEquipment(ctx, *req.EquipmentID)
	if errors.Is(err, store.ErrNotFound) {
		return false, invalid("equipment_id", "equipment does not exist")
	}
	if err != nil {
		return false, err
	}
	if eq.Deleted {
		return false, invalid("equipment_id", "equipment has been deleted")
	}
	created, err = s.store.AllowEquipment(ctx, personID, eq.ID)
	if err != nil {
		return false, err
	}
	if created {
		mlog.WithContext(ctx, s.logger).Info().
			Int64("person_id", personID).Int64("equipment_id", eq.ID).Msg("equipment access granted")
	}
	return created, nil
}

func (s *CatalogService) RevokeEquipment(ctx context.Context, personID, equipmentID int64) error {
	if err := s.pathPerson(ctx, personID); err != nil {
		return err
	}
	return s.store.RevokeEquipment(ctx, personID, equipmentID)
}

func (s *CatalogService) ListAllowedEquipment(ctx context.Context, personID int64) ([]types.Equipment, error) {
	if err := s.pathPerson(ctx, personID); err != nil {
		return nil, err
	}
	recs, err := s.store.ListAllowedEquipment(ctx, personID)
	if err != nil {
		return nil, err
	}
	return toEquipmentList(recs), nil
}

func toEquipmentList(recs []store.EquipmentRecord) []types.Equipment {
	out := make([]types.Equipment, 0, len(recs))
	for _, r := range recs {
		out = append(out, toEquipment(r))
	}
	return out
}

func toEquipment(r store.EquipmentRecord) types.Equipment {
	return types.Equipment{
		ID:               r.ID,
		Name:             r.Name,
		EquipmentType:    r.EquipmentType,
		Manufacturer:     r.Manufacturer,
		Model:            r.Model,
		SerialNumber:     r.SerialNumber,
		AssetID:          r.AssetID,
		Description:      r.Description,
		OutOfOrder:       r.OutOfOrder,
		RequiresTraining: r.RequiresTraining,
		ZoneID:           r.ZoneID,
		Record:           toRecord(r.Meta),
	}
}
