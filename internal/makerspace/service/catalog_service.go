package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
)

// CatalogService manages the shop's physical layout and its chore list.
type CatalogService struct {
	store  store.CatalogStore
	people store.PersonStore
	logger zerolog.Logger
}

func NewCatalogService(st store.CatalogStore, people store.PersonStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		store:  st,
		people: people,
		logger: logger.With().Str(mlog.FieldComponent, "catalog").Logger(),
	}
}

func (s *CatalogService) Lifecycle(ctx context.Context, kind store.Kind, id int64, action string) error {
	a, err := parseAction(action)
	if err != nil {
		return err
	}
	if err := s.store.ApplyCatalogLifecycle(ctx, kind, id, a); err != nil {
		return err
	}
	mlog.WithContext(ctx, s.logger).Info().
		Str("kind", string(kind)).Int64("id", id).Str("action", string(a)).Msg("catalog lifecycle applied")
	return nil
}

// Delete is a soft delete.
func (s *CatalogService) Delete(ctx context.Context, kind store.Kind, id int64) error {
	return s.Lifecycle(ctx, kind, id, string(store.ActionSoftDelete))
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name", "is required")
	}
	return name, nil
}

// ── Locations ────────────────────────────────────────────────────────────────

func (s *CatalogService) CreateLocation(ctx context.Context, req types.LocationRequest) (types.Location, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return types.Location{}, err
	}
	id, err := s.store.CreateLocation(ctx, store.LocationRecord{Name: name})
	if err != nil {
		return types.Location{}, err
	}
	return s.GetLocation(ctx, id)
}

func (s *CatalogService) GetLocation(ctx context.Context, id int64) (types.Location, error) {
	rec, err := s.store.GetLocation(ctx, id)
	if err != nil {
		return types.Location{}, err
	}
	if err := visible(rec.Meta); err != nil {
		return types.Location{}, err
	}
	return toLocation(rec), nil
}

func (s *CatalogService) ListLocations(ctx context.Context) ([]types.Location, error) {
	recs, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Location, 0, len(recs))
	for _, r := range recs {
		out = append(out, toLocation(r))
	}
	return out, nil
}

func (s *CatalogService) UpdateLocation(ctx context.Context, id int64, req types.LocationRequest) (types.Location, error) {
	cur, err := s.store.GetLocation(ctx, id)
	if err != nil {
		return types.Location{}, err
	}
	if err := editable(cur.Meta); err != nil {
		return types.Location{}, err
	}
	name, err := requireName(req.Name)
	if err != nil {
		return types.Location{}, err
	}
	if err := s.store.UpdateLocation(ctx, store.LocationRecord{ID: id, Name: name}); err != nil {
		return types.Location{}, err
	}
	return s.GetLocation(ctx, id)
}

func toLocation(r store.LocationRecord) types.Location {
	return types.Location{ID: r.ID, Name: r.Name, Record: toRecord(r.Meta)}
}

// ── Zones ────────────────────────────────────────────────────────────────────

func (s *CatalogService) zoneRecord(ctx context.Context, req types.ZoneRequest) (store.ZoneRecord, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return store.ZoneRecord{}, err
	}
	if req.LocationID == nil || *req.LocationID <= 0 {
		return store.ZoneRecord{}, invalid("location_id", "must be a positive integer")
	}
	loc, err := s.store.GetLocation(ctx, *req.LocationID)
	if errors.Is(err, store.ErrNotFound) {
		return store.ZoneRecord{}, invalid("location_id", "location does not exist")
	}
	if err != nil {
		return store.ZoneRecord{}, err
	}
	if loc.Deleted {
		return store.ZoneRecord{}, invalid("location_id", "location has been deleted")
	}
	return store.ZoneRecord{Name: name, LocationID: loc.ID}, nil
}

func (s *CatalogService) CreateZone(ctx context.Context, req types.ZoneRequest) (types.Zone, error) {
	rec, err := s.zoneRecord(ctx, req)
	if err != nil {
		return types.Zone{}, err
	}
	id, err := s.store.CreateZone(ctx, rec)
	if err != nil {
		return types.Zone{}, err
	}
	return s.GetZone(ctx, id)
}

func (s *CatalogService) GetZone(ctx context.Context, id int64) (types.Zone, error) {
	rec, err := s.store.GetZone(ctx, id)
	if err != nil {
		return types.Zone{}, err
	}
	if err := visible(rec.Meta); err != nil {
		return types.Zone{}, err
	}
	return toZone(rec), nil
}

func (s *CatalogService) ListZones(ctx context.Context) ([]types.Zone, error) {
	recs, err := s.store.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Zone, 0, len(recs))
	for _, r := range recs {
		out = append(out, toZone(r))
	}
	return out, nil
}

func (s *CatalogService) UpdateZone(ctx context.Context, id int64, req types.ZoneRequest) (types.Zone, error) {
	cur, err := s.store.GetZone(ctx, id)
	if err != nil {
		return types.Zone{}, err
	}
	if err := editable(cur.Meta); err != nil {
		return types.Zone{}, err
	}
	rec, err := s.zoneRecord(ctx, req)
	if err != nil {
		return types.Zone{}, err
	}
	rec.ID = id
	if err := s.store.UpdateZone(ctx, rec); err != nil {
		return types.Zone{}, err
	}
	return s.GetZone(ctx, id)
}

func toZone(r store.ZoneRecord) types.Zone {
	return types.Zone{ID: r.ID, Name: r.Name, LocationID: r.LocationID, Record: toRecord(r.Meta)}
}

// ── Chores ───────────────────────────────────────────────────────────────────

func (s *CatalogService) choreRecord(ctx context.Context, req types.ChoreRequest) (store.ChoreRecord, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return store.ChoreRecord{}, err
	}
	rec := store.ChoreRecord{
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		Classification: strings.ToLower(strings.TrimSpace(req.Classification)),
		Frequency:      strings.ToLower(strings.TrimSpace(req.Frequency)),
	}
	if rec.Description == "" {
		return rec, invalid("description", "is required")
	}
	if !slices.Contains(store.ChoreClassifications, rec.Classification) {
		return rec, invalid("classification", "must be one of "+strings.Join(store.ChoreClassifications, ", "))
	}
	if !slices.Contains(store.ChoreFrequencies, rec.Frequency) {
		return rec, invalid("frequency", "must be one of "+strings.Join(store.ChoreFrequencies, ", "))
	}
	if req.LastCompleted != "" {
		t, ok := parseEventTime(req.LastCompleted)
		if !ok {
			return rec, invalid("last_completed", "must be 'YYYY-MM-DD HH:MM:SS' or RFC3339")
		}
		rec.LastCompleted = &t
	}
	if req.CreatorID != nil {
		if _, err := s.people.GetPerson(ctx, *req.CreatorID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return rec, invalid("creator_id", "person does not exist")
			}
			return rec, err
		}
		id := *req.CreatorID
		rec.CreatorID = &id
	}
	return rec, nil
}

func (s *CatalogService) CreateChore(ctx context.Context, req types.ChoreRequest) (types.Chore, error) {
	rec, err := s.choreRecord(ctx, req)
	if err != nil {
		return types.Chore{}, err
	}
	id, err := s.store.CreateChore(ctx, rec)
	if err != nil {
		return types.Chore{}, err
	}
	return s.GetChore(ctx, id)
}

func (s *CatalogService) GetChore(ctx context.Context, id int64) (types.Chore, error) {
	rec, err := s.store.GetChore(ctx, id)
	if err != nil {
		return types.Chore{}, err
	}
	if err := visible(rec.Meta); err != nil {
		return types.Chore{}, err
	}
	return toChore(rec), nil
}

func (s *CatalogService) ListChores(ctx context.Context) ([]types.Chore, error) {
	recs, err := s.store.ListChores(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Chore, 0, len(recs))
	for _, r := range recs {
		out = append(out, toChore(r))
	}
	return out, nil
}

func (s *CatalogService) UpdateChore(ctx context.Context, id int64, req types.ChoreRequest) (types.Chore, error) {
	cur, err := s.store.GetChore(ctx, id)
	if err != nil {
		return types.Chore{}, err
	}
	if err := editable(cur.Meta); err != nil {
		return types.Chore{}, err
	}
	rec, err := s.choreRecord(ctx, req)
	if err != nil {
		return types.Chore{}, err
	}
	rec.ID = id
	if err := s.store.UpdateChore(ctx, rec); err != nil {
		return types.Chore{}, err
	}
	return s.GetChore(ctx, id)
}

func toChore(r store.ChoreRecord) types.Chore {
	return types.Chore{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Classification: r.Classification,
		Frequency:      r.Frequency,
		CreatorID:      r.CreatorID,
		LastCompleted:  formatOptionalTime(r.LastCompleted),
		Record:         toRecord(r.Meta),
	}
}
