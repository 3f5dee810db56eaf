package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
)

const maxClassTypeLen = 40

// personRef checks that a person named in a request body exists and is not
// deleted.
func (s *CatalogService) personRef(ctx context.Context, field string, id *int64) error {
	if id == nil || *id <= 0 {
		return invalid(field, "must be a positive integer")
	}
	p, err := s.people.GetPerson(ctx, *id)
	if errors.Is(err, store.ErrNotFound) {
		return invalid(field, "person does not exist")
	}
	if err != nil {
		return err
	}
	if p.Deleted {
		return invalid(field, "person has been deleted")
	}
	return nil
}

func (s *CatalogService) choreRef(ctx context.Context, id *int64) error {
	if id == nil || *id <= 0 {
		return invalid("chore_id", "must be a positive integer")
	}
	c, err := s.store.GetChore(ctx, *id)
	if errors.Is(err, store.ErrNotFound) {
		return invalid("chore_id", "chore does not exist")
	}
	if err != nil {
		return err
	}
	if c.Deleted {
		return invalid("chore_id", "chore has been deleted")
	}
	return nil
}

// ── Chore ownership ──────────────────────────────────────────────────────────

func (s *CatalogService) ownershipRecord(ctx context.Context, req types.ChoreOwnershipRequest) (store.ChoreOwnershipRecord, error) {
	if err := s.personRef(ctx, "person_id", req.PersonID); err != nil {
		return store.ChoreOwnershipRecord{}, err
	}
	if err := s.choreRef(ctx, req.ChoreID); err != nil {
		return store.ChoreOwnershipRecord{}, err
	}
	rec := store.ChoreOwnershipRecord{
		PersonID: *req.PersonID,
		ChoreID:  *req.ChoreID,
		Notes:    strings.TrimSpace(req.Notes),
	}
	if req.CompletionPercentage != nil {
		pct := *req.CompletionPercentage
		if pct < 0 || pct > 100 {
			return rec, invalid("completion_percentage", "must be between 0 and 100")
		}
		rec.CompletionPercentage = pct
	}
	return rec, nil
}

func (s *CatalogService) CreateChoreOwnership(ctx context.Context, req types.ChoreOwnershipRequest) (types.ChoreOwnership, error) {
	rec, err := s.ownershipRecord(ctx, req)
	if err != nil {
		return types.ChoreOwnership{}, err
	}
	id, err := s.store.CreateChoreOwnership(ctx, rec)
	if err != nil {
		return types.ChoreOwnership{}, err
	}
	return s.GetChoreOwnership(ctx, id)
}

func (s *CatalogService) GetChoreOwnership(ctx context.Context, id int64) (types.ChoreOwnership, error) {
	rec, err := s.store.GetChoreOwnership(ctx, id)
	if err != nil {
		return types.ChoreOwnership{}, err
	}
	if err := visible(rec.Meta); err != nil {
		return types.ChoreOwnership{}, err
	}
	return toChoreOwnership(rec), nil
}

// ListChoreOwnerships returns who currently owns a chore.
func (s *CatalogService) ListChoreOwnerships(ctx context.Context, choreID int64) ([]types.ChoreOwnership, error) {
	if _, err := s.GetChore(ctx, choreID); err != nil {
		return nil, err
	}
	recs, err := s.store.ListChoreOwnerships(ctx, choreID)
	if err != nil {
		return nil, err
	}
	out := make([]types.ChoreOwnership, 0, len(recs))
	for _, r := range recs {
		out = append(out, toChoreOwnership(r))
	}
	return out, nil
}

func (s *CatalogService) UpdateChoreOwnership(ctx context.Context, id int64, req types.ChoreOwnershipRequest) (types.ChoreOwnership, error) {
	cur, err := s.store.GetChoreOwnership(ctx, id)
	if err != nil {
		return types.ChoreOwnership{}, err
	}
	if err := editable(cur.Meta); err != nil {
		return types.ChoreOwnership{}, err
	}
	rec, err := s.ownershipRecord(ctx, req)
	if err != nil {
		return types.ChoreOwnership{}, err
	}
	rec.ID = id
	if err := s.store.UpdateChoreOwnership(ctx, rec); err != nil {
		return types.ChoreOwnership{}, err
	}
	return s.GetChoreOwnership(ctx, id)
}

func toChoreOwnership(r store.ChoreOwnershipRecord) types.ChoreOwnership {
	return types.ChoreOwnership{
		ID:                   r.ID,
		PersonID:             r.PersonID,
		ChoreID:              r.ChoreID,
		CompletionPercentage: r.CompletionPercentage,
		Notes:                r.Notes,
		Record:               toRecord(r.Meta),
	}
}

// ── Chore history ────────────────────────────────────────────────────────────

func (s *CatalogService) historyRecord(ctx context.Context, req types.ChoreHistoryRequest) (store.ChoreHistoryRecord, error) {
	if err := s.choreRef(ctx, req.ChoreID); err != nil {
		return store.ChoreHistoryRecord{}, err
	}
	rec := store.ChoreHistoryRecord{
		ChoreID:   *req.ChoreID,
		Notes:     strings.TrimSpace(req.Notes),
		ClassType: strings.TrimSpace(req.ClassType),
		Status:    strings.ToLower(strings.TrimSpace(req.Status)),
	}
	if req.PersonID != nil {
		if err := s.personRef(ctx, "person_id", req.PersonID); err != nil {
			return rec, err
		}
		id := *req.PersonID
		rec.PersonID = &id
	}
	switch {
	case rec.ClassType == "":
		return rec, invalid("class_type", "is required")
	case len(rec.ClassType) > maxClassTypeLen:
		return rec, invalid("class_type", "must be at most 40 characters")
	case !slices.Contains(store.ChoreStatuses, rec.Status):
		return rec, invalid("status", "must be one of "+strings.Join(store.ChoreStatuses, ", "))
	}
	return rec, nil
}

func (s *CatalogService) CreateChoreHistory(ctx context.Context, req types.ChoreHistoryRequest) (types.ChoreHistory, error) {
	rec, err := s.historyRecord(ctx, req)
	if err != nil {
		return types.ChoreHistory{}, err
	}
	id, err := s.store.CreateChoreHistory(ctx, rec)
	if err != nil {
		return types.ChoreHistory{}, err
	}
	return s.GetChoreHistory(ctx, id)
}

func (s *CatalogService) GetChoreHistory(ctx context.Context, id int64) (types.ChoreHistory, error) {
	rec, err := s.store.GetChoreHistory(ctx, id)
	if err != nil {
		return types.ChoreHistory{}, err
	}
	if err := visible(rec.Meta); err != nil {
		return types.ChoreHistory{}, err
	}
	return toChoreHistory(rec), nil
}

// ListChoreHistory returns a chore's log, newest first.
func (s *CatalogService) ListChoreHistory(ctx context.Context, choreID int64) ([]types.ChoreHistory, error) {
	if _, err := s.GetChore(ctx, choreID); err != nil {
		return nil, err
	}
	recs, err := s.store.ListChoreHistory(ctx, choreID)
	if err != nil {
		return nil, err
	}
	out := make([]types.ChoreHistory, 0, len(recs))
	for _, r := range recs {
		out = append(out, toChoreHistory(r))
	}
	return out, nil
}

func (s *CatalogService) UpdateChoreHistory(ctx context.Context, id int64, req types.ChoreHistoryRequest) (types.ChoreHistory, error) {
	cur, err := s.store.GetChoreHistory(ctx, id)
	if err != nil {
		return types.ChoreHistory{}, err
	}
	if err := editable(cur.Meta); err != nil {
		return types.ChoreHistory{}, err
	}
	rec, err := s.historyRecord(ctx, req)
	if err != nil {
		return types.ChoreHistory{}, err
	}
	rec.ID = id
	if err := s.store.UpdateChoreHistory(ctx, rec); err != nil {
		return types.ChoreHistory{}, err
	}
	return s.GetChoreHistory(ctx, id)
}

func toChoreHistory(r store.ChoreHistoryRecord) types.ChoreHistory {
	return types.ChoreHistory{
		ID:        r.ID,
		ChoreID:   r.ChoreID,
		PersonID:  r.PersonID,
		Notes:     r.Notes,
		ClassType: r.ClassType,
		Status:    r.Status,
		Record:    toRecord(r.Meta),
	}
}
