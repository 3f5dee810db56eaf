package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
)

func membershipTypeRecord(req types.MembershipTypeRequest) (store.MembershipTypeRecord, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return store.MembershipTypeRecord{}, err
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return store.MembershipTypeRecord{}, invalid("description", "is required")
	}
	return store.MembershipTypeRecord{Name: name, Description: desc}, nil
}

func (s *CatalogService) CreateMembershipType(ctx context.Context, req types.MembershipTypeRequest) (types.MembershipType, error) {
	rec, err := membershipTypeRecord(req)
	if err != nil {
		return types.MembershipType{}, err
	}
	id, err := s.store.CreateMembershipType(ctx, rec)
	if err != nil {
		return types.MembershipType{}, err
	}
	return s.GetMembershipType(ctx, id)
}

func (s *CatalogService) GetMembershipType(ctx context.Context, id int64) (types.MembershipType, error) {
	rec, err := s.store.GetMembershipType(ctx, id)
	if err != nil {
		return types.MembershipType{}, err
	}
	if err := visible(rec.Meta); err != nil {
		return types.MembershipType{}, err
	}
	return toMembershipType(rec), nil
}

func (s *CatalogService) ListMembershipTypes(ctx context.Context) ([]types.MembershipType, error) {
	recs, err := s.store.ListMembershipTypes(ctx)
	if err != nil {
		return nil, err
	}
	return toMembershipTypes(recs), nil
}

func (s *CatalogService) UpdateMembershipType(ctx context.Context, id int64, req types.MembershipTypeRequest) (types.MembershipType, error) {
	cur, err := s.store.GetMembershipType(ctx, id)
	if err != nil {
		return types.MembershipType{}, err
	}
	if err := editable(cur.Meta); err != nil {
		return types.MembershipType{}, err
	}
	rec, err := membershipTypeRecord(req)
	if err != nil {
		return types.MembershipType{}, err
	}
	rec.ID = id
	if err := s.store.UpdateMembershipType(ctx, rec); err != nil {
		return types.MembershipType{}, err
	}
	return s.GetMembershipType(ctx, id)
}

// AddMembership enrolls personID in a membership type. created is false when
// the person already held it.
func (s *CatalogService) AddMembership(ctx context.Context, personID int64, req types.AddMembershipRequest) (created bool, err error) {
	if err := s.pathPerson(ctx, personID); err != nil {
		return false, err
	}
	if req.MembershipTypeID == nil || *req.MembershipTypeID <= 0 {
		return false, invalid("membership_type_id", "must be a positive integer")
	}
	mt, err := s.store.GetMembershipType(ctx, *req.MembershipTypeID)
	if errors.Is(err, store.ErrNotFound) {
		return false, invalid("membership_type_id", "membership type does not exist")
	}
	if err != nil {
		return false, err
	}
	if mt.Deleted {
		return false, invalid("membership_type_id", "membership type has been deleted")
	}
	return s.store.AddMembership(ctx, personID, mt.ID)
}

func (s *CatalogService) RemoveMembership(ctx context.Context, personID, membershipTypeID int64) error {
	if err := s.pathPerson(ctx, personID); err != nil {
		return err
	}
	return s.store.RemoveMembership(ctx, personID, membershipTypeID)
}

func (s *CatalogService) ListMemberships(ctx context.Context, personID int64) ([]types.MembershipType, error) {
	if err := s.pathPerson(ctx, personID); err != nil {
		return nil, err
	}
	recs, err := s.store.ListMemberships(ctx, personID)
	if err != nil {
		return nil, err
	}
	return toMembershipTypes(recs), nil
}

func toMembershipTypes(recs []store.MembershipTypeRecord) []types.MembershipType {
	out := make([]types.MembershipType, 0, len(recs))
	for _, r := range recs {
		out = append(out, toMembershipType(r))
	}
	return out
}

func toMembershipType(r store.MembershipTypeRecord) types.MembershipType {
	return types.MembershipType{ID: r.ID, Name: r.Name, Description: r.Description, Record: toRecord(r.Meta)}
}
