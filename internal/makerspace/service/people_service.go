package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
)

type PeopleService struct {
	store  store.PersonStore
	logger zerolog.Logger
}

func NewPeopleService(st store.PersonStore, logger zerolog.Logger) *PeopleService {
	return &PeopleService{store: st, logger: logger.With().Str(mlog.FieldComponent, "people").Logger()}
}

func validatePerson(req types.PersonRequest) (store.PersonRecord, error) {
	rec := store.PersonRecord{
		First: strings.TrimSpace(req.First),
		Last:  strings.TrimSpace(req.Last),
		Email: strings.TrimSpace(req.Email),
	}
	if rec.First == "" {
		return rec, invalid("first", "is required")
	}
	if rec.Last == "" {
		return rec, invalid("last", "is required")
	}
	if _, err := mail.ParseAddress(rec.Email); err != nil {
		return rec, invalid("email", "must be a valid address")
	}
	return rec, nil
}

func (s *PeopleService) Create(ctx context.Context, req types.PersonRequest) (types.Person, error) {
	rec, err := validatePerson(req)
	if err != nil {
		return types.Person{}, err
	}
	id, err := s.store.CreatePerson(ctx, rec)
	if err != nil {
		return types.Person{}, err
	}
	mlog.WithContext(ctx, s.logger).Info().Int64(mlog.FieldPersonID, id).Msg("person created")
	return s.Get(ctx, id)
}

func (s *PeopleService) Get(ctx context.Context, id int64) (types.Person, error) {
	rec, err := s.store.GetPerson(ctx, id)
	if err != nil {
		return types.Person{}, err
	}
	if err := visible(rec.Meta); err != nil {
		return types.Person{}, err
	}
	return toPerson(rec), nil
}

func (s *PeopleService) List(ctx context.Context) ([]types.Person, error) {
	recs, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Person, 0, len(recs))
	for _, r := range recs {
		out = append(out, toPerson(r))
	}
	return out, nil
}

func (s *PeopleService) Update(ctx context.Context, id int64, req types.PersonRequest) (types.Person, error) {
	cur, err := s.store.GetPerson(ctx, id)
	if err != nil {
		return types.Person{}, err
	}
	if err := editable(cur.Meta); err != nil {
		return types.Person{}, err
	}
	rec, err := validatePerson(req)
	if err != nil {
		return types.Person{}, err
	}
	rec.ID = id
	if err := s.store.UpdatePerson(ctx, rec); err != nil {
		return types.Person{}, err
	}
	return s.Get(ctx, id)
}

func (s *PeopleService) Lifecycle(ctx context.Context, id int64, action string) error {
	a, err := parseAction(action)
	if err != nil {
		return err
	}
	if err := s.store.ApplyPersonLifecycle(ctx, id, a); err != nil {
		return err
	}
	mlog.WithContext(ctx, s.logger).Info().
		Int64(mlog.FieldPersonID, id).Str("action", string(a)).Msg("person lifecycle applied")
	return nil
}

// Delete is a soft delete.
func (s *PeopleService) Delete(ctx context.Context, id int64) error {
	return s.Lifecycle(ctx, id, string(store.ActionSoftDelete))
}

func toPerson(r store.PersonRecord) types.Person {
	return types.Person{
		ID:     r.ID,
		First:  r.First,
		Last:   r.Last,
		Email:  r.Email,
		Record: toRecord(r.Meta),
	}
}
