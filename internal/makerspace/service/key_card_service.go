package service

import (
	"context"
	"slices"
	"strings"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
)

type KeyCardService struct {
	cards  store.KeyCardStore
	people store.PersonStore
}

func NewKeyCardService(cards store.KeyCardStore, people store.PersonStore) *KeyCardService {
	return &KeyCardService{cards: cards, people: people}
}

func (s *KeyCardService) Create(ctx context.Context, req types.KeyCardRequest) (types.KeyCard, error) {
	cardType := strings.ToLower(strings.TrimSpace(req.CardType))
	switch {
	case req.CardNumber == nil || *req.CardNumber <= 0:
		return types.KeyCard{}, invalid("card_number", "must be a positive integer")
	case !slices.Contains(store.KeyCardTypes, cardType):
		return types.KeyCard{}, invalid("card_type", "must be one of "+strings.Join(store.KeyCardTypes, ", "))
	case req.PersonID == nil || *req.PersonID <= 0:
		return types.KeyCard{}, invalid("person_id", "must be a positive integer")
	}

	p, err := s.people.GetPerson(ctx, *req.PersonID)
	if err != nil {
		return types.KeyCard{}, err
	}
	if p.Deleted {
		return types.KeyCard{}, ErrDeleted
	}

	rec := store.KeyCardRecord{CardNumber: *req.CardNumber, CardType: cardType, PersonID: *req.PersonID}
	id, err := s.cards.CreateKeyCard(ctx, rec)
	if err != nil {
		return types.KeyCard{}, err
	}
	rec.ID = id
	return toKeyCard(rec), nil
}

func (s *KeyCardService) Get(ctx context.Context, id int64) (types.KeyCard, error) {
	rec, err := s.cards.GetKeyCard(ctx, id)
	if err != nil {
		return types.KeyCard{}, err
	}
	return toKeyCard(rec), nil
}

func (s *KeyCardService) Delete(ctx context.Context, id int64) error {
	return s.cards.DeleteKeyCard(ctx, id)
}

func toKeyCard(r store.KeyCardRecord) types.KeyCard {
	return types.KeyCard{ID: r.ID, CardNumber: r.CardNumber, CardType: r.CardType, PersonID: r.PersonID}
}

// ── Key codes ────────────────────────────────────────────────────────────────

func (s *KeyCardService) keyCodeRecord(ctx context.Context, req types.KeyCodeRequest) (store.KeyCodeRecord, error) {
	switch {
	case req.Passcode == nil || *req.Passcode <= 0:
		return store.KeyCodeRecord{}, invalid("passcode", "must be a positive integer")
	case req.PersonID == nil || *req.PersonID <= 0:
		return store.KeyCodeRecord{}, invalid("person_id", "must be a positive integer")
	}
	p, err := s.people.GetPerson(ctx, *req.PersonID)
	if err != nil {
		return store.KeyCodeRecord{}, err
	}
	if p.Deleted {
		return store.KeyCodeRecord{}, ErrDeleted
	}
	return store.KeyCodeRecord{Passcode: *req.Passcode, PersonID: *req.PersonID}, nil
}

func (s *KeyCardService) CreateCode(ctx context.Context, req types.KeyCodeRequest) (types.KeyCode, error) {
	rec, err := s.keyCodeRecord(ctx, req)
	if err != nil {
		return types.KeyCode{}, err
	}
	id, err := s.cards.CreateKeyCode(ctx, rec)
	if err != nil {
		return types.KeyCode{}, err
	}
	rec.ID = id
	return toKeyCode(rec), nil
}

func (s *KeyCardService) GetCode(ctx context.Context, id int64) (types.KeyCode, error) {
	rec, err := s.cards.GetKeyCode(ctx, id)
	if err != nil {
		return types.KeyCode{}, err
	}
	return toKeyCode(rec), nil
}

func (s *KeyCardService) UpdateCode(ctx context.Context, id int64, req types.KeyCodeRequest) (types.KeyCode, error) {
	if _, err := s.cards.GetKeyCode(ctx, id); err != nil {
		return types.KeyCode{}, err
	}
	rec, err := s.keyCodeRecord(ctx, req)
	if err != nil {
		return types.KeyCode{}, err
	}
	rec.ID = id
	if err := s.cards.UpdateKeyCode(ctx, rec); err != nil {
		return types.KeyCode{}, err
	}
	return toKeyCode(rec), nil
}

func (s *KeyCardService) DeleteCode(ctx context.Context, id int64) error {
	return s.cards.DeleteKeyCode(ctx, id)
}

func toKeyCode(r store.KeyCodeRecord) types.KeyCode {
	return types.KeyCode{ID: r.ID, Passcode: r.Passcode, PersonID: r.PersonID}
}
