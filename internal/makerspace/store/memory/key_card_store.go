package memory

import (
	"context"
	"sync"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
)

// KeyCardStore keeps cards in memory. People are resolved through the
// PersonStore it was built with so dangling references are rejected the same
// way the SQL foreign key would.
type KeyCardStore struct {
	mu     sync.RWMutex
	people *PersonStore
	nextID int64
	cards  map[int64]store.KeyCardRecord

	nextCode int64
	codes    map[int64]store.KeyCodeRecord
}

func NewKeyCardStore(people *PersonStore) *KeyCardStore {
	return &KeyCardStore{
		people: people,
		cards:  make(map[int64]store.KeyCardRecord),
		codes:  make(map[int64]store.KeyCodeRecord),
	}
}

func (s *KeyCardStore) CreateKeyCard(ctx context.Context, rec store.KeyCardRecord) (int64, error) {
	if s.people != nil {
		if _, err := s.people.GetPerson(ctx, rec.PersonID); err != nil {
			return 0, store.ErrInvalidReference
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if c.CardNumber == rec.CardNumber || c.PersonID == rec.PersonID {
			return 0, store.ErrConflict
		}
	}
	s.nextID++
	rec.ID = s.nextID
	s.cards[rec.ID] = rec
	return rec.ID, nil
}

func (s *KeyCardStore) GetKeyCard(_ context.Context, id int64) (store.KeyCardRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[id]
	if !ok {
		return store.KeyCardRecord{}, store.ErrNotFound
	}
	return c, nil
}

func (s *KeyCardStore) DeleteKeyCard(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *KeyCardStore) PersonForCard(_ context.Context, cardNumber int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cards {
		if c.CardNumber == cardNumber {
			return c.PersonID, nil
		}
	}
	return 0, store.ErrNotFound
}

// ── Key codes ────────────────────────────────────────────────────────────────

func (s *KeyCardStore) CreateKeyCode(ctx context.Context, rec store.KeyCodeRecord) (int64, error) {
	if s.people != nil {
		if _, err := s.people.GetPerson(ctx, rec.PersonID); err != nil {
			return 0, store.ErrInvalidReference
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.codeTaken(rec) {
		return 0, store.ErrConflict
	}
	s.nextCode++
	rec.ID = s.nextCode
	s.codes[rec.ID] = rec
	return rec.ID, nil
}

func (s *KeyCardStore) GetKeyCode(_ context.Context, id int64) (store.KeyCodeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.codes[id]
	if !ok {
		return store.KeyCodeRecord{}, store.ErrNotFound
	}
	return c, nil
}

func (s *KeyCardStore) UpdateKeyCode(ctx context.Context, rec store.KeyCodeRecord) error {
	if s.people != nil {
		if _, err := s.people.GetPerson(ctx, rec.PersonID); err != nil {
			return store.ErrInvalidReference
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.codes[rec.ID]; !ok {
		return store.ErrNotFound
	}
	if s.codeTaken(rec) {
		return store.ErrConflict
	}
	s.codes[rec.ID] = rec
	return nil
}

func (s *KeyCardStore) DeleteKeyCode(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.codes[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.codes, id)
	return nil
}

// codeTaken reports whether another code already uses rec's passcode or
// belongs to rec's person. Callers hold s.mu.
func (s *KeyCardStore) codeTaken(rec store.KeyCodeRecord) bool {
	for _, c := range s.codes {
		if c.ID != rec.ID && (c.Passcode == rec.Passcode || c.PersonID == rec.PersonID) {
			return true
		}
	}
	return false
}
