package store

import "context"

var KeyCardTypes = []string{"keyfob", "card", "bracelet", "sticker", "phone", "other"}

type KeyCardRecord struct {
	ID         int64
	CardNumber int64
	CardType   string
	PersonID   int64
}

// KeyCodeRecord is a keypad passcode. Like cards, each person holds at most
// one and passcodes are unique.
type KeyCodeRecord struct {
	ID       int64
	Passcode int64
	PersonID int64
}

type KeyCardStore interface {
	// CreateKeyCard returns ErrConflict if the card number or the person
	// already has a card, and ErrInvalidReference if the person is unknown.
	CreateKeyCard(ctx context.Context, rec KeyCardRecord) (int64, error)
	GetKeyCard(ctx context.Context, id int64) (KeyCardRecord, error)
	DeleteKeyCard(ctx context.Context, id int64) error
	PersonForCard(ctx context.Context, cardNumber int64) (int64, error)

	CreateKeyCode(ctx context.Context, rec KeyCodeRecord) (int64, error)
	GetKeyCode(ctx context.Context, id int64) (KeyCodeRecord, error)
	UpdateKeyCode(ctx context.Context, rec KeyCodeRecord) error
	DeleteKeyCode(ctx context.Context, id int64) error
}
