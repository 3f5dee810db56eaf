package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	sqlitestore "github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store/sqlite"
)

func TestKeyCardStore_CreateAndResolve(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewKeyCardStore(conn, w)
	ctx := context.Background()

	pid := seedPerson(t, conn, w, "Ada")
	id, err := ks.CreateKeyCard(ctx, store.KeyCardRecord{CardNumber: 4242, CardType: "keyfob", PersonID: pid})
	if err != nil {
		t.Fatalf("CreateKeyCard: %v", err)
	}

	got, err := ks.GetKeyCard(ctx, id)
	if err != nil {
		t.Fatalf("GetKeyCard: %v", err)
	}
	if got.CardNumber != 4242 || got.PersonID != pid || got.CardType != "keyfob" {
		t.Errorf("unexpected card: %+v", got)
	}

	resolved, err := ks.PersonForCard(ctx, 4242)
	if err != nil {
		t.Fatalf("PersonForCard: %v", err)
	}
	if resolved != pid {
		t.Errorf("PersonForCard = %d, want %d", resolved, pid)
	}
	if _, err := ks.PersonForCard(ctx, 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown card: expected ErrNotFound, got %v", err)
	}
}

func TestKeyCardStore_Conflicts(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewKeyCardStore(conn, w)
	ctx := context.Background()

	ada := seedPerson(t, conn, w, "Ada")
	bob := seedPerson(t, conn, w, "Bob")

	if _, err := ks.CreateKeyCard(ctx, store.KeyCardRecord{CardNumber: 1, CardType: "card", PersonID: ada}); err != nil {
		t.Fatalf("CreateKeyCard: %v", err)
	}

	tests := []struct {
		name string
		rec  store.KeyCardRecord
		want error
	}{
		{"same number", store.KeyCardRecord{CardNumber: 1, CardType: "card", PersonID: bob}, store.ErrConflict},
		{"second card for person", store.KeyCardRecord{CardNumber: 2, CardType: "card", PersonID: ada}, store.ErrConflict},
		{"unknown person", store.KeyCardRecord{CardNumber: 3, CardType: "card", PersonID: 999}, store.ErrInvalidReference},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ks.CreateKeyCard(ctx, tc.rec)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestKeyCardStore_Delete(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewKeyCardStore(conn, w)
	ctx := context.Background()

	pid := seedPerson(t, conn, w, "Ada")
	id, err := ks.CreateKeyCard(ctx, store.KeyCardRecord{CardNumber: 7, CardType: "sticker", PersonID: pid})
	if err != nil {
		t.Fatalf("CreateKeyCard: %v", err)
	}
	if err := ks.DeleteKeyCard(ctx, id); err != nil {
		t.Fatalf("DeleteKeyCard: %v", err)
	}
	if err := ks.DeleteKeyCard(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// The person may now take a new card.
	if _, err := ks.CreateKeyCard(ctx, store.KeyCardRecord{CardNumber: 8, CardType: "card", PersonID: pid}); err != nil {
		t.Errorf("re-issue after delete: %v", err)
	}
}

func TestKeyCardStore_KeyCodes(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewKeyCardStore(conn, w)
	ctx := context.Background()

	a := seedPerson(t, conn, w, "Ann")
	b := seedPerson(t, conn, w, "Bob")

	id, err := ks.CreateKeyCode(ctx, store.KeyCodeRecord{Passcode: 2468, PersonID: a})
	if err != nil {
		t.Fatalf("CreateKeyCode: %v", err)
	}
	if _, err := ks.CreateKeyCode(ctx, store.KeyCodeRecord{Passcode: 2468, PersonID: b}); !errors.Is(err, store.ErrConflict) {
		t.Errorf("reused passcode: expected ErrConflict, got %v", err)
	}
	if _, err := ks.CreateKeyCode(ctx, store.KeyCodeRecord{Passcode: 1357, PersonID: a}); !errors.Is(err, store.ErrConflict) {
		t.Errorf("second code for person: expected ErrConflict, got %v", err)
	}
	if _, err := ks.CreateKeyCode(ctx, store.KeyCodeRecord{Passcode: 1357, PersonID: 999}); !errors.Is(err, store.ErrInvalidReference) {
		t.Errorf("unknown person: expected ErrInvalidReference, got %v", err)
	}

	if err := ks.UpdateKeyCode(ctx, store.KeyCodeRecord{ID: id, Passcode: 8642, PersonID: a}); err != nil {
		t.Fatalf("UpdateKeyCode: %v", err)
	}
	got, err := ks.GetKeyCode(ctx, id)
	if err != nil || got.Passcode != 8642 {
		t.Fatalf("GetKeyCode: %+v, %v", got, err)
	}

	if err := ks.DeleteKeyCode(ctx, id); err != nil {
		t.Fatalf("DeleteKeyCode: %v", err)
	}
	if _, err := ks.GetKeyCode(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := ks.DeleteKeyCode(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("delete twice: expected ErrNotFound, got %v", err)
	}
}
