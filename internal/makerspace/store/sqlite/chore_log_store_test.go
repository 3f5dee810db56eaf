package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	sqlitestore "github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store/sqlite"
)

func seedChore(t *testing.T, cs *sqlitestore.CatalogStore, name string) int64 {
	t.Helper()
	id, err := cs.CreateChore(context.Background(), store.ChoreRecord{
		Name: name, Description: "d", Classification: "cleanup", Frequency: "weekly",
	})
	if err != nil {
		t.Fatalf("seedChore: %v", err)
	}
	return id
}

func TestCatalogStore_ChoreOwnership(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	cs := sqlitestore.NewCatalogStore(conn, w)
	ctx := context.Background()

	pid := seedPerson(t, conn, w, "Grace")
	chore := seedChore(t, cs, "Sweep")

	id, err := cs.CreateChoreOwnership(ctx, store.ChoreOwnershipRecord{PersonID: pid, ChoreID: chore, Notes: "mornings"})
	if err != nil {
		t.Fatalf("CreateChoreOwnership: %v", err)
	}
	if _, err := cs.CreateChoreOwnership(ctx, store.ChoreOwnershipRecord{PersonID: pid, ChoreID: 999}); !errors.Is(err, store.ErrInvalidReference) {
		t.Errorf("unknown chore: expected ErrInvalidReference, got %v", err)
	}

	got, err := cs.GetChoreOwnership(ctx, id)
	if err != nil {
		t.Fatalf("GetChoreOwnership: %v", err)
	}
	got.CompletionPercentage = 75
	if err := cs.UpdateChoreOwnership(ctx, got); err != nil {
		t.Fatalf("UpdateChoreOwnership: %v", err)
	}
	got, _ = cs.GetChoreOwnership(ctx, id)
	if got.CompletionPercentage != 75 || got.Notes != "mornings" || got.UpdatedAt == nil {
		t.Errorf("unexpected ownership: %+v", got)
	}

	list, err := cs.ListChoreOwnerships(ctx, chore)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListChoreOwnerships: %+v, %v", list, err)
	}

	// Owned chores and their owners cannot be hard-deleted.
	if err := cs.ApplyCatalogLifecycle(ctx, store.KindChore, chore, store.ActionHardDelete); !errors.Is(err, store.ErrConflict) {
		t.Errorf("hard delete chore: expected ErrConflict, got %v", err)
	}
	if err := sqlitestore.NewPersonStore(conn, w).ApplyPersonLifecycle(ctx, pid, store.ActionHardDelete); !errors.Is(err, store.ErrConflict) {
		t.Errorf("hard delete owner: expected ErrConflict, got %v", err)
	}

	if err := cs.ApplyCatalogLifecycle(ctx, store.KindChoreOwnership, id, store.ActionSoftDelete); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if list, _ := cs.ListChoreOwnerships(ctx, chore); len(list) != 0 {
		t.Errorf("deleted ownership listed: %+v", list)
	}
	if err := cs.ApplyCatalogLifecycle(ctx, store.KindChoreOwnership, id, store.ActionHardDelete); err != nil {
		t.Fatalf("hard delete ownership: %v", err)
	}
	if err := cs.ApplyCatalogLifecycle(ctx, store.KindChore, chore, store.ActionHardDelete); err != nil {
		t.Errorf("hard delete free chore: %v", err)
	}
}

func TestCatalogStore_ChoreHistory(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	cs := sqlitestore.NewCatalogStore(conn, w)
	ctx := context.Background()

	pid := seedPerson(t, conn, w, "Hedy")
	chore := seedChore(t, cs, "Mop")

	first, err := cs.CreateChoreHistory(ctx, store.ChoreHistoryRecord{ChoreID: chore, ClassType: "weekly", Status: "started"})
	if err != nil {
		t.Fatalf("CreateChoreHistory: %v", err)
	}
	second, err := cs.CreateChoreHistory(ctx, store.ChoreHistoryRecord{ChoreID: chore, PersonID: &pid, ClassType: "weekly", Status: "done"})
	if err != nil {
		t.Fatalf("CreateChoreHistory: %v", err)
	}

	list, err := cs.ListChoreHistory(ctx, chore)
	if err != nil {
		t.Fatalf("ListChoreHistory: %v", err)
	}
	if len(list) != 2 || list[0].ID != second || list[1].ID != first {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[1].PersonID != nil {
		t.Errorf("anonymous entry gained a person: %+v", list[1])
	}

	// Removing the person keeps the log entry but forgets who did it.
	if err := sqlitestore.NewPersonStore(conn, w).ApplyPersonLifecycle(ctx, pid, store.ActionHardDelete); err != nil {
		t.Fatalf("hard delete person: %v", err)
	}
	got, err := cs.GetChoreHistory(ctx, second)
	if err != nil {
		t.Fatalf("GetChoreHistory: %v", err)
	}
	if got.PersonID != nil {
		t.Errorf("PersonID = %v, want nil", *got.PersonID)
	}

	got.Status = "started"
	got.Notes = "reopened"
	if err := cs.UpdateChoreHistory(ctx, got); err != nil {
		t.Fatalf("UpdateChoreHistory: %v", err)
	}
	if err := cs.UpdateChoreHistory(ctx, store.ChoreHistoryRecord{ID: 999, ChoreID: chore, ClassType: "x", Status: "done"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
