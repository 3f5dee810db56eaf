package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	sqlitestore "github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store/sqlite"
)

func TestCatalogStore_Memberships(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	cs := sqlitestore.NewCatalogStore(conn, w)
	ctx := context.Background()

	pid := seedPerson(t, conn, w, "Ida")
	basic, err := cs.CreateMembershipType(ctx, store.MembershipTypeRecord{Name: "Basic", Description: "Evenings"})
	if err != nil {
		t.Fatalf("CreateMembershipType: %v", err)
	}
	pro, err := cs.CreateMembershipType(ctx, store.MembershipTypeRecord{Name: "Pro", Description: "24/7"})
	if err != nil {
		t.Fatalf("CreateMembershipType: %v", err)
	}

	if err := cs.UpdateMembershipType(ctx, store.MembershipTypeRecord{ID: pro, Name: "Pro", Description: "Always open"}); err != nil {
		t.Fatalf("UpdateMembershipType: %v", err)
	}
	got, _ := cs.GetMembershipType(ctx, pro)
	if got.Description != "Always open" || got.UpdatedAt == nil {
		t.Errorf("unexpected membership type: %+v", got)
	}

	for _, mt := range []int64{basic, pro} {
		if created, err := cs.AddMembership(ctx, pid, mt); err != nil || !created {
			t.Fatalf("AddMembership(%d): created=%v err=%v", mt, created, err)
		}
	}
	if created, _ := cs.AddMembership(ctx, pid, basic); created {
		t.Error("repeat membership reported as created")
	}
	if _, err := cs.AddMembership(ctx, pid, 999); !errors.Is(err, store.ErrInvalidReference) {
		t.Errorf("unknown type: expected ErrInvalidReference, got %v", err)
	}

	// Hidden types stay on the person; deleted ones do not.
	if err := cs.ApplyCatalogLifecycle(ctx, store.KindMembershipType, basic, store.ActionHide); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if err := cs.ApplyCatalogLifecycle(ctx, store.KindMembershipType, pro, store.ActionSoftDelete); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	list, err := cs.ListMemberships(ctx, pid)
	if err != nil || len(list) != 1 || list[0].ID != basic {
		t.Fatalf("ListMemberships: %+v, %v", list, err)
	}
	if all, _ := cs.ListMembershipTypes(ctx); len(all) != 0 {
		t.Errorf("hidden and deleted types listed: %+v", all)
	}

	if err := cs.RemoveMembership(ctx, pid, basic); err != nil {
		t.Fatalf("RemoveMembership: %v", err)
	}
	if err := cs.RemoveMembership(ctx, pid, basic); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("remove twice: expected ErrNotFound, got %v", err)
	}
}
