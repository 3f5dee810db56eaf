package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	sqlitestore "github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store/sqlite"
)

func seedZone(t *testing.T, cs *sqlitestore.CatalogStore) int64 {
	t.Helper()
	ctx := context.Background()
	loc, err := cs.CreateLocation(ctx, store.LocationRecord{Name: "Main"})
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	zone, err := cs.CreateZone(ctx, store.ZoneRecord{Name: "Wood Shop", LocationID: loc})
	if err != nil {
		t.Fatalf("CreateZone: %v", err)
	}
	return zone
}

func TestCatalogStore_Equipment(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	cs := sqlitestore.NewCatalogStore(conn, w)
	ctx := context.Background()

	zone := seedZone(t, cs)
	asset := int64(1001)
	id, err := cs.CreateEquipment(ctx, store.EquipmentRecord{
		Name: "Bandsaw", EquipmentType: "machine", Manufacturer: "Laguna", AssetID: &asset,
		Description: "14 inch", RequiresTraining: true, ZoneID: zone,
	})
	if err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}
	if _, err := cs.CreateEquipment(ctx, store.EquipmentRecord{
		Name: "Ghost", EquipmentType: "tool", Description: "d", ZoneID: 999,
	}); !errors.Is(err, store.ErrInvalidReference) {
		t.Errorf("unknown zone: expected ErrInvalidReference, got %v", err)
	}

	got, err := cs.GetEquipment(ctx, id)
	if err != nil {
		t.Fatalf("GetEquipment: %v", err)
	}
	if got.Manufacturer != "Laguna" || !got.RequiresTraining || got.OutOfOrder || got.AssetID == nil || *got.AssetID != asset {
		t.Errorf("unexpected equipment: %+v", got)
	}

	got.OutOfOrder = true
	got.AssetID = nil
	if err := cs.UpdateEquipment(ctx, got); err != nil {
		t.Fatalf("UpdateEquipment: %v", err)
	}
	got, _ = cs.GetEquipment(ctx, id)
	if !got.OutOfOrder || got.AssetID != nil {
		t.Errorf("unexpected equipment after update: %+v", got)
	}

	if err := cs.ApplyCatalogLifecycle(ctx, store.KindZone, zone, store.ActionHardDelete); !errors.Is(err, store.ErrConflict) {
		t.Errorf("hard delete zone with equipment: expected ErrConflict, got %v", err)
	}

	if err := cs.ApplyCatalogLifecycle(ctx, store.KindEquipment, id, store.ActionHide); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if list, _ := cs.ListEquipment(ctx); len(list) != 0 {
		t.Errorf("hidden equipment listed: %+v", list)
	}
}

func TestCatalogStore_AllowedEquipment(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	cs := sqlitestore.NewCatalogStore(conn, w)
	ctx := context.Background()

	pid := seedPerson(t, conn, w, "Mae")
	zone := seedZone(t, cs)
	eq, err := cs.CreateEquipment(ctx, store.EquipmentRecord{Name: "Drill", EquipmentType: "tool", Description: "cordless", ZoneID: zone})
	if err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}

	created, err := cs.AllowEquipment(ctx, pid, eq)
	if err != nil || !created {
		t.Fatalf("AllowEquipment: created=%v err=%v", created, err)
	}
	created, err = cs.AllowEquipment(ctx, pid, eq)
	if err != nil || created {
		t.Errorf("repeat grant: created=%v err=%v", created, err)
	}
	if _, err := cs.AllowEquipment(ctx, pid, 999); !errors.Is(err, store.ErrInvalidReference) {
		t.Errorf("unknown equipment: expected ErrInvalidReference, got %v", err)
	}

	list, err := cs.ListAllowedEquipment(ctx, pid)
	if err != nil || len(list) != 1 || list[0].Name != "Drill" {
		t.Fatalf("ListAllowedEquipment: %+v, %v", list, err)
	}

	if err := cs.RevokeEquipment(ctx, pid, eq); err != nil {
		t.Fatalf("RevokeEquipment: %v", err)
	}
	if err := cs.RevokeEquipment(ctx, pid, eq); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("revoke twice: expected ErrNotFound, got %v", err)
	}

	// Hard-deleting equipment drops its grants.
	if _, err := cs.AllowEquipment(ctx, pid, eq); err != nil {
		t.Fatalf("re-grant: %v", err)
	}
	if err := cs.ApplyCatalogLifecycle(ctx, store.KindEquipment, eq, store.ActionHardDelete); err != nil {
		t.Fatalf("hard delete: %v", err)
	}
	if list, _ := cs.ListAllowedEquipment(ctx, pid); len(list) != 0 {
		t.Errorf("grant survived: %+v", list)
	}
}
