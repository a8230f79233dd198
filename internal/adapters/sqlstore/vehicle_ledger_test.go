package sqlstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/example/fleetdesk/internal/core/errs"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

func TestVehicleLedger_ReserveRelease(t *testing.T) {
	store, _ := setupStore(t)
	ledger := store.Ledger()
	ctx := context.Background()

	if err := ledger.Reserve(ctx, "VEH-001"); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	available, _ := ledger.IsAvailable(ctx, "VEH-001")
	if available {
		t.Error("expected VEH-001 unavailable after reserve")
	}

	err := ledger.Reserve(ctx, "VEH-001")
	if !errors.Is(err, errs.ErrResourceConflict) {
		t.Fatalf("second Reserve err = %v, want RESOURCE_CONFLICT", err)
	}

	if err := ledger.Release(ctx, "VEH-001"); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if err := ledger.Release(ctx, "VEH-001"); err != nil {
		t.Fatalf("Release of a free vehicle should be a no-op: %v", err)
	}
	available, _ = ledger.IsAvailable(ctx, "VEH-001")
	if !available {
		t.Error("expected VEH-001 available after release")
	}
}

func TestVehicleLedger_UnknownVehicle(t *testing.T) {
	store, _ := setupStore(t)
	ledger := store.Ledger()
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"reserve", func() error { return ledger.Reserve(ctx, "VEH-404") }},
		{"release", func() error { return ledger.Release(ctx, "VEH-404") }},
		{"is available", func() error { _, err := ledger.IsAvailable(ctx, "VEH-404"); return err }},
		{"get", func() error { _, err := ledger.GetVehicle(ctx, "VEH-404"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, errs.ErrNotFound) {
				t.Errorf("err = %v, want NOT_FOUND", err)
			}
		})
	}
}

func TestVehicleLedger_ConcurrentReserveExactlyOneWins(t *testing.T) {
	store, _ := setupStore(t)
	ledger := store.Ledger()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ledger.Reserve(ctx, "VEH-002")
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
		} else if !errors.Is(err, errs.ErrResourceConflict) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("wins = %d, want 1", wins)
	}
}

func TestVehicleLedger_RegisterListCount(t *testing.T) {
	store, _ := setupStore(t)
	ledger := store.Ledger()
	ctx := context.Background()

	id, err := ledger.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "VEH-003" {
		t.Errorf("id = %s, want VEH-003", id)
	}

	v := &secondary.VehicleRecord{ID: id, Registration: "IJ789KL", Make: "Ford", Model: "Transit", CapacityKg: 1200}
	if err := ledger.Register(ctx, v); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !v.Available {
		t.Error("new vehicles start available")
	}

	dup := &secondary.VehicleRecord{ID: "VEH-004", Registration: "IJ789KL", CapacityKg: 100}
	if err := ledger.Register(ctx, dup); errs.CodeOf(err) != errs.CodeResourceConflict {
		t.Errorf("duplicate registration err = %v, want RESOURCE_CONFLICT", err)
	}

	_ = ledger.Reserve(ctx, "VEH-001")

	all, _ := ledger.ListVehicles(ctx, false)
	if len(all) != 3 {
		t.Errorf("all = %d, want 3", len(all))
	}
	free, _ := ledger.ListVehicles(ctx, true)
	if len(free) != 2 {
		t.Errorf("free = %d, want 2", len(free))
	}
	count, _ := ledger.CountAvailable(ctx)
	if count != 2 {
		t.Errorf("CountAvailable = %d, want 2", count)
	}

	got, _ := ledger.GetVehicle(ctx, "VEH-003")
	if got.Make != "Ford" || got.CapacityKg != 1200 {
		t.Errorf("got %+v", got)
	}
}

func TestListsAreEmptyNotNil(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	for _, id := range []string{"VEH-001", "VEH-002"} {
		if err := store.Ledger().Reserve(ctx, id); err != nil {
			t.Fatalf("Reserve(%s) failed: %v", id, err)
		}
	}
	vehicles, err := store.Ledger().ListVehicles(ctx, true)
	if err != nil || vehicles == nil || len(vehicles) != 0 {
		t.Errorf("ListVehicles(available) = %v, %v; want empty non-nil", vehicles, err)
	}

	dispatchers, err := store.Directory().ListDispatchers(ctx)
	if err != nil || dispatchers == nil {
		t.Errorf("ListDispatchers = %v, %v; want empty non-nil", dispatchers, err)
	}
	leaves, err := store.Leaves().List(ctx, secondary.LeaveFilters{})
	if err != nil || leaves == nil {
		t.Errorf("Leaves.List = %v, %v; want empty non-nil", leaves, err)
	}
	missions, err := store.Missions().List(ctx, secondary.MissionFilters{})
	if err != nil || missions == nil {
		t.Errorf("Missions.List = %v, %v; want empty non-nil", missions, err)
	}
	notifications, err := store.Notifications().List(ctx, secondary.NotificationFilters{TargetKind: "driver", TargetID: "DRV-001"})
	if err != nil || notifications == nil {
		t.Errorf("Notifications.List = %v, %v; want empty non-nil", notifications, err)
	}
}
