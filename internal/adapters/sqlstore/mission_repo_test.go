package sqlstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/fleetdesk/internal/core/errs"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

func newMissionRecord(id string) *secondary.MissionRecord {
	return &secondary.MissionRecord{
		ID:          id,
		Origin:      "Depot North",
		Destination: "Site B",
		ScheduledAt: testScheduled,
		Type:        "MATERIAL",
		State:       "PENDING",
		RequesterID: "EMP-001",
	}
}

func TestMissionRepository_CreateAndGet(t *testing.T) {
	store, _ := setupStore(t)
	repo := store.Missions()
	ctx := context.Background()

	m := newMissionRecord("MISSION-001")
	m.VehicleID = "VEH-001"
	m.VehicleReserved = true
	m.Instructions = "Loading dock 3"

	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.CreatedAt == "" {
		t.Error("expected CreatedAt to be set")
	}

	got, err := repo.GetByID(ctx, "MISSION-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Destination != "Site B" {
		t.Errorf("Destination = %q, want %q", got.Destination, "Site B")
	}
	if !got.ScheduledAt.Equal(testScheduled) {
		t.Errorf("ScheduledAt = %v, want %v", got.ScheduledAt, testScheduled)
	}
	if got.VehicleID != "VEH-001" || !got.VehicleReserved {
		t.Errorf("vehicle = %q reserved=%v", got.VehicleID, got.VehicleReserved)
	}
	if got.DriverID != "" {
		t.Errorf("DriverID = %q, want empty", got.DriverID)
	}
	if got.Instructions != "Loading dock 3" {
		t.Errorf("Instructions = %q", got.Instructions)
	}
}

func TestMissionRepository_GetByID_NotFound(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Missions().GetByID(context.Background(), "MISSION-999")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestMissionRepository_CreateRejectsUnknownRequester(t *testing.T) {
	store, _ := setupStore(t)
	m := newMissionRecord("MISSION-001")
	m.RequesterID = "EMP-404"

	err := store.Missions().Create(context.Background(), m)
	if errs.CodeOf(err) != errs.CodeInvalidInput {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestMissionRepository_Update(t *testing.T) {
	store, _ := setupStore(t)
	repo := store.Missions()
	ctx := context.Background()

	m := newMissionRecord("MISSION-001")
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m.State = "ACCEPTED_WAITING"
	m.DriverID = "DRV-001"
	m.WasEverAccepted = true
	if err := repo.Update(ctx, m); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, _ := repo.GetForUpdate(ctx, "MISSION-001")
	if got.State != "ACCEPTED_WAITING" || got.DriverID != "DRV-001" || !got.WasEverAccepted {
		t.Errorf("got %+v", got)
	}

	// Clearing the driver writes NULL.
	m.State = "PENDING"
	m.DriverID = ""
	m.WasEverAccepted = false
	m.ReportedProblem = "flat tire"
	if err := repo.Update(ctx, m); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, "MISSION-001")
	if got.DriverID != "" || got.ReportedProblem != "flat tire" {
		t.Errorf("got %+v", got)
	}
}

func TestMissionRepository_UpdateMissing(t *testing.T) {
	store, _ := setupStore(t)

	err := store.Missions().Update(context.Background(), newMissionRecord("MISSION-404"))
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestMissionRepository_ListAndCount(t *testing.T) {
	store, _ := setupStore(t)
	repo := store.Missions()
	ctx := context.Background()

	for _, tc := range []struct{ id, state, driver string }{
		{"MISSION-001", "PENDING", ""},
		{"MISSION-002", "ACCEPTED_WAITING", "DRV-001"},
		{"MISSION-003", "COMPLETED", "DRV-001"},
		{"MISSION-004", "IN_PROGRESS", "DRV-001"},
	} {
		m := newMissionRecord(tc.id)
		m.State = tc.state
		m.DriverID = tc.driver
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create %s failed: %v", tc.id, err)
		}
	}

	all, err := repo.List(ctx, secondary.MissionFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	if all[0].ID != "MISSION-004" {
		t.Errorf("first = %s, want newest MISSION-004", all[0].ID)
	}

	byDriver, _ := repo.List(ctx, secondary.MissionFilters{DriverID: "DRV-001", State: "COMPLETED"})
	if len(byDriver) != 1 || byDriver[0].ID != "MISSION-003" {
		t.Errorf("byDriver = %+v", byDriver)
	}

	limited, _ := repo.List(ctx, secondary.MissionFilters{Limit: 2})
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}

	open, err := repo.CountOpenForDriver(ctx, "DRV-001")
	if err != nil {
		t.Fatalf("CountOpenForDriver failed: %v", err)
	}
	if open != 2 {
		t.Errorf("open = %d, want 2", open)
	}
}

func TestMissionRepository_GetNextIDAndDelete(t *testing.T) {
	store, _ := setupStore(t)
	repo := store.Missions()
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "MISSION-001" {
		t.Errorf("id = %s, want MISSION-001", id)
	}

	_ = repo.Create(ctx, newMissionRecord("MISSION-009"))
	id, _ = repo.GetNextID(ctx)
	if id != "MISSION-010" {
		t.Errorf("id = %s, want MISSION-010", id)
	}

	if err := repo.Delete(ctx, "MISSION-009"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, "MISSION-009"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("second Delete err = %v, want NOT_FOUND", err)
	}
}

func TestMissionRepository_DuplicateIDIsInternal(t *testing.T) {
	store, _ := setupStore(t)
	repo := store.Missions()
	ctx := context.Background()

	if err := repo.Create(ctx, newMissionRecord("MISSION-001")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err := repo.Create(ctx, newMissionRecord("MISSION-001"))
	if err == nil {
		t.Fatal("expected duplicate ID to fail")
	}
	if code := errs.CodeOf(err); code != errs.CodeInternal {
		t.Errorf("duplicate ID code = %s, want INTERNAL (RESOURCE_CONFLICT is for vehicles)", code)
	}
}
