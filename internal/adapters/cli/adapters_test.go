package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/example/fleetdesk/internal/ports/primary"
)

type stubLedger struct {
	vehicles []*primary.Vehicle
}

func (s *stubLedger) RegisterVehicle(ctx context.Context, req primary.RegisterVehicleRequest) (*primary.Vehicle, error) {
	return &primary.Vehicle{ID: "VEH-009", Registration: req.Registration, Available: true}, nil
}

func (s *stubLedger) GetVehicle(ctx context.Context, id string) (*primary.Vehicle, error) {
	return s.vehicles[0], nil
}

func (s *stubLedger) ListVehicles(ctx context.Context, availableOnly bool) ([]*primary.Vehicle, error) {
	return s.vehicles, nil
}

func (s *stubLedger) CountAvailable(ctx context.Context) (int, error) { return 2, nil }

func (s *stubLedger) IsAvailable(ctx context.Context, id string) (bool, error) { return true, nil }

func TestVehicleAdapter(t *testing.T) {
	ledger := &stubLedger{vehicles: []*primary.Vehicle{
		{ID: "VEH-001", Registration: "AB123CD", Make: "Renault", Model: "Master", CapacityKg: 1200, Available: false},
	}}
	var buf bytes.Buffer
	adapter := NewVehicleAdapter(ledger, &buf)
	ctx := context.Background()

	if err := adapter.Register(ctx, primary.RegisterVehicleRequest{Registration: "XY1"}); err != nil {
		t.Fatal(err)
	}
	if err := adapter.List(ctx, false); err != nil {
		t.Fatal(err)
	}
	if err := adapter.Count(ctx); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	for _, want := range []string{"✓ Registered vehicle VEH-009 (XY1)", "Renault Master", "reserved", "2 vehicle(s) available"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

type stubLeaves struct {
	deactivated bool
}

func (s *stubLeaves) RequestLeave(ctx context.Context, req primary.RequestLeaveRequest) (*primary.LeaveRequest, error) {
	return &primary.LeaveRequest{ID: "LEAVE-001", DriverID: req.DriverID, StartsAt: req.StartsAt, EndsAt: req.EndsAt, Status: "PENDING"}, nil
}

func (s *stubLeaves) ApproveLeave(ctx context.Context, id, note string) (*primary.ApproveLeaveResponse, error) {
	return &primary.ApproveLeaveResponse{
		Leave:             &primary.LeaveRequest{ID: id, DriverID: "DRV-001", Status: "APPROVED"},
		DriverDeactivated: s.deactivated,
	}, nil
}

func (s *stubLeaves) RefuseLeave(ctx context.Context, id, reason string) (*primary.LeaveRequest, error) {
	return &primary.LeaveRequest{ID: id, Status: "REFUSED"}, nil
}

func (s *stubLeaves) GetLeaveRequest(ctx context.Context, id string) (*primary.LeaveRequest, error) {
	return &primary.LeaveRequest{ID: id}, nil
}

func (s *stubLeaves) ListLeaveRequests(ctx context.Context, filters primary.LeaveFilters) ([]*primary.LeaveRequest, error) {
	return nil, nil
}

func TestLeaveAdapter(t *testing.T) {
	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		deactivated bool
		want        string
	}{
		{"idle driver", true, "driver DRV-001 is now inactive"},
		{"busy driver", false, "driver DRV-001 stays active until open missions finish"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			adapter := NewLeaveAdapter(&stubLeaves{deactivated: tt.deactivated}, &buf)

			if err := adapter.Request(context.Background(), primary.RequestLeaveRequest{DriverID: "DRV-001", StartsAt: from, EndsAt: from.AddDate(0, 0, 3)}); err != nil {
				t.Fatal(err)
			}
			if err := adapter.Approve(context.Background(), "LEAVE-001", ""); err != nil {
				t.Fatal(err)
			}
			if err := adapter.List(context.Background(), primary.LeaveFilters{}); err != nil {
				t.Fatal(err)
			}

			output := buf.String()
			for _, want := range []string{"(2026-07-01 to 2026-07-04)", tt.want, "No leave requests found"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

type stubNotifications struct{}

func (stubNotifications) ListNotifications(ctx context.Context, f primary.NotificationFilters) ([]*primary.Notification, error) {
	return []*primary.Notification{
		{ID: "n2", Type: "MISSION_ACCEPTED", Message: "Mission to Site B accepted by Sam Diallo"},
		{ID: "n1", Type: "MISSION_CREATED", Message: "created", Read: true},
	}, nil
}

func (stubNotifications) GetUnreadCount(ctx context.Context, kind, id string) (int, error) {
	return 1, nil
}

func (stubNotifications) MarkRead(ctx context.Context, id string) error { return nil }

func (stubNotifications) MarkAllRead(ctx context.Context, kind, id string) (int, error) {
	return 1, nil
}

func TestNotificationAdapter_Inbox(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewNotificationAdapter(stubNotifications{}, &buf)

	err := adapter.Inbox(context.Background(), primary.NotificationFilters{TargetKind: "requester", TargetID: "EMP-001"})

	if err != nil {
		t.Fatal(err)
	}
	output := buf.String()
	if !strings.Contains(output, "requester EMP-001: 1 unread") {
		t.Errorf("missing header:\n%s", output)
	}
	if !strings.Contains(output, "● ") || !strings.Contains(output, "accepted by Sam Diallo") {
		t.Errorf("missing unread row:\n%s", output)
	}
}

var (
	_ primary.LedgerService       = (*stubLedger)(nil)
	_ primary.LeaveService        = (*stubLeaves)(nil)
	_ primary.NotificationService = stubNotifications{}
)

type stubStats struct{}

func (stubStats) GetFleetStats(ctx context.Context) (*primary.FleetStats, error) {
	return &primary.FleetStats{
		MissionsByState:   map[string]int{"PENDING": 2, "ACCEPTED_WAITING": 0, "IN_PROGRESS": 1, "COMPLETED": 4, "REFUSED": 0},
		TotalMissions:     7,
		OpenMissions:      3,
		Drivers:           3,
		ActiveDrivers:     2,
		Employees:         5,
		Vehicles:          4,
		AvailableVehicles: 3,
	}, nil
}

func TestStatsAdapter(t *testing.T) {
	var buf bytes.Buffer

	if err := NewStatsAdapter(stubStats{}, &buf).Show(context.Background()); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	for _, want := range []string{"Missions (7 total, 3 open)", "COMPLETED", "Drivers     3 (2 active)", "Vehicles    4 (3 available)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Index(output, "PENDING") > strings.Index(output, "REFUSED") {
		t.Error("states should print in lifecycle order")
	}
}
