package notification

import (
	"testing"
	"time"
)

func TestTargetKindValid(t *testing.T) {
	tests := []struct {
		kind TargetKind
		want bool
	}{
		{TargetDriver, true},
		{TargetRequester, true},
		{TargetDispatcher, true},
		{TargetKind("admin"), false},
		{TargetKind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Valid(); got != tt.want {
				t.Errorf("TargetKind(%q).Valid() = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	until := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"created", MissionCreated("Depot", "Site B", at), "New mission booked: Depot → Site B on 2026-03-14 at 09:30"},
		{"offered", MissionOffered("Depot", "Site B", at), "New mission assigned: Depot → Site B on 2026-03-14 at 09:30"},
		{"accepted", MissionAccepted("Site B", "Sam Diallo"), "Mission to Site B accepted by Sam Diallo"},
		{"updated", MissionUpdated("Depot", "Site C", at), "Mission updated: Depot → Site C on 2026-03-14 at 09:30"},
		{"refused", MissionRefused("Site B", "no licence for trailer"), "Mission to Site B refused. Reason: no licence for trailer"},
		{"problem", MissionProblem("Site B", "Sam Diallo", "flat tire"), "Problem reported on mission to Site B by Sam Diallo: flat tire"},
		{"leave requested no reason", LeaveRequested("Sam Diallo", "DRV-001", at, until, ""), "New leave request from Sam Diallo (DRV-001) from 2026-03-14 to 2026-03-20"},
		{"leave refused", LeaveRefused(at, until, "peak week"), "Your leave request from 2026-03-14 to 2026-03-20 has been refused. Reason: peak week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
