// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"
	"time"
)

// MissionService defines the primary port for the mission lifecycle.
// Every lifecycle operation returns the mission as persisted after the call.
type MissionService interface {
	// CreateMission books a new PENDING mission, reserving its vehicle if one is given.
	CreateMission(ctx context.Context, req CreateMissionRequest) (*CreateMissionResponse, error)

	// AssignDriver records a driver accepting a PENDING mission.
	AssignDriver(ctx context.Context, req AssignDriverRequest) (*Mission, error)

	// StartMission puts an accepted mission on the road.
	StartMission(ctx context.Context, missionID string) (*Mission, error)

	// CompleteMission finishes an in-progress mission and frees its vehicle.
	CompleteMission(ctx context.Context, missionID string) (*Mission, error)

	// RefuseMission refuses a mission that was never accepted.
	RefuseMission(ctx context.Context, req RefuseMissionRequest) (*Mission, error)

	// ReportProblem drops the assigned driver and sends the mission back to PENDING.
	ReportProblem(ctx context.Context, req ReportProblemRequest) (*Mission, error)

	// ReassignMission hands a refused or problem mission to a new driver.
	ReassignMission(ctx context.Context, req ReassignMissionRequest) (*Mission, error)

	// UpdateMissionDetails edits a PENDING mission no driver has accepted yet.
	// A vehicle change goes through the ledger in the same unit of work.
	UpdateMissionDetails(ctx context.Context, req UpdateMissionDetailsRequest) (*Mission, error)

	// DeleteMission removes a COMPLETED or REFUSED mission.
	DeleteMission(ctx context.Context, missionID string) error

	// GetMission retrieves a mission by ID.
	GetMission(ctx context.Context, missionID string) (*Mission, error)

	// ListMissions lists missions with optional filters.
	ListMissions(ctx context.Context, filters MissionFilters) ([]*Mission, error)
}

// CreateMissionRequest contains parameters for creating a mission.
type CreateMissionRequest struct {
	Origin       string
	Destination  string
	ScheduledAt  time.Time
	Type         string
	Instructions string
	RequesterID  string
	DriverID     string // optional pre-assignment
	VehicleID    string // optional
}

// CreateMissionResponse contains the result of creating a mission.
type CreateMissionResponse struct {
	MissionID string
	Mission   *Mission
}

// AssignDriverRequest contains parameters for a driver accepting a mission.
type AssignDriverRequest struct {
	MissionID string
	DriverID  string
}

// RefuseMissionRequest contains parameters for refusing a mission.
type RefuseMissionRequest struct {
	MissionID string
	Reason    string
}

// ReportProblemRequest contains parameters for reporting a problem.
type ReportProblemRequest struct {
	MissionID string
	Reason    string
}

// ReassignMissionRequest contains parameters for reassigning a failed mission.
type ReassignMissionRequest struct {
	MissionID string
	DriverID  string
}

// UpdateMissionDetailsRequest contains the fields to change. Nil fields are
// kept; a non-nil empty VehicleID detaches the vehicle.
type UpdateMissionDetailsRequest struct {
	MissionID    string
	Origin       *string
	Destination  *string
	ScheduledAt  *time.Time
	Type         *string
	Instructions *string
	VehicleID    *string
}

// MissionFilters contains filter options for listing missions.
type MissionFilters struct {
	DriverID    string
	RequesterID string
	State       string
	Limit       int
}

// Mission represents a mission entity at the port boundary.
type Mission struct {
	ID              string    `json:"id"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	Type            string    `json:"type"`
	Instructions    string    `json:"instructions,omitempty"`
	State           string    `json:"state"`
	DriverID        string    `json:"driver_id,omitempty"`
	VehicleID       string    `json:"vehicle_id,omitempty"`
	VehicleReserved bool      `json:"vehicle_reserved"`
	RequesterID     string    `json:"requester_id"`
	ReportedProblem string    `json:"reported_problem,omitempty"`
	WasEverAccepted bool      `json:"was_ever_accepted"`
	CreatedAt       string    `json:"created_at,omitempty"`
	UpdatedAt       string    `json:"updated_at,omitempty"`
}
