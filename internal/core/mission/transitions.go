package mission

import (
	"fmt"
	"time"
)

// State is the single canonical lifecycle state of a mission.
type State string

const (
	StatePending         State = "PENDING"
	StateAcceptedWaiting State = "ACCEPTED_WAITING"
	StateInProgress      State = "IN_PROGRESS"
	StateCompleted       State = "COMPLETED"
	StateRefused         State = "REFUSED"
)

// AllStates lists every lifecycle state in flow order.
func AllStates() []State {
	return []State{StatePending, StateAcceptedWaiting, StateInProgress, StateCompleted, StateRefused}
}

// ParseState converts a stored or user-supplied string into a State.
func ParseState(s string) (State, bool) {
	switch st := State(s); st {
	case StatePending, StateAcceptedWaiting, StateInProgress, StateCompleted, StateRefused:
		return st, true
	}
	return "", false
}

// IsTerminal reports whether the state can only be left by deletion or reassignment.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateRefused
}

// Type is the kind of transport a mission performs.
type Type string

const (
	TypeMaterial  Type = "MATERIAL"
	TypeDocument  Type = "DOCUMENT"
	TypePersonnel Type = "PERSONNEL"
)

// ParseType converts a string into a mission Type.
func ParseType(s string) (Type, bool) {
	switch t := Type(s); t {
	case TypeMaterial, TypeDocument, TypePersonnel:
		return t, true
	}
	return "", false
}

// Snapshot is the core's view of a mission.
// VehicleReserved is true while the mission holds its vehicle in the ledger.
type Snapshot struct {
	ID              string
	Origin          string
	Destination     string
	ScheduledAt     time.Time
	Type            Type
	Instructions    string
	State           State
	DriverID        string
	VehicleID       string
	VehicleReserved bool
	RequesterID     string
	ReportedProblem string
	WasEverAccepted bool
}

// InitialState returns the state every new mission starts in.
func InitialState() State {
	return StatePending
}

// NewSnapshot builds a freshly created mission.
// An attached vehicle is reserved at creation.
func NewSnapshot(id string, d Details, requesterID, driverID, vehicleID string) Snapshot {
	return Snapshot{
		ID:              id,
		Origin:          d.Origin,
		Destination:     d.Destination,
		ScheduledAt:     d.ScheduledAt,
		Type:            d.Type,
		Instructions:    d.Instructions,
		State:           InitialState(),
		DriverID:        driverID,
		VehicleID:       vehicleID,
		VehicleReserved: vehicleID != "",
		RequesterID:     requesterID,
	}
}

// ApplyAccept engages driverID on the mission.
func ApplyAccept(m Snapshot, driverID string) Snapshot {
	m.DriverID = driverID
	m.State = StateAcceptedWaiting
	m.WasEverAccepted = true
	return m
}

// ApplyStart puts the mission on the road. An attached vehicle that is not
// already held gets reserved.
func ApplyStart(m Snapshot) Snapshot {
	m.State = StateInProgress
	if m.VehicleID != "" {
		m.VehicleReserved = true
	}
	return m
}

// ApplyComplete finishes the mission and frees its vehicle.
func ApplyComplete(m Snapshot) Snapshot {
	m.State = StateCompleted
	m.VehicleReserved = false
	return m
}

// ApplyRefuse marks the mission refused with reason.
func ApplyRefuse(m Snapshot, reason string) Snapshot {
	m.State = StateRefused
	m.ReportedProblem = reason
	m.VehicleReserved = false
	return m
}

// ApplyReportProblem sends the mission back to PENDING without a driver.
func ApplyReportProblem(m Snapshot, reason string) Snapshot {
	m.State = StatePending
	m.ReportedProblem = reason
	m.DriverID = ""
	m.WasEverAccepted = false
	m.VehicleReserved = false
	return m
}

// ApplyReassign hands a failed mission to a new driver and clears the failure markers.
// The vehicle is not re-reserved here; starting the mission does that.
func ApplyReassign(m Snapshot, driverID string) Snapshot {
	m.State = StatePending
	m.DriverID = driverID
	m.ReportedProblem = ""
	m.WasEverAccepted = false
	return m
}

// ApplyUpdateDetails replaces the descriptive fields and the attached vehicle.
// A replacement vehicle is held when the old one was held, or when the mission
// had none, as at creation.
func ApplyUpdateDetails(m Snapshot, d Details, vehicleID string) Snapshot {
	m.Origin = d.Origin
	m.Destination = d.Destination
	m.ScheduledAt = d.ScheduledAt
	m.Type = d.Type
	m.Instructions = d.Instructions
	if vehicleID != m.VehicleID {
		held := m.VehicleReserved || m.VehicleID == ""
		m.VehicleID = vehicleID
		m.VehicleReserved = vehicleID != "" && held
	}
	return m
}

// CheckConsistency verifies the marker invariants of a snapshot.
// A violation means a bug in a transition or a hand-edited row.
func CheckConsistency(m Snapshot) error {
	accepted := m.State == StateAcceptedWaiting || m.State == StateInProgress || m.State == StateCompleted
	if m.WasEverAccepted != accepted {
		return fmt.Errorf("mission %s: accepted marker %v does not match state %s", m.ID, m.WasEverAccepted, m.State)
	}
	if accepted && m.DriverID == "" {
		return fmt.Errorf("mission %s: state %s requires a driver", m.ID, m.State)
	}
	if m.VehicleReserved && m.VehicleID == "" {
		return fmt.Errorf("mission %s: reserved marker set without a vehicle", m.ID)
	}
	if m.VehicleReserved && m.State.IsTerminal() {
		return fmt.Errorf("mission %s: %s mission still holds vehicle %s", m.ID, m.State, m.VehicleID)
	}
	if m.State == StateRefused && m.ReportedProblem == "" {
		return fmt.Errorf("mission %s: refused without a reason", m.ID)
	}
	if m.RequesterID == "" {
		return fmt.Errorf("mission %s: no requester", m.ID)
	}
	return nil
}
