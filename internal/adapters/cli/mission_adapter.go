// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting and delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/example/fleetdesk/internal/ports/primary"
)

const rule = "────────────────────────────────────────────────────────────────────────────"

// stateColor renders a mission state in its status colour.
func stateColor(state string) string {
	var c *color.Color
	switch state {
	case "PENDING":
		c = color.New(color.FgYellow)
	case "ACCEPTED_WAITING":
		c = color.New(color.FgCyan)
	case "IN_PROGRESS":
		c = color.New(color.FgBlue)
	case "COMPLETED":
		c = color.New(color.FgGreen)
	case "REFUSED":
		c = color.New(color.FgRed)
	default:
		return state
	}
	return c.Sprint(state)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// MissionAdapter translates CLI operations to MissionService calls.
type MissionAdapter struct {
	service primary.MissionService
	out     io.Writer
}

// NewMissionAdapter creates a new MissionAdapter with the given service.
func NewMissionAdapter(service primary.MissionService, out io.Writer) *MissionAdapter {
	return &MissionAdapter{
		service: service,
		out:     out,
	}
}

// Create books a new mission.
func (a *MissionAdapter) Create(ctx context.Context, req primary.CreateMissionRequest) error {
	resp, err := a.service.CreateMission(ctx, req)
	if err != nil {
		return err
	}

	m := resp.Mission
	fmt.Fprintf(a.out, "✓ Created mission %s: %s → %s [%s]\n", resp.MissionID, m.Origin, m.Destination, stateColor(m.State))
	if m.VehicleReserved {
		fmt.Fprintf(a.out, "  vehicle %s reserved\n", m.VehicleID)
	}
	return nil
}

// List lists missions matching filters.
func (a *MissionAdapter) List(ctx context.Context, filters primary.MissionFilters) error {
	missions, err := a.service.ListMissions(ctx, filters)
	if err != nil {
		return err
	}

	if len(missions) == 0 {
		fmt.Fprintln(a.out, "No missions found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-13s %-18s %-9s %-9s %-17s %s\n", "ID", "STATE", "DRIVER", "VEHICLE", "SCHEDULED", "ROUTE")
	fmt.Fprintln(a.out, rule)
	for _, m := range missions {
		// pad before colouring so escape codes do not break alignment
		state := fmt.Sprintf("%-18s", m.State)
		fmt.Fprintf(a.out, "%-13s %s %-9s %-9s %-17s %s → %s\n",
			m.ID, stateColor(m.State)+state[len(m.State):], orDash(m.DriverID), orDash(m.VehicleID),
			m.ScheduledAt.Format("2006-01-02 15:04"), m.Origin, m.Destination)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single mission.
func (a *MissionAdapter) Show(ctx context.Context, missionID string) (*primary.Mission, error) {
	m, err := a.service.GetMission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nMission:   %s\n", m.ID)
	fmt.Fprintf(a.out, "State:     %s\n", stateColor(m.State))
	fmt.Fprintf(a.out, "Type:      %s\n", m.Type)
	fmt.Fprintf(a.out, "Route:     %s → %s\n", m.Origin, m.Destination)
	fmt.Fprintf(a.out, "Scheduled: %s\n", m.ScheduledAt.Format(time.RFC3339))
	fmt.Fprintf(a.out, "Requester: %s\n", m.RequesterID)
	fmt.Fprintf(a.out, "Driver:    %s\n", orDash(m.DriverID))
	vehicle := orDash(m.VehicleID)
	if m.VehicleReserved {
		vehicle += " (reserved)"
	}
	fmt.Fprintf(a.out, "Vehicle:   %s\n", vehicle)
	if m.Instructions != "" {
		fmt.Fprintf(a.out, "Notes:     %s\n", m.Instructions)
	}
	if m.ReportedProblem != "" {
		fmt.Fprintf(a.out, "Problem:   %s\n", color.New(color.FgRed).Sprint(m.ReportedProblem))
	}
	fmt.Fprintln(a.out)

	return m, nil
}

// Update edits a pending mission's details.
func (a *MissionAdapter) Update(ctx context.Context, req primary.UpdateMissionDetailsRequest) error {
	m, err := a.service.UpdateMissionDetails(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Updated mission %s: %s → %s at %s [%s]\n",
		m.ID, m.Origin, m.Destination, m.ScheduledAt.Format(time.RFC3339), stateColor(m.State))
	switch {
	case m.VehicleID == "":
		fmt.Fprintln(a.out, "  no vehicle attached")
	case m.VehicleReserved:
		fmt.Fprintf(a.out, "  vehicle %s reserved\n", m.VehicleID)
	}
	return nil
}

// Accept has a driver take the mission.
func (a *MissionAdapter) Accept(ctx context.Context, missionID, driverID string) error {
	m, err := a.service.AssignDriver(ctx, primary.AssignDriverRequest{MissionID: missionID, DriverID: driverID})
	if err != nil {
		return err
	}
	a.transitioned(m, "accepted by "+m.DriverID)
	return nil
}

// Start puts the mission on the road.
func (a *MissionAdapter) Start(ctx context.Context, missionID string) error {
	m, err := a.service.StartMission(ctx, missionID)
	if err != nil {
		return err
	}
	a.transitioned(m, "started")
	return nil
}

// Complete finishes the mission.
func (a *MissionAdapter) Complete(ctx context.Context, missionID string) error {
	m, err := a.service.CompleteMission(ctx, missionID)
	if err != nil {
		return err
	}
	a.transitioned(m, "completed")
	return nil
}

// Refuse refuses the mission with a reason.
func (a *MissionAdapter) Refuse(ctx context.Context, missionID, reason string) error {
	m, err := a.service.RefuseMission(ctx, primary.RefuseMissionRequest{MissionID: missionID, Reason: reason})
	if err != nil {
		return err
	}
	a.transitioned(m, "refused")
	return nil
}

// Problem reports a problem on an accepted mission.
func (a *MissionAdapter) Problem(ctx context.Context, missionID, reason string) error {
	m, err := a.service.ReportProblem(ctx, primary.ReportProblemRequest{MissionID: missionID, Reason: reason})
	if err != nil {
		return err
	}
	a.transitioned(m, "flagged with a problem")
	return nil
}

// Reassign hands a failed mission to another driver.
func (a *MissionAdapter) Reassign(ctx context.Context, missionID, driverID string) error {
	m, err := a.service.ReassignMission(ctx, primary.ReassignMissionRequest{MissionID: missionID, DriverID: driverID})
	if err != nil {
		return err
	}
	a.transitioned(m, "reassigned to "+m.DriverID)
	return nil
}

// Delete removes a mission.
func (a *MissionAdapter) Delete(ctx context.Context, missionID string) error {
	if err := a.service.DeleteMission(ctx, missionID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted mission %s\n", missionID)
	return nil
}

func (a *MissionAdapter) transitioned(m *primary.Mission, what string) {
	fmt.Fprintf(a.out, "✓ Mission %s %s [%s]\n", m.ID, what, stateColor(m.State))
}
