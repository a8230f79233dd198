// Package mission holds the transport mission state machine: guards, transitions
// and planners. Nothing here performs I/O.
package mission

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/fleetdesk/internal/core/errs"
)

// GuardResult represents the outcome of a guard evaluation.
// NoOp is set when the mission is already where the operation would take it;
// the caller returns success without side effects.
type GuardResult struct {
	Allowed bool
	NoOp    bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return errs.InvalidTransition(r.Reason)
}

func allow() GuardResult { return GuardResult{Allowed: true} }

func noOp() GuardResult { return GuardResult{Allowed: true, NoOp: true} }

func deny(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// Details is the descriptive part of a mission supplied at creation.
type Details struct {
	Origin       string
	Destination  string
	ScheduledAt  time.Time
	Type         Type
	Instructions string
}

// ValidateDetails checks the fields a dispatcher must supply.
func ValidateDetails(d Details) error {
	if strings.TrimSpace(d.Origin) == "" {
		return errs.InvalidInput("origin is required")
	}
	if strings.TrimSpace(d.Destination) == "" {
		return errs.InvalidInput("destination is required")
	}
	if d.ScheduledAt.IsZero() {
		return errs.InvalidInput("scheduled time is required")
	}
	if _, ok := ParseType(string(d.Type)); !ok {
		return errs.InvalidInput(fmt.Sprintf("unknown mission type %q (want MATERIAL, DOCUMENT or PERSONNEL)", d.Type))
	}
	return nil
}

// ValidateReason checks a refusal or problem description.
func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.InvalidInput("reason is required")
	}
	return nil
}

// CreateContext provides context for the mission creation guard.
type CreateContext struct {
	DriverID     string // empty when no driver is pre-assigned
	DriverActive bool
}

// CanCreateMission evaluates whether a mission can be booked.
// Rule: a pre-assigned driver must be active.
func CanCreateMission(ctx CreateContext) GuardResult {
	if ctx.DriverID != "" && !ctx.DriverActive {
		return deny("driver %s is not active and cannot be offered new missions", ctx.DriverID)
	}
	return allow()
}

// AssignContext provides context for the driver acceptance guard.
type AssignContext struct {
	Mission      Snapshot
	DriverID     string
	DriverActive bool
}

// CanAssignDriver evaluates whether driverID can take the mission.
// Rules: mission must be PENDING, never accepted and free of a reported problem;
// the driver must be active. The same driver accepting twice is a no-op.
func CanAssignDriver(ctx AssignContext) GuardResult {
	m := ctx.Mission
	if m.State == StateAcceptedWaiting && m.DriverID == ctx.DriverID {
		return noOp()
	}
	if m.State != StatePending {
		return deny("mission %s is %s; only PENDING missions can be accepted", m.ID, m.State)
	}
	if m.WasEverAccepted {
		return deny("mission %s has already been accepted", m.ID)
	}
	if m.ReportedProblem != "" {
		return deny("mission %s has a reported problem (%s); reassign it instead", m.ID, m.ReportedProblem)
	}
	if !ctx.DriverActive {
		return deny("driver %s is not active and cannot accept missions", ctx.DriverID)
	}
	return allow()
}

// CanStartMission evaluates whether the mission can go on the road.
// Rule: only accepted, not yet started missions. Starting twice is a no-op.
func CanStartMission(m Snapshot) GuardResult {
	if m.State == StateInProgress {
		return noOp()
	}
	if m.State != StateAcceptedWaiting {
		return deny("mission %s is %s; only ACCEPTED_WAITING missions can be started", m.ID, m.State)
	}
	return allow()
}

// CanCompleteMission evaluates whether the mission can be finished.
// Rule: state must be IN_PROGRESS. Completing twice is a no-op.
func CanCompleteMission(m Snapshot) GuardResult {
	if m.State == StateCompleted {
		return noOp()
	}
	if m.State != StateInProgress {
		return deny("mission %s is %s; only IN_PROGRESS missions can be completed", m.ID, m.State)
	}
	return allow()
}

// CanRefuseMission evaluates whether the mission can be refused.
// Rule: the mission must never have been accepted. Refusing twice is a no-op
// and keeps the first reason.
func CanRefuseMission(m Snapshot) GuardResult {
	if m.State == StateRefused {
		return noOp()
	}
	if m.WasEverAccepted {
		return deny("mission %s has already been accepted and can no longer be refused", m.ID)
	}
	if m.State != StatePending {
		return deny("mission %s is %s; only PENDING missions can be refused", m.ID, m.State)
	}
	return allow()
}

// CanReportProblem evaluates whether a problem can be reported on the mission.
// Rule: a driver must currently be assigned and the mission must not be finished.
func CanReportProblem(m Snapshot) GuardResult {
	if m.DriverID == "" {
		return deny("mission %s has no driver assigned", m.ID)
	}
	switch m.State {
	case StatePending, StateAcceptedWaiting, StateInProgress:
		return allow()
	}
	return deny("mission %s is %s; problems can only be reported on open missions", m.ID, m.State)
}

// ReassignContext provides context for the reassignment guard.
type ReassignContext struct {
	Mission      Snapshot
	DriverID     string
	DriverActive bool
}

// CanReassignMission evaluates whether a failed mission can go to a new driver.
// Rule: mission must be REFUSED, or PENDING with a reported problem.
func CanReassignMission(ctx ReassignContext) GuardResult {
	m := ctx.Mission
	failed := m.State == StateRefused || (m.State == StatePending && m.ReportedProblem != "")
	if !failed {
		return deny("mission %s is %s without a reported problem; only refused or problem missions can be reassigned", m.ID, m.State)
	}
	if !ctx.DriverActive {
		return deny("driver %s is not active and cannot be assigned missions", ctx.DriverID)
	}
	return allow()
}

// CanUpdateDetails evaluates whether a mission can still be edited.
// Rule: only PENDING missions that no driver has accepted. State is never edited.
func CanUpdateDetails(m Snapshot) GuardResult {
	if m.State != StatePending || m.WasEverAccepted {
		return deny("mission %s is %s; only PENDING missions not yet accepted can be edited", m.ID, m.State)
	}
	return allow()
}

// CanDeleteMission evaluates whether a mission can be deleted.
// Rule: only COMPLETED or REFUSED missions.
func CanDeleteMission(m Snapshot) GuardResult {
	if !m.State.IsTerminal() {
		return deny("mission %s is %s; only COMPLETED or REFUSED missions can be deleted", m.ID, m.State)
	}
	return allow()
}
