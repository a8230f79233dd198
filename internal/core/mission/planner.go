package mission

import (
	"github.com/example/fleetdesk/internal/core/effects"
	"github.com/example/fleetdesk/internal/core/notification"
)

// Plan is the outcome of a lifecycle operation: the mission as it must be
// persisted plus the effects that go with it.
type Plan struct {
	Mission Snapshot
	Ledger  []effects.LedgerEffect
	Notify  []effects.NotifyEffect
	Audit   effects.LogEffect
}

// Effects returns all effects as a flat slice for execution: ledger first,
// then notifications, then the audit line.
func (p Plan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.Ledger)+len(p.Notify)+1)
	for _, e := range p.Ledger {
		result = append(result, e)
	}
	for _, e := range p.Notify {
		result = append(result, e)
	}
	if p.Audit.Message != "" {
		result = append(result, p.Audit)
	}
	return result
}

// ledgerDiff derives the release/reserve needed to move from before to after.
// A vehicle swap releases the old vehicle before reserving the new one.
func ledgerDiff(before, after Snapshot) []effects.LedgerEffect {
	var out []effects.LedgerEffect
	swapped := before.VehicleID != after.VehicleID
	if before.VehicleReserved && (!after.VehicleReserved || swapped) {
		out = append(out, effects.LedgerEffect{Operation: effects.LedgerRelease, VehicleID: before.VehicleID, MissionID: before.ID})
	}
	if after.VehicleReserved && (!before.VehicleReserved || swapped) {
		out = append(out, effects.LedgerEffect{Operation: effects.LedgerReserve, VehicleID: after.VehicleID, MissionID: after.ID})
	}
	return out
}

// audit builds the operations log line for an applied change.
func audit(event string, before, after Snapshot) effects.LogEffect {
	fields := map[string]any{
		"event":      event,
		"mission_id": after.ID,
		"state":      string(after.State),
	}
	if before.State != "" && before.State != after.State {
		fields["previous_state"] = string(before.State)
	}
	if after.DriverID != "" {
		fields["driver_id"] = after.DriverID
	}
	if after.VehicleID != "" {
		fields["vehicle_id"] = after.VehicleID
		fields["vehicle_reserved"] = after.VehicleReserved
	}
	return effects.LogEffect{Level: "info", Message: "mission " + event, Fields: fields}
}

func notifyRequester(m Snapshot, typ, msg string) effects.NotifyEffect {
	return effects.NotifyEffect{
		TargetKind: string(notification.TargetRequester),
		TargetID:   m.RequesterID,
		Type:       typ,
		Message:    msg,
		MissionID:  m.ID,
	}
}

func notifyDriver(m Snapshot, driverID, typ, msg string) effects.NotifyEffect {
	return effects.NotifyEffect{
		TargetKind: string(notification.TargetDriver),
		TargetID:   driverID,
		Type:       typ,
		Message:    msg,
		MissionID:  m.ID,
	}
}

// PlanCreate plans the booking of a new mission.
// The zero Snapshot stands for "nothing existed yet", so an attached vehicle is reserved.
func PlanCreate(m Snapshot) Plan {
	plan := Plan{
		Mission: m,
		Ledger:  ledgerDiff(Snapshot{}, m),
		Audit:   audit("created", Snapshot{}, m),
	}
	plan.Notify = append(plan.Notify, notifyRequester(m, notification.TypeMissionCreated,
		notification.MissionCreated(m.Origin, m.Destination, m.ScheduledAt)))
	if m.DriverID != "" {
		plan.Notify = append(plan.Notify, notifyDriver(m, m.DriverID, notification.TypeMissionOffered,
			notification.MissionOffered(m.Origin, m.Destination, m.ScheduledAt)))
	}
	return plan
}

// PlanAccept plans a driver taking the mission.
func PlanAccept(m Snapshot, driverID, driverName string) Plan {
	next := ApplyAccept(m, driverID)
	return Plan{
		Mission: next,
		Ledger:  ledgerDiff(m, next),
		Audit:   audit("accepted", m, next),
		Notify: []effects.NotifyEffect{
			notifyRequester(next, notification.TypeMissionAccepted, notification.MissionAccepted(next.Destination, driverName)),
		},
	}
}

// PlanStart plans the mission going on the road.
func PlanStart(m Snapshot, driverName string) Plan {
	next := ApplyStart(m)
	return Plan{
		Mission: next,
		Ledger:  ledgerDiff(m, next),
		Audit:   audit("started", m, next),
		Notify: []effects.NotifyEffect{
			notifyRequester(next, notification.TypeMissionStarted, notification.MissionStarted(next.Destination, driverName)),
		},
	}
}

// PlanComplete plans the end of a mission.
func PlanComplete(m Snapshot, driverName string) Plan {
	next := ApplyComplete(m)
	return Plan{
		Mission: next,
		Ledger:  ledgerDiff(m, next),
		Audit:   audit("completed", m, next),
		Notify: []effects.NotifyEffect{
			notifyRequester(next, notification.TypeMissionCompleted, notification.MissionCompleted(next.Destination, driverName)),
		},
	}
}

// PlanRefuse plans a refusal.
func PlanRefuse(m Snapshot, reason string) Plan {
	next := ApplyRefuse(m, reason)
	return Plan{
		Mission: next,
		Ledger:  ledgerDiff(m, next),
		Audit:   audit("refused", m, next),
		Notify: []effects.NotifyEffect{
			notifyRequester(next, notification.TypeMissionRefused, notification.MissionRefused(next.Destination, reason)),
		},
	}
}

// PlanReportProblem plans a driver dropping the mission because of a problem.
func PlanReportProblem(m Snapshot, reason, driverName string) Plan {
	next := ApplyReportProblem(m, reason)
	return Plan{
		Mission: next,
		Ledger:  ledgerDiff(m, next),
		Audit:   audit("problem_reported", m, next),
		Notify: []effects.NotifyEffect{
			notifyRequester(next, notification.TypeMissionProblem, notification.MissionProblem(next.Destination, driverName, reason)),
		},
	}
}

// PlanReassign plans handing a failed mission to a new driver.
func PlanReassign(m Snapshot, driverID, driverName string) Plan {
	next := ApplyReassign(m, driverID)
	return Plan{
		Mission: next,
		Ledger:  ledgerDiff(m, next),
		Audit:   audit("reassigned", m, next),
		Notify: []effects.NotifyEffect{
			notifyDriver(next, driverID, notification.TypeMissionOffered,
				notification.MissionOffered(next.Origin, next.Destination, next.ScheduledAt)),
			notifyRequester(next, notification.TypeMissionReassigned, notification.MissionReassigned(next.Destination, driverName)),
		},
	}
}

// PlanUpdateDetails plans an edit of a mission that has not been accepted yet.
// An empty vehicleID detaches the vehicle.
func PlanUpdateDetails(m Snapshot, d Details, vehicleID string) Plan {
	next := ApplyUpdateDetails(m, d, vehicleID)
	plan := Plan{
		Mission: next,
		Ledger:  ledgerDiff(m, next),
		Audit:   audit("updated", m, next),
	}
	msg := notification.MissionUpdated(next.Origin, next.Destination, next.ScheduledAt)
	plan.Notify = append(plan.Notify, notifyRequester(next, notification.TypeMissionUpdated, msg))
	if next.DriverID != "" {
		plan.Notify = append(plan.Notify, notifyDriver(next, next.DriverID, notification.TypeMissionUpdated, msg))
	}
	return plan
}

// PlanDelete plans the removal of a finished mission. Only the audit line remains.
func PlanDelete(m Snapshot) Plan {
	return Plan{Mission: m, Audit: audit("deleted", m, m)}
}
