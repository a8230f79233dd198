// Package notification contains the pure rules for notification records:
// target kinds, type tags and the wording of each message.
package notification

import (
	"fmt"
	"time"
)

// TargetKind identifies which directory an actor reference points into.
type TargetKind string

const (
	TargetDriver     TargetKind = "driver"
	TargetRequester  TargetKind = "requester"
	TargetDispatcher TargetKind = "dispatcher"
)

// Valid reports whether k is a known target kind.
func (k TargetKind) Valid() bool {
	switch k {
	case TargetDriver, TargetRequester, TargetDispatcher:
		return true
	}
	return false
}

// Type tags.
const (
	TypeMissionCreated    = "MISSION_CREATED"
	TypeMissionOffered    = "MISSION_OFFERED"
	TypeMissionAccepted   = "MISSION_ACCEPTED"
	TypeMissionStarted    = "MISSION_STARTED"
	TypeMissionCompleted  = "MISSION_COMPLETED"
	TypeMissionRefused    = "MISSION_REFUSED"
	TypeMissionProblem    = "MISSION_PROBLEM"
	TypeMissionReassigned = "MISSION_REASSIGNED"
	TypeMissionUpdated    = "MISSION_UPDATED"
	TypeLeaveRequested    = "LEAVE_REQUESTED"
	TypeLeaveApproved     = "LEAVE_APPROVED"
	TypeLeaveRefused      = "LEAVE_REFUSED"
)

const dateLayout = "2006-01-02"

// MissionCreated is sent to the requester when a dispatcher books a mission.
func MissionCreated(origin, destination string, at time.Time) string {
	return fmt.Sprintf("New mission booked: %s → %s on %s at %s",
		origin, destination, at.Format(dateLayout), at.Format("15:04"))
}

// MissionOffered is sent to a driver who has been put on a mission.
func MissionOffered(origin, destination string, at time.Time) string {
	return fmt.Sprintf("New mission assigned: %s → %s on %s at %s",
		origin, destination, at.Format(dateLayout), at.Format("15:04"))
}

func MissionAccepted(destination, driverName string) string {
	return fmt.Sprintf("Mission to %s accepted by %s", destination, driverName)
}

func MissionStarted(destination, driverName string) string {
	return fmt.Sprintf("Mission to %s started by %s", destination, driverName)
}

func MissionCompleted(destination, driverName string) string {
	return fmt.Sprintf("Mission to %s completed by %s", destination, driverName)
}

func MissionRefused(destination, reason string) string {
	return fmt.Sprintf("Mission to %s refused. Reason: %s", destination, reason)
}

func MissionProblem(destination, driverName, problem string) string {
	return fmt.Sprintf("Problem reported on mission to %s by %s: %s", destination, driverName, problem)
}

func MissionReassigned(destination, driverName string) string {
	return fmt.Sprintf("Mission to %s reassigned to %s", destination, driverName)
}

// MissionUpdated is sent when a dispatcher edits a mission before acceptance.
func MissionUpdated(origin, destination string, at time.Time) string {
	return fmt.Sprintf("Mission updated: %s → %s on %s at %s",
		origin, destination, at.Format(dateLayout), at.Format("15:04"))
}

// LeaveRequested is sent to the configured dispatcher.
func LeaveRequested(driverName, driverID string, from, to time.Time, reason string) string {
	msg := fmt.Sprintf("New leave request from %s (%s) from %s to %s",
		driverName, driverID, from.Format(dateLayout), to.Format(dateLayout))
	if reason != "" {
		msg += ". Reason: " + reason
	}
	return msg
}

func LeaveApproved(from, to time.Time) string {
	return fmt.Sprintf("Your leave request from %s to %s has been approved",
		from.Format(dateLayout), to.Format(dateLayout))
}

func LeaveRefused(from, to time.Time, reason string) string {
	msg := fmt.Sprintf("Your leave request from %s to %s has been refused",
		from.Format(dateLayout), to.Format(dateLayout))
	if reason != "" {
		msg += ". Reason: " + reason
	}
	return msg
}
