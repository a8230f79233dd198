// Package leave contains the pure business logic for driver leave requests.
package leave

import (
	"fmt"
	"time"

	"github.com/example/fleetdesk/internal/core/errs"
)

// Status of a leave request.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRefused  Status = "REFUSED"
)

// Kind of leave.
type Kind string

const (
	KindAnnual    Kind = "ANNUAL"
	KindSick      Kind = "SICK"
	KindPersonal  Kind = "PERSONAL"
	KindEmergency Kind = "EMERGENCY"
	KindOther     Kind = "OTHER"
)

// ParseKind converts a string into a leave Kind.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindAnnual, KindSick, KindPersonal, KindEmergency, KindOther:
		return k, true
	}
	return "", false
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return errs.InvalidTransition(r.Reason)
}

// ValidateRequest checks the period and kind of a new request.
func ValidateRequest(kind Kind, from, to time.Time) error {
	if _, ok := ParseKind(string(kind)); !ok {
		return errs.InvalidInput(fmt.Sprintf("unknown leave kind %q", kind))
	}
	if from.IsZero() || to.IsZero() {
		return errs.InvalidInput("leave start and end dates are required")
	}
	if to.Before(from) {
		return errs.InvalidInput("leave end date is before its start date")
	}
	return nil
}

// CanDecide evaluates whether a request can be approved or refused.
// Rule: only PENDING requests are decided, and only once.
func CanDecide(id string, status Status) GuardResult {
	if status != StatusPending {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("leave request %s is already %s", id, status),
		}
	}
	return GuardResult{Allowed: true}
}

// ShouldDeactivateDriver decides whether approving leave takes the driver off duty.
// A driver with open missions stays active so those missions can still finish.
func ShouldDeactivateDriver(openMissions int) bool {
	return openMissions == 0
}

// GenerateLeaveID generates a leave request ID from the current max number.
func GenerateLeaveID(currentMax int) string {
	return fmt.Sprintf("LEAVE-%03d", currentMax+1)
}
