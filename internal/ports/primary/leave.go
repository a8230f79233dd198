package primary

import (
	"context"
	"time"
)

// LeaveService handles driver leave requests.
type LeaveService interface {
	// RequestLeave files a request and notifies the on-duty dispatcher.
	RequestLeave(ctx context.Context, req RequestLeaveRequest) (*LeaveRequest, error)

	// ApproveLeave approves a pending request. The driver goes off duty only
	// when no open missions remain.
	ApproveLeave(ctx context.Context, leaveID, note string) (*ApproveLeaveResponse, error)

	// RefuseLeave refuses a pending request with a reason.
	RefuseLeave(ctx context.Context, leaveID, reason string) (*LeaveRequest, error)

	GetLeaveRequest(ctx context.Context, leaveID string) (*LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, filters LeaveFilters) ([]*LeaveRequest, error)
}

// RequestLeaveRequest contains parameters for a leave request.
type RequestLeaveRequest struct {
	DriverID string
	StartsAt time.Time
	EndsAt   time.Time
	Kind     string
	Reason   string
}

// ApproveLeaveResponse contains the result of approving leave.
type ApproveLeaveResponse struct {
	Leave             *LeaveRequest `json:"leave"`
	DriverDeactivated bool          `json:"driver_deactivated"`
}

// LeaveFilters contains filter options for listing leave requests.
type LeaveFilters struct {
	DriverID string
	Status   string
}

// LeaveRequest represents a leave request at the port boundary.
type LeaveRequest struct {
	ID           string    `json:"id"`
	DriverID     string    `json:"driver_id"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	Kind         string    `json:"kind"`
	Reason       string    `json:"reason,omitempty"`
	Status       string    `json:"status"`
	DecisionNote string    `json:"decision_note,omitempty"`
	CreatedAt    string    `json:"created_at,omitempty"`
}
