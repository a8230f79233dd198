package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/fleetdesk/internal/ports/primary"
)

func leaveStatus(status string) string {
	switch status {
	case "PENDING":
		return color.New(color.FgYellow).Sprint(status)
	case "APPROVED":
		return color.New(color.FgGreen).Sprint(status)
	case "REFUSED":
		return color.New(color.FgRed).Sprint(status)
	}
	return status
}

// LeaveAdapter translates CLI operations to LeaveService calls.
type LeaveAdapter struct {
	service primary.LeaveService
	out     io.Writer
}

// NewLeaveAdapter creates a new LeaveAdapter.
func NewLeaveAdapter(service primary.LeaveService, out io.Writer) *LeaveAdapter {
	return &LeaveAdapter{service: service, out: out}
}

// Request files a leave request.
func (a *LeaveAdapter) Request(ctx context.Context, req primary.RequestLeaveRequest) error {
	l, err := a.service.RequestLeave(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Leave request %s filed for %s (%s to %s)\n",
		l.ID, l.DriverID, l.StartsAt.Format("2006-01-02"), l.EndsAt.Format("2006-01-02"))
	return nil
}

// Approve approves a pending request.
func (a *LeaveAdapter) Approve(ctx context.Context, leaveID, note string) error {
	resp, err := a.service.ApproveLeave(ctx, leaveID, note)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Leave request %s approved\n", resp.Leave.ID)
	if resp.DriverDeactivated {
		fmt.Fprintf(a.out, "  driver %s is now inactive\n", resp.Leave.DriverID)
	} else {
		fmt.Fprintf(a.out, "  driver %s stays active until open missions finish\n", resp.Leave.DriverID)
	}
	return nil
}

// Refuse refuses a pending request.
func (a *LeaveAdapter) Refuse(ctx context.Context, leaveID, reason string) error {
	l, err := a.service.RefuseLeave(ctx, leaveID, reason)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Leave request %s refused\n", l.ID)
	return nil
}

// List lists leave requests.
func (a *LeaveAdapter) List(ctx context.Context, filters primary.LeaveFilters) error {
	leaves, err := a.service.ListLeaveRequests(ctx, filters)
	if err != nil {
		return err
	}
	if len(leaves) == 0 {
		fmt.Fprintln(a.out, "No leave requests found")
		return nil
	}
	fmt.Fprintf(a.out, "\n%-11s %-9s %-10s %-23s %s\n", "ID", "DRIVER", "KIND", "PERIOD", "STATUS")
	fmt.Fprintln(a.out, rule)
	for _, l := range leaves {
		fmt.Fprintf(a.out, "%-11s %-9s %-10s %s → %s %s\n", l.ID, l.DriverID, l.Kind,
			l.StartsAt.Format("2006-01-02"), l.EndsAt.Format("2006-01-02"), leaveStatus(l.Status))
	}
	fmt.Fprintln(a.out)
	return nil
}
