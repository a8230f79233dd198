package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/fleetdesk/internal/ports/primary"
)

// NotificationAdapter translates CLI operations to NotificationService calls.
type NotificationAdapter struct {
	service primary.NotificationService
	out     io.Writer
}

// NewNotificationAdapter creates a new NotificationAdapter.
func NewNotificationAdapter(service primary.NotificationService, out io.Writer) *NotificationAdapter {
	return &NotificationAdapter{service: service, out: out}
}

// Inbox prints an actor's notifications, newest first.
func (a *NotificationAdapter) Inbox(ctx context.Context, filters primary.NotificationFilters) error {
	list, err := a.service.ListNotifications(ctx, filters)
	if err != nil {
		return err
	}
	unread, err := a.service.GetUnreadCount(ctx, filters.TargetKind, filters.TargetID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %s: %d unread\n", filters.TargetKind, filters.TargetID, unread)
	for _, n := range list {
		marker := " "
		if !n.Read {
			marker = color.New(color.FgHiMagenta).Sprint("●")
		}
		fmt.Fprintf(a.out, "%s %s  %-18s %s\n", marker, n.CreatedAt.Local().Format("2006-01-02 15:04"), n.Type, n.Message)
	}
	return nil
}

// MarkRead marks one notification read.
func (a *NotificationAdapter) MarkRead(ctx context.Context, id string) error {
	if err := a.service.MarkRead(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Notification %s marked read\n", id)
	return nil
}

// MarkAllRead marks every notification of an actor read.
func (a *NotificationAdapter) MarkAllRead(ctx context.Context, kind, id string) error {
	n, err := a.service.MarkAllRead(ctx, kind, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %d notification(s) marked read\n", n)
	return nil
}
