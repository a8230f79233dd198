package primary

import (
	"context"
	"time"
)

// NotificationService defines the primary port for reading notifications.
// Notifications are written by the mission and leave services, never by callers.
type NotificationService interface {
	// ListNotifications lists notifications for one actor, newest first.
	ListNotifications(ctx context.Context, filters NotificationFilters) ([]*Notification, error)

	// GetUnreadCount returns the count of unread notifications for an actor.
	GetUnreadCount(ctx context.Context, targetKind, targetID string) (int, error)

	// MarkRead marks a notification as read.
	MarkRead(ctx context.Context, notificationID string) error

	// MarkAllRead marks every notification of an actor as read and returns how many changed.
	MarkAllRead(ctx context.Context, targetKind, targetID string) (int, error)
}

// NotificationFilters contains filter options for listing notifications.
type NotificationFilters struct {
	TargetKind string
	TargetID   string
	UnreadOnly bool
	Limit      int
}

// Notification represents a notification at the port boundary.
type Notification struct {
	ID         string    `json:"id"`
	TargetKind string    `json:"target_kind"`
	TargetID   string    `json:"target_id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	MissionID  string    `json:"mission_id,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}
