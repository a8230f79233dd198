package secondary

import "context"

// NotificationSink fans a stored notification out to an external channel
// (pub/sub, broker topic). Sinks are best-effort.
type NotificationSink interface {
	// Name identifies the sink in logs and metrics.
	Name() string

	// Publish delivers one notification.
	Publish(ctx context.Context, n *NotificationRecord) error

	// Close releases the sink's connections.
	Close() error
}
