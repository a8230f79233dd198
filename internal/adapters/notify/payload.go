// Package notify contains NotificationSink adapters that fan stored
// notifications out to message brokers.
package notify

import (
	"encoding/json"
	"time"

	"github.com/example/fleetdesk/internal/ports/secondary"
)

// Payload is the wire form of a notification on every broker.
type Payload struct {
	ID         string    `json:"id"`
	TargetKind string    `json:"target_kind"`
	TargetID   string    `json:"target_id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	MissionID  string    `json:"mission_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Encode serializes a notification record.
func Encode(n *secondary.NotificationRecord) ([]byte, error) {
	return json.Marshal(Payload{
		ID:         n.ID,
		TargetKind: n.TargetKind,
		TargetID:   n.TargetID,
		Type:       n.Type,
		Message:    n.Message,
		MissionID:  n.MissionID,
		CreatedAt:  n.CreatedAt,
	})
}

// address joins the recipient into a per-actor channel or topic name,
// e.g. "fleetdesk/driver/DRV-001".
func address(prefix, sep string, n *secondary.NotificationRecord) string {
	return prefix + sep + n.TargetKind + sep + n.TargetID
}
