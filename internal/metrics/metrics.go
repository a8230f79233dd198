// Package metrics holds the Prometheus collectors for fleetdesk.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served on /metrics.
	Registry = prometheus.NewRegistry()

	// MissionTransitions counts lifecycle operations by operation and outcome
	// (ok, noop, or an error code).
	MissionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fleetdesk_mission_transitions_total", Help: "Mission lifecycle operations by operation and outcome."},
		[]string{"operation", "outcome"},
	)

	// VehicleLedgerOps counts ledger calls by operation and outcome.
	VehicleLedgerOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fleetdesk_vehicle_ledger_operations_total", Help: "Vehicle reserve/release calls by outcome."},
		[]string{"operation", "outcome"},
	)

	// NotificationsSent counts stored notifications by type.
	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fleetdesk_notifications_sent_total", Help: "Notifications stored by type."},
		[]string{"type"},
	)

	// NotificationFailures counts notification write or fan-out failures by stage.
	NotificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fleetdesk_notification_failures_total", Help: "Notification failures by stage (store or sink name)."},
		[]string{"stage"},
	)

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fleetdesk_http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "fleetdesk_http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(MissionTransitions)
		Registry.MustRegister(VehicleLedgerOps)
		Registry.MustRegister(NotificationsSent)
		Registry.MustRegister(NotificationFailures)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
