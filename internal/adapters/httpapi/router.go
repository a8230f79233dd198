// Package httpapi exposes the primary ports over HTTP+JSON.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/example/fleetdesk/internal/ctxutil"
	"github.com/example/fleetdesk/internal/metrics"
	"github.com/example/fleetdesk/internal/ports/primary"
)

// ActorHeader carries the caller identity recorded in service logs.
const ActorHeader = "X-Actor-ID"

// Services bundles the primary ports served by the router.
type Services struct {
	Missions      primary.MissionService
	Ledger        primary.LedgerService
	Directory     primary.DirectoryService
	Leaves        primary.LeaveService
	Notifications primary.NotificationService
	Stats         primary.StatsService
}

// Handlers holds the services behind every route.
type Handlers struct {
	svc    Services
	logger log.FieldLogger
}

// NewRouter builds the chi router for the API, /healthz and /metrics.
func NewRouter(svc Services, logger log.FieldLogger) http.Handler {
	h := &Handlers{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)
	r.Use(withActor)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		h.jsonOK(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/missions", func(r chi.Router) {
			r.Post("/", h.createMission)
			r.Get("/", h.listMissions)
			r.Get("/{id}", h.getMission)
			r.Patch("/{id}", h.updateMission)
			r.Delete("/{id}", h.deleteMission)
			r.Post("/{id}/accept", h.acceptMission)
			r.Post("/{id}/start", h.startMission)
			r.Post("/{id}/complete", h.completeMission)
			r.Post("/{id}/refuse", h.refuseMission)
			r.Post("/{id}/problem", h.reportProblem)
			r.Post("/{id}/reassign", h.reassignMission)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Post("/", h.registerVehicle)
			r.Get("/", h.listVehicles)
			r.Get("/available/count", h.countAvailable)
			r.Get("/{id}", h.getVehicle)
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Post("/", h.registerDriver)
			r.Get("/", h.listDrivers)
			r.Get("/{id}", h.getDriver)
			r.Post("/{id}/reactivate", h.reactivateDriver)
		})
		r.Route("/employees", func(r chi.Router) {
			r.Post("/", h.registerEmployee)
			r.Get("/", h.listEmployees)
			r.Get("/{id}", h.getEmployee)
		})
		r.Route("/dispatchers", func(r chi.Router) {
			r.Post("/", h.registerDispatcher)
			r.Get("/", h.listDispatchers)
			r.Get("/{id}", h.getDispatcher)
		})

		r.Route("/leaves", func(r chi.Router) {
			r.Post("/", h.requestLeave)
			r.Get("/", h.listLeaves)
			r.Get("/{id}", h.getLeave)
			r.Post("/{id}/approve", h.approveLeave)
			r.Post("/{id}/refuse", h.refuseLeave)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.listNotifications)
			r.Get("/unread-count", h.unreadCount)
			r.Post("/read-all", h.markAllRead)
			r.Post("/{id}/read", h.markRead)
		})

		r.Get("/stats", h.fleetStats)
	})

	return r
}

// withActor copies the actor header and chi's request ID into the request context.
func withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxutil.WithActorID(r.Context(), r.Header.Get(ActorHeader))
		ctx = ctxutil.WithRequestID(ctx, middleware.GetReqID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// instrument records request count, duration and an access log line.
func (h *Handlers) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(dur.Seconds())
		h.logger.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"duration":   dur,
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("http request")
	})
}
