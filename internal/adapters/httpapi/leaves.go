package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/fleetdesk/internal/ports/primary"
)

type leaveBody struct {
	DriverID string    `json:"driver_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Kind     string    `json:"kind"`
	Reason   string    `json:"reason"`
}

type noteBody struct {
	Note string `json:"note"`
}

func (h *Handlers) requestLeave(w http.ResponseWriter, r *http.Request) {
	var body leaveBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	l, err := h.svc.Leaves.RequestLeave(r.Context(), primary.RequestLeaveRequest(body))
	respond(h, w, r, http.StatusCreated, l, err)
}

func (h *Handlers) listLeaves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.svc.Leaves.ListLeaveRequests(r.Context(), primary.LeaveFilters{
		DriverID: q.Get("driver_id"),
		Status:   q.Get("status"),
	})
	if list == nil {
		list = []*primary.LeaveRequest{}
	}
	respond(h, w, r, http.StatusOK, list, err)
}

func (h *Handlers) getLeave(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Leaves.GetLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	respond(h, w, r, http.StatusOK, l, err)
}

func (h *Handlers) approveLeave(w http.ResponseWriter, r *http.Request) {
	var body noteBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	resp, err := h.svc.Leaves.ApproveLeave(r.Context(), chi.URLParam(r, "id"), body.Note)
	respond(h, w, r, http.StatusOK, resp, err)
}

func (h *Handlers) refuseLeave(w http.ResponseWriter, r *http.Request) {
	var body reasonBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	l, err := h.svc.Leaves.RefuseLeave(r.Context(), chi.URLParam(r, "id"), body.Reason)
	respond(h, w, r, http.StatusOK, l, err)
}
