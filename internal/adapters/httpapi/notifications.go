package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/fleetdesk/internal/ports/primary"
)

type targetBody struct {
	TargetKind string `json:"target_kind"`
	TargetID   string `json:"target_id"`
}

func (h *Handlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	unread, err := queryBool(r, "unread")
	if err != nil {
		h.jsonError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		h.jsonError(w, r, err)
		return
	}
	q := r.URL.Query()
	list, err := h.svc.Notifications.ListNotifications(r.Context(), primary.NotificationFilters{
		TargetKind: q.Get("target_kind"),
		TargetID:   q.Get("target_id"),
		UnreadOnly: unread,
		Limit:      limit,
	})
	if list == nil {
		list = []*primary.Notification{}
	}
	respond(h, w, r, http.StatusOK, list, err)
}

func (h *Handlers) unreadCount(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := h.svc.Notifications.GetUnreadCount(r.Context(), q.Get("target_kind"), q.Get("target_id"))
	respond(h, w, r, http.StatusOK, map[string]int{"unread": n}, err)
}

func (h *Handlers) markRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Notifications.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.jsonError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) markAllRead(w http.ResponseWriter, r *http.Request) {
	var body targetBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	n, err := h.svc.Notifications.MarkAllRead(r.Context(), body.TargetKind, body.TargetID)
	respond(h, w, r, http.StatusOK, map[string]int{"marked": n}, err)
}
