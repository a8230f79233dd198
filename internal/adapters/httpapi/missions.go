package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/fleetdesk/internal/ports/primary"
)

type createMissionBody struct {
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Type         string    `json:"type"`
	Instructions string    `json:"instructions"`
	RequesterID  string    `json:"requester_id"`
	DriverID     string    `json:"driver_id"`
	VehicleID    string    `json:"vehicle_id"`
}

// updateMissionBody carries only the fields to change. "vehicle_id": "" detaches the vehicle.
type updateMissionBody struct {
	Origin       *string    `json:"origin"`
	Destination  *string    `json:"destination"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	Type         *string    `json:"type"`
	Instructions *string    `json:"instructions"`
	VehicleID    *string    `json:"vehicle_id"`
}

type driverBody struct {
	DriverID string `json:"driver_id"`
}

type reasonBody struct {
	Reason string `json:"reason"`
}

func (h *Handlers) createMission(w http.ResponseWriter, r *http.Request) {
	var body createMissionBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	resp, err := h.svc.Missions.CreateMission(r.Context(), primary.CreateMissionRequest{
		Origin:       body.Origin,
		Destination:  body.Destination,
		ScheduledAt:  body.ScheduledAt,
		Type:         body.Type,
		Instructions: body.Instructions,
		RequesterID:  body.RequesterID,
		DriverID:     body.DriverID,
		VehicleID:    body.VehicleID,
	})
	if err != nil {
		h.jsonError(w, r, err)
		return
	}
	h.jsonOK(w, http.StatusCreated, resp.Mission)
}

func (h *Handlers) listMissions(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		h.jsonError(w, r, err)
		return
	}
	q := r.URL.Query()
	missions, err := h.svc.Missions.ListMissions(r.Context(), primary.MissionFilters{
		DriverID:    q.Get("driver_id"),
		RequesterID: q.Get("requester_id"),
		State:       q.Get("state"),
		Limit:       limit,
	})
	if err != nil {
		h.jsonError(w, r, err)
		return
	}
	if missions == nil {
		missions = []*primary.Mission{}
	}
	h.jsonOK(w, http.StatusOK, missions)
}

func (h *Handlers) getMission(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Missions.GetMission(r.Context(), chi.URLParam(r, "id"))
	h.respondMission(w, r, m, err)
}

func (h *Handlers) updateMission(w http.ResponseWriter, r *http.Request) {
	var body updateMissionBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	m, err := h.svc.Missions.UpdateMissionDetails(r.Context(), primary.UpdateMissionDetailsRequest{
		MissionID:    chi.URLParam(r, "id"),
		Origin:       body.Origin,
		Destination:  body.Destination,
		ScheduledAt:  body.ScheduledAt,
		Type:         body.Type,
		Instructions: body.Instructions,
		VehicleID:    body.VehicleID,
	})
	h.respondMission(w, r, m, err)
}

func (h *Handlers) deleteMission(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Missions.DeleteMission(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.jsonError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) acceptMission(w http.ResponseWriter, r *http.Request) {
	var body driverBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	m, err := h.svc.Missions.AssignDriver(r.Context(), primary.AssignDriverRequest{
		MissionID: chi.URLParam(r, "id"),
		DriverID:  body.DriverID,
	})
	h.respondMission(w, r, m, err)
}

func (h *Handlers) startMission(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Missions.StartMission(r.Context(), chi.URLParam(r, "id"))
	h.respondMission(w, r, m, err)
}

func (h *Handlers) completeMission(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Missions.CompleteMission(r.Context(), chi.URLParam(r, "id"))
	h.respondMission(w, r, m, err)
}

func (h *Handlers) refuseMission(w http.ResponseWriter, r *http.Request) {
	var body reasonBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	m, err := h.svc.Missions.RefuseMission(r.Context(), primary.RefuseMissionRequest{
		MissionID: chi.URLParam(r, "id"),
		Reason:    body.Reason,
	})
	h.respondMission(w, r, m, err)
}

func (h *Handlers) reportProblem(w http.ResponseWriter, r *http.Request) {
	var body reasonBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	m, err := h.svc.Missions.ReportProblem(r.Context(), primary.ReportProblemRequest{
		MissionID: chi.URLParam(r, "id"),
		Reason:    body.Reason,
	})
	h.respondMission(w, r, m, err)
}

func (h *Handlers) reassignMission(w http.ResponseWriter, r *http.Request) {
	var body driverBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	m, err := h.svc.Missions.ReassignMission(r.Context(), primary.ReassignMissionRequest{
		MissionID: chi.URLParam(r, "id"),
		DriverID:  body.DriverID,
	})
	h.respondMission(w, r, m, err)
}

func (h *Handlers) respondMission(w http.ResponseWriter, r *http.Request, m *primary.Mission, err error) {
	if err != nil {
		h.jsonError(w, r, err)
		return
	}
	h.jsonOK(w, http.StatusOK, m)
}
