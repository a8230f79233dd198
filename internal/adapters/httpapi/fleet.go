package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/fleetdesk/internal/ports/primary"
)

type vehicleBody struct {
	Registration string `json:"registration"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	CapacityKg   int    `json:"capacity_kg"`
}

type personBody struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

type dispatcherBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// respond writes v with status or maps err.
func respond[T any](h *Handlers, w http.ResponseWriter, r *http.Request, status int, v T, err error) {
	if err != nil {
		h.jsonError(w, r, err)
		return
	}
	h.jsonOK(w, status, v)
}

// vehicles

func (h *Handlers) registerVehicle(w http.ResponseWriter, r *http.Request) {
	var body vehicleBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	v, err := h.svc.Ledger.RegisterVehicle(r.Context(), primary.RegisterVehicleRequest(body))
	respond(h, w, r, http.StatusCreated, v, err)
}

func (h *Handlers) listVehicles(w http.ResponseWriter, r *http.Request) {
	availableOnly, err := queryBool(r, "available")
	if err != nil {
		h.jsonError(w, r, err)
		return
	}
	list, err := h.svc.Ledger.ListVehicles(r.Context(), availableOnly)
	if list == nil {
		list = []*primary.Vehicle{}
	}
	respond(h, w, r, http.StatusOK, list, err)
}

func (h *Handlers) countAvailable(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Ledger.CountAvailable(r.Context())
	respond(h, w, r, http.StatusOK, map[string]int{"available": n}, err)
}

func (h *Handlers) getVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Ledger.GetVehicle(r.Context(), chi.URLParam(r, "id"))
	respond(h, w, r, http.StatusOK, v, err)
}

// drivers

func (h *Handlers) registerDriver(w http.ResponseWriter, r *http.Request) {
	var body personBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	d, err := h.svc.Directory.RegisterDriver(r.Context(), primary.RegisterDriverRequest{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
	})
	respond(h, w, r, http.StatusCreated, d, err)
}

func (h *Handlers) listDrivers(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := queryBool(r, "active")
	if err != nil {
		h.jsonError(w, r, err)
		return
	}
	list, err := h.svc.Directory.ListDrivers(r.Context(), activeOnly)
	if list == nil {
		list = []*primary.Driver{}
	}
	respond(h, w, r, http.StatusOK, list, err)
}

func (h *Handlers) getDriver(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Directory.GetDriver(r.Context(), chi.URLParam(r, "id"))
	respond(h, w, r, http.StatusOK, d, err)
}

func (h *Handlers) reactivateDriver(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Directory.ReactivateDriver(r.Context(), chi.URLParam(r, "id"))
	respond(h, w, r, http.StatusOK, d, err)
}

// employees

func (h *Handlers) registerEmployee(w http.ResponseWriter, r *http.Request) {
	var body personBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	e, err := h.svc.Directory.RegisterEmployee(r.Context(), primary.RegisterEmployeeRequest{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Department: body.Department,
	})
	respond(h, w, r, http.StatusCreated, e, err)
}

func (h *Handlers) listEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Directory.ListEmployees(r.Context())
	if list == nil {
		list = []*primary.Employee{}
	}
	respond(h, w, r, http.StatusOK, list, err)
}

func (h *Handlers) getEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Directory.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	respond(h, w, r, http.StatusOK, e, err)
}

// dispatchers

func (h *Handlers) registerDispatcher(w http.ResponseWriter, r *http.Request) {
	var body dispatcherBody
	if err := decode(r, &body); err != nil {
		h.jsonError(w, r, err)
		return
	}
	d, err := h.svc.Directory.RegisterDispatcher(r.Context(), primary.RegisterDispatcherRequest(body))
	respond(h, w, r, http.StatusCreated, d, err)
}

func (h *Handlers) listDispatchers(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Directory.ListDispatchers(r.Context())
	if list == nil {
		list = []*primary.Dispatcher{}
	}
	respond(h, w, r, http.StatusOK, list, err)
}

func (h *Handlers) getDispatcher(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Directory.GetDispatcher(r.Context(), chi.URLParam(r, "id"))
	respond(h, w, r, http.StatusOK, d, err)
}

// dashboard

func (h *Handlers) fleetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats.GetFleetStats(r.Context())
	respond(h, w, r, http.StatusOK, stats, err)
}
