package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/acmehome/fieldops/internal/app"
	"github.com/acmehome/fieldops/internal/domain"
)

// TechnicianHandler exposes the dispatch REST surface.
type TechnicianHandler struct {
	svc *app.TechnicianService
}

// NewTechnicianHandler creates the handler over the technician service.
func NewTechnicianHandler(svc *app.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{svc: svc}
}

// Router assembles the technician server's routes.
func (h *TechnicianHandler) Router(apiKey string) chi.Router {
	r := chi.NewRouter()
	r.Use(Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "technician-server"})
	})

	r.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(apiKey))

		r.Get("/technicians", h.list)
		r.Post("/technicians/available", h.findAvailable)
		r.Get("/technicians/{id}/status", h.status)
		r.Put("/technicians/{id}/status", h.updateStatus)
		r.Get("/technicians/{id}/location", h.location)
		r.Get("/technicians/{id}/route", h.routeQuery)
		r.Post("/technicians/{id}/route", h.routeBody)
		r.Post("/technicians/{id}/notify", h.notify)
	})

	return r
}

func (h *TechnicianHandler) list(w http.ResponseWriter, r *http.Request) {
	techs, err := h.svc.List(r.URL.Query().Get("status_filter"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"technicians": techs,
		"total":       len(techs),
	})
}

func (h *TechnicianHandler) status(w http.ResponseWriter, r *http.Request) {
	tech, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tech)
}

func (h *TechnicianHandler) location(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Location(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *TechnicianHandler) findAvailable(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Area        string   `json:"area"`
		Datetime    string   `json:"datetime"`
		Specialties []string `json:"specialties"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	found := h.svc.FindAvailable(body.Specialties)
	respondJSON(w, http.StatusOK, map[string]any{
		"technicians": found,
		"total":       len(found),
	})
}

func (h *TechnicianHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req app.UpdateTechnicianStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tech, err := h.svc.UpdateStatus(chi.URLParam(r, "id"), req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tech)
}

// routeQuery reads the destination from lat/lon query parameters.
func (h *TechnicianHandler) routeQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err1 := strconv.ParseFloat(q.Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(q.Get("lon"), 64)
	if err1 != nil || err2 != nil {
		respondError(w, http.StatusBadRequest, "lat and lon query parameters are required")
		return
	}
	h.route(w, r, domain.GeoPoint{Lat: lat, Lon: lon})
}

// routeBody reads the destination from the request body.
func (h *TechnicianHandler) routeBody(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Destination domain.GeoPoint `json:"destination"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.route(w, r, body.Destination)
}

func (h *TechnicianHandler) route(w http.ResponseWriter, r *http.Request, dest domain.GeoPoint) {
	route, err := h.svc.Route(chi.URLParam(r, "id"), dest)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, route)
}

func (h *TechnicianHandler) notify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Notify(chi.URLParam(r, "id"), body.Message)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
