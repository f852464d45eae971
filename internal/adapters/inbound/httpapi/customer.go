package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acmehome/fieldops/internal/app"
)

// CustomerHandler exposes the customer and claims REST surface.
type CustomerHandler struct {
	svc *app.CustomerService
}

// NewCustomerHandler creates the handler over the customer service.
func NewCustomerHandler(svc *app.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// Router assembles the customer server's routes with auth and recovery
// middleware. apiKey empty disables auth.
func (h *CustomerHandler) Router(apiKey string) chi.Router {
	r := chi.NewRouter()
	r.Use(Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "customer-server"})
	})

	r.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(apiKey))

		r.Get("/customers", h.listCustomers)
		r.Get("/customers/{id}/profile", h.profile)
		r.Get("/customers/{id}/policy", h.policy)
		r.Post("/customers/{id}/validate-coverage", h.validateCoverage)
		r.Get("/customers/{id}/claims", h.customerClaims)

		r.Post("/claims", h.createClaim)
		r.Get("/claims", h.listClaims)
		r.Get("/claims/{id}", h.getClaim)
		r.Put("/claims/{id}/status", h.updateClaimStatus)
	})

	return r
}

func (h *CustomerHandler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.svc.ListCustomers()
	respondJSON(w, http.StatusOK, map[string]any{
		"customers": customers,
		"total":     len(customers),
	})
}

func (h *CustomerHandler) profile(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetProfile(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) policy(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.GetPolicy(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (h *CustomerHandler) validateCoverage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ApplianceType string `json:"appliance_type"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.ValidateCoverage(chi.URLParam(r, "id"), body.ApplianceType)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *CustomerHandler) createClaim(w http.ResponseWriter, r *http.Request) {
	var req app.CreateClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claim, err := h.svc.CreateClaim(req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, claim)
}

func (h *CustomerHandler) listClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.svc.ListClaims(r.URL.Query().Get("status_filter"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"claims": claims,
		"total":  len(claims),
	})
}

func (h *CustomerHandler) getClaim(w http.ResponseWriter, r *http.Request) {
	claim, err := h.svc.GetClaim(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, claim)
}

func (h *CustomerHandler) customerClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.svc.CustomerClaims(chi.URLParam(r, "id"), r.URL.Query().Get("status_filter"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"customer_id": chi.URLParam(r, "id"),
		"claims":      claims,
		"total":       len(claims),
	})
}

func (h *CustomerHandler) updateClaimStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claim, err := h.svc.UpdateClaimStatus(chi.URLParam(r, "id"), body.Status, body.Notes)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, claim)
}
