package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/acmehome/fieldops/internal/app"
	"github.com/acmehome/fieldops/internal/domain"
)

// respondJSON writes v as JSON with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("httpapi: encode response: %v", err)
	}
}

// errorBody is the wire format for every error response.
type errorBody struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
}

// respondError writes the standard error envelope.
func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorBody{Error: detail, StatusCode: status})
}

// respondDomainError maps domain sentinels to HTTP status codes. Unrecognized
// errors become a 500 with a generic message so internals never leak.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrScheduleConflict):
		respondConflict(w, err)
	case errors.Is(err, domain.ErrNotCovered),
		errors.Is(err, domain.ErrSpecialtyMismatch),
		errors.Is(err, domain.ErrUnknownStatus),
		errors.Is(err, domain.ErrAlreadyFinal),
		errors.Is(err, domain.ErrCoordinatesInvalid),
		errors.Is(err, domain.ErrCustomerInvalid),
		errors.Is(err, domain.ErrClaimInvalid),
		errors.Is(err, domain.ErrAppointmentInvalid),
		errors.Is(err, domain.ErrTechnicianInvalid):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoQualifiedTechnicians):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("httpapi: internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondConflict returns 409 with suggested alternatives when the service
// attached them.
func respondConflict(w http.ResponseWriter, err error) {
	var conflict *app.ConflictError
	if errors.As(err, &conflict) {
		respondJSON(w, http.StatusConflict, map[string]any{
			"error":                  err.Error(),
			"status_code":            http.StatusConflict,
			"suggested_alternatives": conflict.Alternatives,
		})
		return
	}
	respondError(w, http.StatusConflict, err.Error())
}

// decodeJSON reads the request body into dst, rejecting unknown garbage early.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}
