package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/acmehome/fieldops/internal/app"
)

// AppointmentHandler exposes the scheduling REST surface.
type AppointmentHandler struct {
	svc *app.AppointmentService
}

// NewAppointmentHandler creates the handler over the appointment service.
func NewAppointmentHandler(svc *app.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

// Router assembles the appointment server's routes.
func (h *AppointmentHandler) Router(apiKey string) chi.Router {
	r := chi.NewRouter()
	r.Use(Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "appointment-server"})
	})

	r.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(apiKey))

		r.Get("/appointments/available-slots", h.availableSlots)
		r.Get("/appointments", h.list)
		r.Post("/appointments", h.create)
		r.Get("/appointments/customer/{customerID}", h.customerAppointments)
		r.Get("/appointments/{id}/details", h.details)
		r.Put("/appointments/{id}/reschedule", h.reschedule)
		r.Put("/appointments/{id}", h.update)
		r.Delete("/appointments/{id}", h.cancel)
	})

	return r
}

func (h *AppointmentHandler) availableSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseTime(q.Get("start"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid start datetime")
		return
	}
	end, err := parseTime(q.Get("end"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid end datetime")
		return
	}
	duration := 0
	if s := q.Get("duration"); s != "" {
		duration, err = strconv.Atoi(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid duration")
			return
		}
	}

	slots, err := h.svc.AvailableSlots(app.SlotQuery{
		ApplianceType: q.Get("appliance_type"),
		Start:         start,
		End:           end,
		Duration:      duration,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"available_slots": slots,
		"total":           len(slots),
	})
}

func (h *AppointmentHandler) list(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.ListAppointments(r.URL.Query().Get("status_filter"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"appointments": appts,
		"total":        len(appts),
	})
}

func (h *AppointmentHandler) customerAppointments(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	appts, err := h.svc.CustomerAppointments(customerID, r.URL.Query().Get("status_filter"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"customer_id":  customerID,
		"appointments": appts,
		"total":        len(appts),
	})
}

// createAppointmentBody mirrors app.CreateAppointmentRequest with a string
// datetime so callers can send common ISO formats.
type createAppointmentBody struct {
	CustomerID        string `json:"customer_id"`
	TechnicianID      string `json:"technician_id"`
	ApplianceType     string `json:"appliance_type"`
	IssueDescription  string `json:"issue_description"`
	ScheduledDatetime string `json:"scheduled_datetime"`
	EstimatedDuration int    `json:"estimated_duration"`
	ClaimID           string `json:"claim_id"`
}

func (h *AppointmentHandler) create(w http.ResponseWriter, r *http.Request) {
	var body createAppointmentBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	scheduledAt, err := parseTime(body.ScheduledDatetime)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scheduled_datetime")
		return
	}

	appt, err := h.svc.Create(app.CreateAppointmentRequest{
		CustomerID:        body.CustomerID,
		TechnicianID:      body.TechnicianID,
		ApplianceType:     body.ApplianceType,
		IssueDescription:  body.IssueDescription,
		ScheduledAt:       scheduledAt,
		EstimatedDuration: body.EstimatedDuration,
		ClaimID:           body.ClaimID,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, appt)
}

func (h *AppointmentHandler) update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ScheduledDatetime *string `json:"scheduled_datetime"`
		Status            *string `json:"status"`
		EstimatedDuration *int    `json:"estimated_duration"`
		Notes             *string `json:"notes"`
		TechnicianID      *string `json:"technician_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := app.UpdateAppointmentRequest{
		Status:            body.Status,
		EstimatedDuration: body.EstimatedDuration,
		Notes:             body.Notes,
		TechnicianID:      body.TechnicianID,
	}
	if body.ScheduledDatetime != nil {
		ts, err := parseTime(*body.ScheduledDatetime)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid scheduled_datetime")
			return
		}
		req.ScheduledAt = &ts
	}

	res, err := h.svc.Update(chi.URLParam(r, "id"), req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *AppointmentHandler) cancel(w http.ResponseWriter, r *http.Request) {
	appt, err := h.svc.Cancel(chi.URLParam(r, "id"), r.URL.Query().Get("reason"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Appointment cancelled",
		"appointment": appt,
	})
}

func (h *AppointmentHandler) reschedule(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ScheduledDatetime string `json:"scheduled_datetime"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ts, err := parseTime(body.ScheduledDatetime)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scheduled_datetime")
		return
	}

	appt, err := h.svc.Reschedule(chi.URLParam(r, "id"), ts)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, appt)
}

func (h *AppointmentHandler) details(w http.ResponseWriter, r *http.Request) {
	appt, tech, err := h.svc.Details(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"appointment": appt,
		"technician_details": map[string]any{
			"name":   tech.Name,
			"phone":  tech.Phone,
			"rating": tech.Rating,
			"status": tech.Status,
		},
	})
}

// parseTime accepts RFC 3339 first, then the common fallback formats the demo
// clients send.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, &time.ParseError{Layout: time.RFC3339, Value: "(empty)"}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
