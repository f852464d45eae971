package httpapi_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmehome/fieldops/internal/adapters/inbound/httpapi"
	"github.com/acmehome/fieldops/internal/adapters/outbound/inmemory"
	"github.com/acmehome/fieldops/internal/app"
)

func newAppointmentRouter(t *testing.T) chi.Router {
	t.Helper()
	fx, err := inmemory.DefaultFixtures()
	require.NoError(t, err)
	stores := inmemory.NewStores(fx)
	svc := app.NewAppointmentService(stores.Appointments, stores.Technicians, app.FixedClock{T: handlerNow})
	return httpapi.NewAppointmentHandler(svc).Router("")
}

func TestAvailableSlotsEndpoint(t *testing.T) {
	t.Parallel()
	router := newAppointmentRouter(t)

	rec, body := doJSON(t, router, http.MethodGet,
		"/appointments/available-slots?appliance_type=dishwasher&start=2025-06-02T08:00:00Z&end=2025-06-02T17:00:00Z", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Greater(t, body["total"], float64(0))

	slots := body["available_slots"].([]any)
	first := slots[0].(map[string]any)
	assert.Contains(t, first, "technician_id")
	assert.Contains(t, first, "qualified_technicians")

	// Nobody services water heaters.
	rec, _ = doJSON(t, router, http.MethodGet,
		"/appointments/available-slots?appliance_type=water_heater&start=2025-06-02T08:00:00Z&end=2025-06-02T17:00:00Z", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet,
		"/appointments/available-slots?appliance_type=oven&start=not-a-date&end=2025-06-02T17:00:00Z", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	t.Parallel()
	router := newAppointmentRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/appointments",
		`{"customer_id":"CUST005","technician_id":"TECH001","appliance_type":"refrigerator",
		  "issue_description":"door seal torn","scheduled_datetime":"2025-06-05T10:00:00Z"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "APPT004", body["id"])

	details := body["service_details"].(map[string]any)
	assert.Equal(t, "medium", details["priority"])
}

func TestCreateAppointmentConflictEndpoint(t *testing.T) {
	t.Parallel()
	router := newAppointmentRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/appointments",
		`{"customer_id":"CUST002","technician_id":"TECH001","appliance_type":"refrigerator",
		  "issue_description":"warm fridge","scheduled_datetime":"2030-06-02T11:00:00Z"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, body, "suggested_alternatives")
	alts := body["suggested_alternatives"].([]any)
	assert.NotEmpty(t, alts)
	assert.LessOrEqual(t, len(alts), 3)
}

func TestCancelAppointmentEndpoint(t *testing.T) {
	t.Parallel()
	router := newAppointmentRouter(t)

	rec, body := doJSON(t, router, http.MethodDelete, "/appointments/APPT003?reason=moved+out", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	appt := body["appointment"].(map[string]any)
	assert.Equal(t, "cancelled", appt["status"])
	assert.Contains(t, appt["notes"], "Cancelled: moved out")

	rec, _ = doJSON(t, router, http.MethodDelete, "/appointments/APPT002", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "completed appointments cannot be cancelled")
}

func TestRescheduleEndpoint(t *testing.T) {
	t.Parallel()
	router := newAppointmentRouter(t)

	rec, body := doJSON(t, router, http.MethodPut, "/appointments/APPT001/reschedule",
		`{"scheduled_datetime":"2030-06-03T15:00:00Z"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body["notes"], "Rescheduled from")
}

func TestAppointmentDetailsEndpoint(t *testing.T) {
	t.Parallel()
	router := newAppointmentRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/appointments/APPT001/details", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	tech := body["technician_details"].(map[string]any)
	assert.Equal(t, "Mike Rodriguez", tech["name"])

	rec, _ = doJSON(t, router, http.MethodGet, "/appointments/APPT999/details", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerAppointmentsEndpoint(t *testing.T) {
	t.Parallel()
	router := newAppointmentRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/appointments/customer/CUST001", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["total"])

	rec, body = doJSON(t, router, http.MethodGet, "/appointments/customer/CUST001?status_filter=completed", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["total"])
}
