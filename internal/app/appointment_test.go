package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmehome/fieldops/internal/adapters/outbound/inmemory"
	"github.com/acmehome/fieldops/internal/app"
	"github.com/acmehome/fieldops/internal/domain"
)

func newAppointmentService(t *testing.T) (*app.AppointmentService, *inmemory.Stores) {
	t.Helper()
	fx, err := inmemory.DefaultFixtures()
	require.NoError(t, err)
	stores := inmemory.NewStores(fx)
	svc := app.NewAppointmentService(stores.Appointments, stores.Technicians, app.FixedClock{T: testNow})
	return svc, stores
}

func TestAvailableSlots(t *testing.T) {
	t.Parallel()
	svc, _ := newAppointmentService(t)

	start := testNow.Add(24 * time.Hour)
	slots, err := svc.AvailableSlots(app.SlotQuery{
		ApplianceType: "dishwasher",
		Start:         start,
		End:           start.Add(8 * time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.LessOrEqual(t, len(slots), 20)

	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.Time.Equal(cur.Time) {
			assert.GreaterOrEqual(t, prev.TechnicianRating, cur.TechnicianRating,
				"same-time slots ordered by rating")
		} else {
			assert.True(t, prev.Time.Before(cur.Time))
		}
	}
	// TECH001 and TECH002 both service dishwashers and are on shift.
	assert.Equal(t, 2, slots[0].QualifiedTechnicians)
}

func TestAvailableSlotsNoQualified(t *testing.T) {
	t.Parallel()
	svc, _ := newAppointmentService(t)

	_, err := svc.AvailableSlots(app.SlotQuery{
		ApplianceType: "water_heater",
		Start:         testNow.Add(time.Hour),
		End:           testNow.Add(4 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrNoQualifiedTechnicians)
}

func TestCreateAppointment(t *testing.T) {
	t.Parallel()
	svc, _ := newAppointmentService(t)

	appt, err := svc.Create(app.CreateAppointmentRequest{
		CustomerID:       "CUST005",
		TechnicianID:     "TECH001",
		ApplianceType:    "refrigerator",
		IssueDescription: "door seal torn",
		ScheduledAt:      testNow.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "APPT004", appt.ID)
	assert.Equal(t, domain.AppointmentScheduled, appt.Status)
	assert.Equal(t, domain.DefaultAppointmentDuration, appt.EstimatedDuration)
	assert.Equal(t, "Appointment created for refrigerator repair", appt.Notes)
	assert.Equal(t, "medium", appt.ServiceDetails["priority"])
	assert.Equal(t, true, appt.ServiceDetails["warranty_covered"])
}

func TestCreateAppointmentErrors(t *testing.T) {
	t.Parallel()
	svc, _ := newAppointmentService(t)

	_, err := svc.Create(app.CreateAppointmentRequest{
		CustomerID: "CUST001", TechnicianID: "TECH999",
		ApplianceType: "oven", IssueDescription: "no heat",
		ScheduledAt: testNow.Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Create(app.CreateAppointmentRequest{
		CustomerID: "CUST001", TechnicianID: "TECH001",
		ApplianceType: "dryer", IssueDescription: "drum stuck",
		ScheduledAt: testNow.Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrSpecialtyMismatch)
}

func TestCreateAppointmentConflict(t *testing.T) {
	t.Parallel()
	svc, _ := newAppointmentService(t)

	// APPT001 holds TECH001 from 2030-06-02T10:00Z for 120 minutes.
	taken := time.Date(2030, 6, 2, 11, 0, 0, 0, time.UTC)
	_, err := svc.Create(app.CreateAppointmentRequest{
		CustomerID: "CUST002", TechnicianID: "TECH001",
		ApplianceType: "refrigerator", IssueDescription: "not cooling at all",
		ScheduledAt: taken,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)

	var conflict *app.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.NotEmpty(t, conflict.Alternatives)
	assert.LessOrEqual(t, len(conflict.Alternatives), 3)
	for _, alt := range conflict.Alternatives {
		assert.True(t, alt.After(testNow), "alternatives are in the future")
	}
}

func TestCancelAppointment(t *testing.T) {
	t.Parallel()
	svc, _ := newAppointmentService(t)

	appt, err := svc.Cancel("APPT003", "")
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, appt.Status)
	assert.Contains(t, appt.Notes, " | Cancelled: Customer request")
	assert.Equal(t, "Customer request", appt.ServiceDetails["cancellation_reason"])

	// Completed and cancelled appointments stay final.
	_, err = svc.Cancel("APPT002", "whatever")
	assert.ErrorIs(t, err, domain.ErrAlreadyFinal)
	_, err = svc.Cancel("APPT003", "again")
	assert.ErrorIs(t, err, domain.ErrAlreadyFinal)
}

func TestRescheduleAppointment(t *testing.T) {
	t.Parallel()
	svc, _ := newAppointmentService(t)

	newTime := time.Date(2030, 6, 3, 15, 0, 0, 0, time.UTC)
	appt, err := svc.Reschedule("APPT001", newTime)
	require.NoError(t, err)
	assert.Equal(t, newTime, appt.ScheduledAt)
	assert.Contains(t, appt.Notes, " | Rescheduled from 2030-06-02T10:00:00Z")

	// Rescheduling to its own current slot is not a self-conflict.
	_, err = svc.Reschedule("APPT001", newTime.Add(30*time.Minute))
	require.NoError(t, err)
}

func TestUpdateAppointment(t *testing.T) {
	t.Parallel()
	svc, _ := newAppointmentService(t)

	status := "confirmed"
	notes := "customer confirmed by phone"
	res, err := svc.Update("APPT003", app.UpdateAppointmentRequest{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"status", "notes"}, res.UpdatedFields)
	assert.Equal(t, "scheduled", res.OldValues["status"])
	assert.Equal(t, domain.AppointmentConfirmed, res.Appointment.Status)

	bad := "tentative"
	_, err = svc.Update("APPT003", app.UpdateAppointmentRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestAppointmentDetails(t *testing.T) {
	t.Parallel()
	svc, _ := newAppointmentService(t)

	appt, tech, err := svc.Details("APPT001")
	require.NoError(t, err)
	assert.Equal(t, "APPT001", appt.ID)
	assert.Equal(t, "TECH001", tech.ID)
	assert.Equal(t, "Mike Rodriguez", tech.Name)
}
