package app_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmehome/fieldops/internal/adapters/outbound/inmemory"
	"github.com/acmehome/fieldops/internal/app"
	"github.com/acmehome/fieldops/internal/domain"
)

func newTechnicianService(t *testing.T) (*app.TechnicianService, *inmemory.Stores) {
	t.Helper()
	fx, err := inmemory.DefaultFixtures()
	require.NoError(t, err)
	stores := inmemory.NewStores(fx)
	rng := rand.New(rand.NewPCG(1, 2))
	svc := app.NewTechnicianService(stores.Technicians, app.FixedClock{T: testNow}, rng)
	return svc, stores
}

func TestListTechnicians(t *testing.T) {
	t.Parallel()
	svc, _ := newTechnicianService(t)

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Amy Liu", all[0].Name, "sorted by name")
	assert.Equal(t, testNow, all[0].LastUpdated, "stamped with the read time")

	available, err := svc.List("available")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "TECH001", available[0].ID)

	_, err = svc.List("napping")
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestLocationSimulation(t *testing.T) {
	t.Parallel()
	svc, stores := newTechnicianService(t)

	// En-route technician closes ground toward the destination.
	before, err := stores.Technicians.Get("TECH003")
	require.NoError(t, err)
	destDist := before.Location.DistanceMiles(*before.Destination)

	report, err := svc.Location("TECH003")
	require.NoError(t, err)
	after, err := stores.Technicians.Get("TECH003")
	require.NoError(t, err)
	assert.Equal(t, report.Location, after.Location, "advanced position is persisted")
	assert.Less(t, after.Location.DistanceMiles(*after.Destination), destDist)
	assert.Greater(t, report.ETAMinutes, 0, "future arrival yields an ETA")

	// Available technician wanders within the idle jitter bound.
	idleBefore, err := stores.Technicians.Get("TECH001")
	require.NoError(t, err)
	idle, err := svc.Location("TECH001")
	require.NoError(t, err)
	assert.InDelta(t, idleBefore.Location.Lat, idle.Location.Lat, 0.01)
	assert.InDelta(t, idleBefore.Location.Lon, idle.Location.Lon, 0.01)

	_, err = svc.Location("TECH999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationOverdueNote(t *testing.T) {
	t.Parallel()
	fx, err := inmemory.DefaultFixtures()
	require.NoError(t, err)
	stores := inmemory.NewStores(fx)

	past := testNow.Add(-10 * time.Minute)
	tech, err := stores.Technicians.Get("TECH003")
	require.NoError(t, err)
	tech.EstimatedArrival = &past
	stores.Technicians.Put(tech)

	svc := app.NewTechnicianService(stores.Technicians, app.FixedClock{T: testNow}, rand.New(rand.NewPCG(1, 2)))
	report, err := svc.Location("TECH003")
	require.NoError(t, err)
	assert.Equal(t, "Should have arrived", report.StatusNote)
	assert.Zero(t, report.ETAMinutes)
}

func TestFindAvailable(t *testing.T) {
	t.Parallel()
	svc, _ := newTechnicianService(t)

	got := svc.FindAvailable([]string{"refrigerator", "dryer"})
	require.Len(t, got, 1, "only TECH001 is available; TECH004 is off duty")
	assert.Equal(t, "TECH001", got[0].Technician.ID)
	assert.GreaterOrEqual(t, got[0].DistanceMiles, 2.0)
	assert.LessOrEqual(t, got[0].DistanceMiles, 15.0)
	assert.GreaterOrEqual(t, got[0].ETAMinutes, 5)

	assert.Empty(t, svc.FindAvailable([]string{"hvac"}))
}

func TestUpdateTechnicianStatus(t *testing.T) {
	t.Parallel()
	svc, _ := newTechnicianService(t)

	apptID := "APPT001"
	tech, err := svc.UpdateStatus("TECH001", app.UpdateTechnicianStatusRequest{
		Status:        "en_route",
		AppointmentID: &apptID,
		Destination:   &domain.GeoPoint{Lat: 47.61, Lon: -122.20},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TechnicianEnRoute, tech.Status)
	require.NotNil(t, tech.EstimatedArrival)
	mins := tech.EstimatedArrival.Sub(testNow).Minutes()
	assert.GreaterOrEqual(t, mins, 30.0)
	assert.LessOrEqual(t, mins, 60.0)

	tech, err = svc.UpdateStatus("TECH001", app.UpdateTechnicianStatusRequest{Status: "available"})
	require.NoError(t, err)
	assert.Nil(t, tech.EstimatedArrival)
	assert.Empty(t, tech.CurrentAppointmentID)
	assert.Nil(t, tech.Destination)

	_, err = svc.UpdateStatus("TECH001", app.UpdateTechnicianStatusRequest{Status: "lunch"})
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestRoute(t *testing.T) {
	t.Parallel()
	svc, _ := newTechnicianService(t)

	dest := domain.GeoPoint{Lat: 47.6740, Lon: -122.1215} // Redmond
	route, err := svc.Route("TECH001", dest)
	require.NoError(t, err)

	assert.Equal(t, dest, route.Destination)
	assert.Greater(t, route.DistanceMiles, 5.0)
	assert.GreaterOrEqual(t, route.ETAMinutes, 5)
	assert.Contains(t, []string{"light", "moderate", "heavy"}, route.TrafficCondition)

	require.NotEmpty(t, route.Waypoints)
	assert.GreaterOrEqual(t, len(route.Waypoints), 3)
	assert.LessOrEqual(t, len(route.Waypoints), 5)
	last := route.Waypoints[len(route.Waypoints)-1]
	assert.InDelta(t, dest.Lat, last.Point.Lat, 1e-9, "last waypoint is the destination")
	assert.Contains(t, last.Instruction, "miles")

	_, err = svc.Route("TECH001", domain.GeoPoint{Lat: 200, Lon: 0})
	assert.ErrorIs(t, err, domain.ErrCoordinatesInvalid)
}

func TestNotify(t *testing.T) {
	t.Parallel()
	svc, _ := newTechnicianService(t)

	res, err := svc.Notify("TECH003", "")
	require.NoError(t, err)
	assert.Contains(t, res.Message, "on the way")
	assert.NotNil(t, res.Location, "en-route notifications include the live position")

	res, err = svc.Notify("TECH004", "")
	require.NoError(t, err)
	assert.Contains(t, res.Message, "off duty")
	assert.Nil(t, res.Location)

	res, err = svc.Notify("TECH001", "custom text")
	require.NoError(t, err)
	assert.Equal(t, "custom text", res.Message)
}
