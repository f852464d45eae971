package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmehome/fieldops/internal/adapters/outbound/inmemory"
	"github.com/acmehome/fieldops/internal/app"
	"github.com/acmehome/fieldops/internal/bg"
	"github.com/acmehome/fieldops/internal/domain"
)

func newSimStores(t *testing.T) *inmemory.Stores {
	t.Helper()
	fx, err := inmemory.DefaultFixtures()
	require.NoError(t, err)
	return inmemory.NewStores(fx)
}

func TestLocationSimulatorAdvancesEnRoute(t *testing.T) {
	stores := newSimStores(t)
	svc := app.NewTechnicianService(stores.Technicians, app.SystemClock{}, nil)

	before, err := stores.Technicians.Get("TECH003")
	require.NoError(t, err)
	require.Equal(t, domain.TechnicianEnRoute, before.Status)
	require.NotNil(t, before.Destination)
	startDist := before.Location.DistanceMiles(*before.Destination)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := app.LocationSimulator{Service: svc, Interval: 5 * time.Millisecond, Runner: bg.Async{}}
	sim.Start(ctx)

	// Wait until the simulator has moved the technician at least once.
	require.Eventually(t, func() bool {
		after, err := stores.Technicians.Get("TECH003")
		if err != nil {
			return false
		}
		return after.Location.DistanceMiles(*after.Destination) < startDist
	}, time.Second, 5*time.Millisecond)
}

func TestAdvanceEnRouteSkipsOthers(t *testing.T) {
	stores := newSimStores(t)
	svc := app.NewTechnicianService(stores.Technicians, app.SystemClock{}, nil)

	before, err := stores.Technicians.Get("TECH001")
	require.NoError(t, err)

	moved := svc.AdvanceEnRoute()
	assert.Equal(t, 1, moved)

	after, err := stores.Technicians.Get("TECH001")
	require.NoError(t, err)
	assert.Equal(t, before.Location, after.Location)
}
