package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmehome/fieldops/internal/domain"
)

func TestTechnicianValidate(t *testing.T) {
	t.Parallel()

	tech := domain.Technician{
		ID:          "TECH001",
		Name:        "Mike Rodriguez",
		Specialties: []string{"refrigerator", "dishwasher"},
		Location:    domain.GeoPoint{Lat: 47.61, Lon: -122.33},
		Status:      domain.TechnicianAvailable,
		Phone:       "555-020-1234",
		Rating:      4.8,
	}
	require.NoError(t, tech.Validate())

	bad := tech
	bad.Specialties = nil
	assert.ErrorIs(t, bad.Validate(), domain.ErrTechnicianInvalid)

	bad = tech
	bad.Status = "on_break"
	assert.ErrorIs(t, bad.Validate(), domain.ErrTechnicianInvalid)

	bad = tech
	bad.Location.Lat = 91
	assert.ErrorIs(t, bad.Validate(), domain.ErrTechnicianInvalid)
}

func TestTechnicianHasSpecialty(t *testing.T) {
	t.Parallel()

	tech := domain.Technician{Specialties: []string{"Washing_Machine", "dryer"}}
	assert.True(t, tech.HasSpecialty("washing_machine"))
	assert.True(t, tech.HasSpecialty("DRYER"))
	assert.False(t, tech.HasSpecialty("oven"))
}

func TestGeoPointValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, domain.GeoPoint{Lat: -90, Lon: 180}.Validate())
	assert.ErrorIs(t, domain.GeoPoint{Lat: -90.5, Lon: 0}.Validate(), domain.ErrCoordinatesInvalid)
	assert.ErrorIs(t, domain.GeoPoint{Lat: 0, Lon: 180.5}.Validate(), domain.ErrCoordinatesInvalid)
}

func TestGeoPointDistanceMiles(t *testing.T) {
	t.Parallel()

	seattle := domain.GeoPoint{Lat: 47.6062, Lon: -122.3321}
	portland := domain.GeoPoint{Lat: 45.5152, Lon: -122.6784}

	d := seattle.DistanceMiles(portland)
	assert.InDelta(t, 145, d, 5, "Seattle to Portland is roughly 145 miles")
	assert.Zero(t, seattle.DistanceMiles(seattle))
}

func TestGeoPointInterpolate(t *testing.T) {
	t.Parallel()

	a := domain.GeoPoint{Lat: 0, Lon: 0}
	b := domain.GeoPoint{Lat: 10, Lon: 20}

	mid := a.Interpolate(b, 0.5)
	assert.InDelta(t, 5, mid.Lat, 1e-9)
	assert.InDelta(t, 10, mid.Lon, 1e-9)
	assert.Equal(t, a, a.Interpolate(b, 0))
	assert.Equal(t, b, a.Interpolate(b, 1))
}
