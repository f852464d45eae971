package domain

import (
	"fmt"
	"math"
)

// earthRadiusMiles is the radius used for great-circle distances.
const earthRadiusMiles = 3956.0

// GeoPoint is a latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks the coordinate ranges.
func (p GeoPoint) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrCoordinatesInvalid, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v", ErrCoordinatesInvalid, p.Lon)
	}
	return nil
}

// DistanceMiles returns the great-circle distance to other in miles,
// using the Haversine formula.
func (p GeoPoint) DistanceMiles(other GeoPoint) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLon := (other.Lon - p.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// Interpolate returns the point a fraction f of the way toward other along a
// straight line in coordinate space. Good enough for demo waypoints over
// city-scale distances.
func (p GeoPoint) Interpolate(other GeoPoint, f float64) GeoPoint {
	return GeoPoint{
		Lat: p.Lat + (other.Lat-p.Lat)*f,
		Lon: p.Lon + (other.Lon-p.Lon)*f,
	}
}
