package models

import (
	"errors"
	"fmt"
	"math"
)

// earthRadiusMeters is the mean Earth radius used for haversine distances.
const earthRadiusMeters = 6371000.0

// Common errors for coordinate validation.
var (
	ErrLatitudeRange  = errors.New("latitude must be in [-90, 90]")
	ErrLongitudeRange = errors.New("longitude must be in [-180, 180]")
)

// LatLon represents an immutable geographic point (WGS 84).
type LatLon struct {
	Latitude  float64 // Latitude of the point, degrees.
	Longitude float64 // Longitude of the point, degrees.
}

// NewLatLon validates the coordinate ranges and returns the point.
func NewLatLon(lat, lon float64) (LatLon, error) {
	if lat < -90 || lat > 90 {
		return LatLon{}, fmt.Errorf("%w: got %f", ErrLatitudeRange, lat)
	}
	if lon < -180 || lon > 180 {
		return LatLon{}, fmt.Errorf("%w: got %f", ErrLongitudeRange, lon)
	}
	return LatLon{Latitude: lat, Longitude: lon}, nil
}

// MustLatLon is a convenience constructor for statically known coordinates.
// It panics on out-of-range input.
func MustLatLon(lat, lon float64) LatLon {
	point, err := NewLatLon(lat, lon)
	if err != nil {
		panic(err)
	}
	return point
}

// DistanceTo returns the great-circle distance to other, in meters.
func (p LatLon) DistanceTo(other LatLon) float64 {
	lat1 := p.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := (other.Latitude - p.Latitude) * math.Pi / 180
	dLon := (other.Longitude - p.Longitude) * math.Pi / 180

	haversine := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(haversine))
}

func (p LatLon) String() string {
	return fmt.Sprintf("%f,%f", p.Latitude, p.Longitude)
}
