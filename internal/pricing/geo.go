package pricing

import (
	"errors"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// ErrInvalidCoordinate is returned when a latitude or longitude is outside
// its valid range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// GeoPoint is a WGS84 position in decimal degrees.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Validate checks that the point is within valid latitude/longitude ranges.
func (p GeoPoint) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return ErrInvalidCoordinate
	}
	if p.Lng < -180 || p.Lng > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// Distance returns the great-circle distance between two points in
// kilometers, using the haversine formula. The result is unrounded; callers
// that display it should round at the edge.
func Distance(a, b GeoPoint) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
