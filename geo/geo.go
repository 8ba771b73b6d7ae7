// Package geo holds the distance primitives shared by duplicate detection
// and the nearby-issues query. Both must use the same metric instance so a
// point that counts as "nearby" also counts as a duplicate candidate.
package geo

import "math"

// Point is a coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Metric computes a scalar distance between two points. Implementations are
// pure; there are no error paths.
type Metric interface {
	Distance(a, b Point) float64
}

const (
	// DuplicateRadiusDeg is the duplicate-suppression radius in planar
	// degree distance, roughly 50 meters at city latitudes.
	DuplicateRadiusDeg = 0.0005

	// DegreesPerKm converts an approximate kilometer radius to planar
	// degree distance for nearby queries. It is a rough fixed factor,
	// not a geodesic conversion.
	DegreesPerKm = 0.01
)

// PlanarDegrees is the default metric: Euclidean distance over raw degree
// deltas. It is deliberately not a great-circle calculation; at the
// sub-city scale this system targets the error is acceptable, and changing
// the formula changes which issues count as duplicates.
type PlanarDegrees struct{}

func (PlanarDegrees) Distance(a, b Point) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// earthRadiusKm is the mean Earth radius used by Haversine.
const earthRadiusKm = 6371.0

// Haversine returns great-circle distance in kilometers. It is provided as
// an alternative strategy but is not wired into the engine: its unit and
// thresholds differ from PlanarDegrees, so swapping it in is an explicit
// operator decision.
type Haversine struct{}

func (Haversine) Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
