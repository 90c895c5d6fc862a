// Package geo provides great-circle distance and region predicates over
// coordinate pairs in degrees.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Point is a (latitude, longitude) pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle (haversine) distance between two points
// in kilometers. Inputs are assumed to be within the valid coordinate ranges;
// the boundary validates them.
func Distance(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// RadiusFilter matches points within RadiusKm kilometers of Center.
// The bound is closed: a point exactly RadiusKm away qualifies, and a zero
// radius matches only the center itself.
type RadiusFilter struct {
	Center   Point
	RadiusKm float64
}

// Contains reports whether p lies within the radius.
func (f RadiusFilter) Contains(p Point) bool {
	return Distance(f.Center, p) <= f.RadiusKm
}

// RectFilter matches points inside a bounding rectangle with closed bounds.
// It does not handle longitude wraparound across the antimeridian; callers
// must supply min <= max on both axes.
type RectFilter struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Contains reports whether p lies within the rectangle, bounds inclusive.
func (f RectFilter) Contains(p Point) bool {
	return p.Lat >= f.MinLat && p.Lat <= f.MaxLat &&
		p.Lon >= f.MinLon && p.Lon <= f.MaxLon
}
