package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geodirhq/geodir/pkg/geo"
)

func TestDistance(t *testing.T) {
	nyc := geo.Point{Lat: 40.7128, Lon: -74.0060}
	sf := geo.Point{Lat: 37.7749, Lon: -122.4194}

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, geo.Distance(nyc, nyc))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, geo.Distance(nyc, sf), geo.Distance(sf, nyc), 1e-9)
	})

	t.Run("known distance NYC to SF", func(t *testing.T) {
		// Great-circle distance is roughly 4130 km.
		d := geo.Distance(nyc, sf)
		assert.InDelta(t, 4130, d, 20)
	})

	t.Run("quarter meridian", func(t *testing.T) {
		d := geo.Distance(geo.Point{Lat: 0, Lon: 0}, geo.Point{Lat: 90, Lon: 0})
		assert.InDelta(t, 10007.5, d, 5)
	})
}

func TestRadiusFilter(t *testing.T) {
	center := geo.Point{Lat: 40.7128, Lon: -74.0060}

	t.Run("contains center at zero radius", func(t *testing.T) {
		f := geo.RadiusFilter{Center: center, RadiusKm: 0}
		assert.True(t, f.Contains(center))
	})

	t.Run("excludes everything else at zero radius", func(t *testing.T) {
		f := geo.RadiusFilter{Center: center, RadiusKm: 0}
		assert.False(t, f.Contains(geo.Point{Lat: 40.7129, Lon: -74.0060}))
	})

	t.Run("includes nearby point", func(t *testing.T) {
		f := geo.RadiusFilter{Center: center, RadiusKm: 5}
		assert.True(t, f.Contains(geo.Point{Lat: 40.7308, Lon: -73.9973}))
	})

	t.Run("excludes distant point", func(t *testing.T) {
		f := geo.RadiusFilter{Center: geo.Point{Lat: 0, Lon: 0}, RadiusKm: 1}
		assert.False(t, f.Contains(center))
	})
}

func TestRectFilter(t *testing.T) {
	f := geo.RectFilter{MinLat: 37, MinLon: -123, MaxLat: 41, MaxLon: -73}

	t.Run("contains interior point", func(t *testing.T) {
		assert.True(t, f.Contains(geo.Point{Lat: 40.7128, Lon: -74.0060}))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		assert.True(t, f.Contains(geo.Point{Lat: 37, Lon: -123}))
		assert.True(t, f.Contains(geo.Point{Lat: 41, Lon: -73}))
	})

	t.Run("excludes point outside", func(t *testing.T) {
		assert.False(t, f.Contains(geo.Point{Lat: 47.6062, Lon: -122.3321}))
		assert.False(t, f.Contains(geo.Point{Lat: 40, Lon: -72.9}))
	})
}
