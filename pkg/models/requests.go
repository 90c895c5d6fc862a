package models

import (
	"errors"
	"fmt"
)

// Pagination defaults. Limit is capped so a single request cannot drag the
// whole table over the wire.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
	MaxNameLen   = 255
)

// Page is a pagination window applied after filtering.
type Page struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// DefaultPage returns the default pagination window.
func DefaultPage() Page {
	return Page{Skip: 0, Limit: DefaultLimit}
}

// Validate checks the pagination bounds.
func (p Page) Validate() error {
	if p.Skip < 0 {
		return errors.New("skip must be >= 0")
	}
	if p.Limit <= 0 {
		return errors.New("limit must be > 0")
	}
	if p.Limit > MaxLimit {
		return fmt.Errorf("limit must be <= %d", MaxLimit)
	}
	return nil
}

// GeoPoint is a coordinate pair in degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate ranges.
func (p GeoPoint) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return errors.New("latitude must be within [-90, 90]")
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return errors.New("longitude must be within [-180, 180]")
	}
	return nil
}

// RadiusQuery is a radius search request: organizations whose building lies
// within radius kilometers of the center.
type RadiusQuery struct {
	Center GeoPoint `json:"center"`
	Radius float64  `json:"radius"`
}

// Validate checks the center coordinates and radius.
func (q RadiusQuery) Validate() error {
	if err := q.Center.Validate(); err != nil {
		return err
	}
	if q.Radius < 0 {
		return errors.New("radius must be >= 0")
	}
	return nil
}

// RectangleQuery is a bounding-rectangle search request with closed bounds.
// Longitude wraparound across the antimeridian is unsupported: min must not
// exceed max on either axis.
type RectangleQuery struct {
	MinLatitude  float64 `json:"min_latitude"`
	MinLongitude float64 `json:"min_longitude"`
	MaxLatitude  float64 `json:"max_latitude"`
	MaxLongitude float64 `json:"max_longitude"`
}

// Validate checks the bounds ranges and ordering.
func (q RectangleQuery) Validate() error {
	for _, p := range []GeoPoint{
		{Latitude: q.MinLatitude, Longitude: q.MinLongitude},
		{Latitude: q.MaxLatitude, Longitude: q.MaxLongitude},
	} {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	if q.MinLatitude > q.MaxLatitude {
		return errors.New("min_latitude must not exceed max_latitude")
	}
	if q.MinLongitude > q.MaxLongitude {
		return errors.New("min_longitude must not exceed max_longitude (antimeridian ranges are unsupported)")
	}
	return nil
}
