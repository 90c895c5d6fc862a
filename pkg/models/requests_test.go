package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageValidate(t *testing.T) {
	tests := []struct {
		name    string
		page    Page
		wantErr bool
	}{
		{"defaults", DefaultPage(), false},
		{"max limit", Page{Skip: 0, Limit: MaxLimit}, false},
		{"negative skip", Page{Skip: -1, Limit: 10}, true},
		{"zero limit", Page{Skip: 0, Limit: 0}, true},
		{"negative limit", Page{Skip: 0, Limit: -5}, true},
		{"limit above cap", Page{Skip: 0, Limit: MaxLimit + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRadiusQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   RadiusQuery
		wantErr bool
	}{
		{"valid", RadiusQuery{Center: GeoPoint{Latitude: 40.7, Longitude: -74.0}, Radius: 5}, false},
		{"zero radius", RadiusQuery{Center: GeoPoint{}, Radius: 0}, false},
		{"negative radius", RadiusQuery{Center: GeoPoint{}, Radius: -1}, true},
		{"latitude out of range", RadiusQuery{Center: GeoPoint{Latitude: 91}, Radius: 1}, true},
		{"longitude out of range", RadiusQuery{Center: GeoPoint{Longitude: -181}, Radius: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRectangleQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   RectangleQuery
		wantErr bool
	}{
		{
			"valid",
			RectangleQuery{MinLatitude: 40, MinLongitude: -75, MaxLatitude: 41, MaxLongitude: -73},
			false,
		},
		{
			"point rectangle",
			RectangleQuery{MinLatitude: 40, MinLongitude: -75, MaxLatitude: 40, MaxLongitude: -75},
			false,
		},
		{
			"inverted latitude",
			RectangleQuery{MinLatitude: 41, MinLongitude: -75, MaxLatitude: 40, MaxLongitude: -73},
			true,
		},
		{
			"antimeridian crossing",
			RectangleQuery{MinLatitude: 40, MinLongitude: 170, MaxLatitude: 41, MaxLongitude: -170},
			true,
		},
		{
			"latitude out of range",
			RectangleQuery{MinLatitude: -95, MinLongitude: 0, MaxLatitude: 0, MaxLongitude: 0},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
