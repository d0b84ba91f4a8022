package utils

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestInMarica(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"city center", -22.9213, -42.8186, true},
		{"south-west corner", -23.1, -42.9, true},
		{"north of the box", -22.7, -42.8, false},
		{"rio de janeiro", -22.9068, -43.1729, false},
		{"wrong hemisphere", 22.92, -42.82, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InMarica(tt.lat, tt.lng); got != tt.want {
				t.Errorf("InMarica(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}

func TestFitMarkersEmpty(t *testing.T) {
	fit := FitMarkers(nil)
	if fit.Center != [2]float64{-22.9213, -42.8186} {
		t.Errorf("center = %v", fit.Center)
	}
	if fit.Zoom != DefaultZoom {
		t.Errorf("zoom = %d, want %d", fit.Zoom, DefaultZoom)
	}
	if fit.Bounds != nil {
		t.Error("bounds should be nil for empty set")
	}
}

func TestFitMarkersSingle(t *testing.T) {
	fit := FitMarkers([]orb.Point{{-42.85, -22.95}})
	if fit.Center != [2]float64{-22.95, -42.85} {
		t.Errorf("center = %v", fit.Center)
	}
	if fit.Zoom != SingleMarkerZoom {
		t.Errorf("zoom = %d, want %d", fit.Zoom, SingleMarkerZoom)
	}
	if fit.Bounds != nil {
		t.Error("bounds should be nil for single marker")
	}
}

func TestFitMarkersMultiple(t *testing.T) {
	fit := FitMarkers([]orb.Point{
		{-42.85, -22.95},
		{-42.75, -22.85},
		{-42.80, -22.90},
	})
	if fit.Bounds == nil {
		t.Fatal("bounds expected for multiple markers")
	}
	want := [2][2]float64{{-22.95, -42.85}, {-22.85, -42.75}}
	if *fit.Bounds != want {
		t.Errorf("bounds = %v, want %v", *fit.Bounds, want)
	}
	if fit.Padding != FitPadding {
		t.Errorf("padding = %d, want %d", fit.Padding, FitPadding)
	}
	if fit.Center != [2]float64{-22.9, -42.8} {
		t.Errorf("center = %v", fit.Center)
	}
}
