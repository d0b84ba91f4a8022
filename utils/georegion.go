package utils

import (
	"github.com/paulmach/orb"
)

// Maricá/RJ region constants, matching the frontend map filter.
var (
	// MaricaBound is the municipal bounding box used as a soft
	// data-quality filter for map rendering: lat -23.1..-22.8,
	// lng -42.9..-42.7 (orb is lng/lat ordered).
	MaricaBound = orb.Bound{
		Min: orb.Point{-42.9, -23.1},
		Max: orb.Point{-42.7, -22.8},
	}

	// MaricaCenter is the fallback map center.
	MaricaCenter = orb.Point{-42.8186, -22.9213}
)

const (
	// DefaultZoom is used when no marker constrains the view.
	DefaultZoom = 12
	// SingleMarkerZoom is used when exactly one marker exists.
	SingleMarkerZoom = 18
	// FitPadding is the pixel padding applied around fitted bounds.
	FitPadding = 40
)

// InMarica reports whether a coordinate falls inside the municipal
// bounding box.
func InMarica(lat, lng float64) bool {
	return MaricaBound.Contains(orb.Point{lng, lat})
}

// MapFit tells a map client how to frame a marker set. Exactly one of
// Bounds or Center/Zoom drives the view: Bounds when several markers
// exist, Center+Zoom otherwise.
type MapFit struct {
	Center  [2]float64     `json:"center"` // [lat, lng]
	Zoom    int            `json:"zoom"`
	Bounds  *[2][2]float64 `json:"bounds,omitempty"` // [[south,west],[north,east]]
	Padding int            `json:"padding,omitempty"`
}

// FitMarkers computes the auto-fit directive for a set of marker
// positions: none -> regional default, one -> center on it, several ->
// fit their bounds with padding.
func FitMarkers(points []orb.Point) MapFit {
	switch len(points) {
	case 0:
		return MapFit{
			Center: [2]float64{MaricaCenter.Lat(), MaricaCenter.Lon()},
			Zoom:   DefaultZoom,
		}
	case 1:
		return MapFit{
			Center: [2]float64{points[0].Lat(), points[0].Lon()},
			Zoom:   SingleMarkerZoom,
		}
	}

	bound := orb.Bound{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bound = bound.Extend(p)
	}
	bounds := [2][2]float64{
		{bound.Min.Lat(), bound.Min.Lon()},
		{bound.Max.Lat(), bound.Max.Lon()},
	}
	return MapFit{
		Center:  [2]float64{bound.Center().Lat(), bound.Center().Lon()},
		Zoom:    DefaultZoom,
		Bounds:  &bounds,
		Padding: FitPadding,
	}
}
