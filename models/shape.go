package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ShapeType tags the geometry variant of a map annotation. The type is
// assigned when the shape is drawn and carried as data; it is never
// re-derived from a rendering object.
type ShapeType string

const (
	ShapeMarker    ShapeType = "marker"
	ShapePolygon   ShapeType = "polygon"
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapeLine      ShapeType = "line"
)

func (t ShapeType) Valid() bool {
	switch t {
	case ShapeMarker, ShapePolygon, ShapeRectangle, ShapeCircle, ShapeLine:
		return true
	}
	return false
}

// DefaultColor is the per-type drawing color used unless the user picks
// another one.
func (t ShapeType) DefaultColor() string {
	switch t {
	case ShapePolygon:
		return "#3B82F6"
	case ShapeRectangle:
		return "#10B981"
	case ShapeCircle:
		return "#F59E0B"
	case ShapeMarker:
		return "#EF4444"
	case ShapeLine:
		return "#8B5CF6"
	}
	return "#6B7280"
}

// LatLng is a geographic coordinate serialized as a [lat, lng] pair,
// matching the stored document format.
type LatLng struct {
	Lat float64
	Lng float64
}

func (p LatLng) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lng})
}

func (p *LatLng) UnmarshalJSON(b []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("LatLng: expected [lat, lng] pair: %w", err)
	}
	p.Lat, p.Lng = pair[0], pair[1]
	return nil
}

func (p LatLng) Round() LatLng {
	return LatLng{Lat: Round6(p.Lat), Lng: Round6(p.Lng)}
}

// Point converts to orb's lng/lat ordering.
func (p LatLng) Point() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// Bounds is a normalized rectangle, serialized as [[south, west],
// [north, east]].
type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
}

func (b Bounds) MarshalJSON() ([]byte, error) {
	return json.Marshal([2][2]float64{{b.South, b.West}, {b.North, b.East}})
}

func (b *Bounds) UnmarshalJSON(data []byte) error {
	var corners [2][2]float64
	if err := json.Unmarshal(data, &corners); err != nil {
		return fmt.Errorf("Bounds: expected [[south,west],[north,east]]: %w", err)
	}
	b.South, b.West = corners[0][0], corners[0][1]
	b.North, b.East = corners[1][0], corners[1][1]
	return nil
}

// NewBounds builds normalized bounds from two opposite corners in any
// order.
func NewBounds(a, c LatLng) Bounds {
	return Bounds{
		South: math.Min(a.Lat, c.Lat),
		West:  math.Min(a.Lng, c.Lng),
		North: math.Max(a.Lat, c.Lat),
		East:  math.Max(a.Lng, c.Lng),
	}
}

func (b Bounds) Round() Bounds {
	return Bounds{
		South: Round6(b.South),
		West:  Round6(b.West),
		North: Round6(b.North),
		East:  Round6(b.East),
	}
}

func (b Bounds) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.West, b.South}, Max: orb.Point{b.East, b.North}}
}

// DefaultCircleRadius is the radius in meters of a circle created by a
// single click.
const DefaultCircleRadius = 50.0

// Shape is one user-drawn map annotation embedded on a work order.
// Exactly the geometry fields for its type are set:
//
//	marker     Position
//	polygon    Coordinates (>= 3 vertices)
//	line       Coordinates (>= 2 vertices)
//	rectangle  Bounds
//	circle     Center + Radius
type Shape struct {
	ID          string    `json:"id"`
	Tipo        ShapeType `json:"type"`
	Position    *LatLng   `json:"position,omitempty"`
	Coordinates []LatLng  `json:"coordinates,omitempty"`
	Bounds      *Bounds   `json:"bounds,omitempty"`
	Center      *LatLng   `json:"center,omitempty"`
	Radius      float64   `json:"radius,omitempty"`
	Color       string    `json:"color,omitempty"`
	Produto     string    `json:"produto,omitempty"`
	Observacao  string    `json:"observacao,omitempty"`
}

// NewShapeID generates the client-style time-based shape id.
func NewShapeID(at time.Time) string {
	return "shape-" + strconv.FormatInt(at.UnixMilli(), 10)
}

// Normalize rounds all coordinates to 6 decimals, normalizes rectangle
// corners to min/max form and fills the type default color when none
// was chosen.
func (s *Shape) Normalize() {
	if s.Color == "" {
		s.Color = s.Tipo.DefaultColor()
	}
	if s.Position != nil {
		p := s.Position.Round()
		s.Position = &p
	}
	for i := range s.Coordinates {
		s.Coordinates[i] = s.Coordinates[i].Round()
	}
	if s.Bounds != nil {
		b := NewBounds(
			LatLng{Lat: s.Bounds.South, Lng: s.Bounds.West},
			LatLng{Lat: s.Bounds.North, Lng: s.Bounds.East},
		).Round()
		s.Bounds = &b
	}
	if s.Center != nil {
		c := s.Center.Round()
		s.Center = &c
	}
}

func (s *Shape) Validate() error {
	if !s.Tipo.Valid() {
		return fmt.Errorf("tipo de desenho desconhecido %q", s.Tipo)
	}
	switch s.Tipo {
	case ShapeMarker:
		if s.Position == nil {
			return errors.New("marcador sem posição")
		}
	case ShapePolygon:
		if len(s.Coordinates) < 3 {
			return errors.New("polígono precisa de pelo menos 3 vértices")
		}
	case ShapeLine:
		if len(s.Coordinates) < 2 {
			return errors.New("linha precisa de pelo menos 2 vértices")
		}
	case ShapeRectangle:
		if s.Bounds == nil {
			return errors.New("retângulo sem limites")
		}
	case ShapeCircle:
		if s.Center == nil {
			return errors.New("círculo sem centro")
		}
		if s.Radius <= 0 {
			return errors.New("círculo com raio inválido")
		}
	}
	return nil
}

// Geometry converts the shape to an orb geometry. Circles become their
// center point; the radius travels as a feature property.
func (s *Shape) Geometry() (orb.Geometry, error) {
	switch s.Tipo {
	case ShapeMarker:
		return s.Position.Point(), nil
	case ShapeCircle:
		return s.Center.Point(), nil
	case ShapeLine:
		ls := make(orb.LineString, len(s.Coordinates))
		for i, p := range s.Coordinates {
			ls[i] = p.Point()
		}
		return ls, nil
	case ShapePolygon:
		ring := make(orb.Ring, 0, len(s.Coordinates)+1)
		for _, p := range s.Coordinates {
			ring = append(ring, p.Point())
		}
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}
		return orb.Polygon{ring}, nil
	case ShapeRectangle:
		return s.Bounds.Bound().ToPolygon(), nil
	}
	return nil, fmt.Errorf("tipo de desenho desconhecido %q", s.Tipo)
}

// ToFeatureCollection renders a shape snapshot as GeoJSON. Invalid
// shapes abort the conversion; snapshots are validated on write, so a
// failure here means the stored document was tampered with.
func ToFeatureCollection(shapes []Shape) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for i := range shapes {
		s := &shapes[i]
		geom, err := s.Geometry()
		if err != nil {
			return nil, fmt.Errorf("desenho %s: %w", s.ID, err)
		}
		f := geojson.NewFeature(geom)
		f.Properties["id"] = s.ID
		f.Properties["type"] = string(s.Tipo)
		f.Properties["color"] = s.Color
		if s.Tipo == ShapeCircle {
			f.Properties["radius"] = s.Radius
		}
		if s.Produto != "" {
			f.Properties["produto"] = s.Produto
		}
		if s.Observacao != "" {
			f.Properties["observacao"] = s.Observacao
		}
		fc.Append(f)
	}
	return fc, nil
}

// Round6 truncates a coordinate to the 6-decimal precision used
// throughout the app (~11 cm at the equator).
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
