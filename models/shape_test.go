package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestShapeValidate(t *testing.T) {
	p := LatLng{Lat: -22.92, Lng: -42.82}
	tests := []struct {
		name    string
		shape   Shape
		wantErr bool
	}{
		{"marker ok", Shape{Tipo: ShapeMarker, Position: &p}, false},
		{"marker without position", Shape{Tipo: ShapeMarker}, true},
		{"polygon ok", Shape{Tipo: ShapePolygon, Coordinates: []LatLng{p, {Lat: -22.93, Lng: -42.82}, {Lat: -22.93, Lng: -42.81}}}, false},
		{"polygon with 2 vertices", Shape{Tipo: ShapePolygon, Coordinates: []LatLng{p, p}}, true},
		{"line ok", Shape{Tipo: ShapeLine, Coordinates: []LatLng{p, {Lat: -22.93, Lng: -42.81}}}, false},
		{"line with 1 vertex", Shape{Tipo: ShapeLine, Coordinates: []LatLng{p}}, true},
		{"rectangle ok", Shape{Tipo: ShapeRectangle, Bounds: &Bounds{South: -22.93, West: -42.83, North: -22.92, East: -42.82}}, false},
		{"rectangle without bounds", Shape{Tipo: ShapeRectangle}, true},
		{"circle ok", Shape{Tipo: ShapeCircle, Center: &p, Radius: 50}, false},
		{"circle without radius", Shape{Tipo: ShapeCircle, Center: &p}, true},
		{"unknown type", Shape{Tipo: "triangle"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shape.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShapeNormalizeDefaultColor(t *testing.T) {
	tests := []struct {
		tipo ShapeType
		want string
	}{
		{ShapePolygon, "#3B82F6"},
		{ShapeRectangle, "#10B981"},
		{ShapeCircle, "#F59E0B"},
		{ShapeMarker, "#EF4444"},
		{ShapeLine, "#8B5CF6"},
	}
	for _, tt := range tests {
		s := Shape{Tipo: tt.tipo}
		s.Normalize()
		if s.Color != tt.want {
			t.Errorf("%s default color = %q, want %q", tt.tipo, s.Color, tt.want)
		}
	}

	s := Shape{Tipo: ShapeMarker, Color: "#123456"}
	s.Normalize()
	if s.Color != "#123456" {
		t.Errorf("Normalize overwrote explicit color: %q", s.Color)
	}
}

func TestShapeNormalizeBounds(t *testing.T) {
	// Corners supplied north-east first must come out south-west first.
	b := NewBounds(LatLng{Lat: -22.90, Lng: -42.80}, LatLng{Lat: -22.95, Lng: -42.85})
	if b.South != -22.95 || b.West != -42.85 || b.North != -22.90 || b.East != -42.80 {
		t.Errorf("NewBounds not normalized: %+v", b)
	}

	s := Shape{Tipo: ShapeRectangle, Bounds: &Bounds{South: -22.90, West: -42.80, North: -22.95, East: -42.85}}
	s.Normalize()
	if s.Bounds.South != -22.95 || s.Bounds.North != -22.90 {
		t.Errorf("Normalize left inverted bounds: %+v", *s.Bounds)
	}
}

func TestLatLngJSON(t *testing.T) {
	p := LatLng{Lat: -22.9213, Lng: -42.8186}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[-22.9213,-42.8186]" {
		t.Errorf("marshal = %s", b)
	}

	var back LatLng
	if err := json.Unmarshal([]byte("[-23.1,-42.7]"), &back); err != nil {
		t.Fatal(err)
	}
	if back.Lat != -23.1 || back.Lng != -42.7 {
		t.Errorf("unmarshal = %+v", back)
	}

	if err := json.Unmarshal([]byte(`{"lat":1}`), &back); err == nil {
		t.Error("expected error for object form")
	}
}

func TestBoundsJSON(t *testing.T) {
	b := Bounds{South: -22.95, West: -42.85, North: -22.90, East: -42.80}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	want := "[[-22.95,-42.85],[-22.9,-42.8]]"
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var back Bounds
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != b {
		t.Errorf("roundtrip = %+v, want %+v", back, b)
	}
}

func TestNewShapeID(t *testing.T) {
	at := time.UnixMilli(1718000000000)
	if got := NewShapeID(at); got != "shape-1718000000000" {
		t.Errorf("NewShapeID = %q", got)
	}
}

func TestToFeatureCollection(t *testing.T) {
	center := LatLng{Lat: -22.92, Lng: -42.82}
	shapes := []Shape{
		{ID: "shape-1", Tipo: ShapeCircle, Center: &center, Radius: 75, Color: "#F59E0B", Produto: "asfalto"},
		{ID: "shape-2", Tipo: ShapePolygon, Color: "#3B82F6", Coordinates: []LatLng{
			{Lat: -22.92, Lng: -42.82},
			{Lat: -22.93, Lng: -42.82},
			{Lat: -22.93, Lng: -42.81},
		}},
	}

	fc, err := ToFeatureCollection(shapes)
	if err != nil {
		t.Fatal(err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("features = %d, want 2", len(fc.Features))
	}

	circle := fc.Features[0]
	if circle.Properties["id"] != "shape-1" || circle.Properties["radius"] != 75.0 {
		t.Errorf("circle properties = %v", circle.Properties)
	}
	if circle.Properties["produto"] != "asfalto" {
		t.Errorf("produto missing: %v", circle.Properties)
	}

	// The polygon ring must be closed even though the input isn't.
	poly := fc.Features[1].Geometry
	geomJSON, _ := json.Marshal(poly)
	var decoded struct {
		Coordinates [][][2]float64 `json:"coordinates"` // not used, presence check only
	}
	_ = json.Unmarshal(geomJSON, &decoded)
	if poly.GeoJSONType() != "Polygon" {
		t.Errorf("geometry type = %s", poly.GeoJSONType())
	}
}

func TestToFeatureCollectionInvalidShape(t *testing.T) {
	if _, err := ToFeatureCollection([]Shape{{ID: "bad", Tipo: "blob"}}); err == nil {
		t.Error("expected error for unknown shape type")
	}
}

func TestRound6(t *testing.T) {
	if got := Round6(-22.92134567); got != -22.921346 {
		t.Errorf("Round6 = %v", got)
	}
}
