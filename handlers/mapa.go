package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/paulmach/orb"

	"p9e.in/obras/models"
	"p9e.in/obras/utils"
)

// ObraMarker is one map pin in the fleet view.
type ObraMarker struct {
	ID          string     `json:"id"`
	OS          string     `json:"os"`
	Position    [2]float64 `json:"position"` // [lat, lng]
	Color       string     `json:"color"`
	Status      string     `json:"status"`
	StatusLabel string     `json:"statusLabel"`
	Descricao   string     `json:"descricao"`
	Endereco    string     `json:"endereco"`
	Distrito    string     `json:"distrito"`
	Progresso   int        `json:"progresso"`
}

// TileLayer describes one base-map option offered to the client.
type TileLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// MapaObras is the complete fleet-map payload: markers, the auto-fit
// directive and the available base layers.
type MapaObras struct {
	Markers []ObraMarker `json:"markers"`
	Fit     utils.MapFit `json:"fit"`
	Layers  []TileLayer  `json:"layers"`
}

var tileLayers = []TileLayer{
	{
		Name:        "Ruas",
		URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors",
	},
	{
		Name:        "Satélite",
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "© Esri",
	},
}

// BuildMapaObras assembles the fleet-map payload from a record set.
// Orders without coordinates never become markers; coordinates outside
// the municipal box are treated as data errors and dropped with a log
// line rather than stretching the auto-fit across the globe.
func BuildMapaObras(obras []models.Obra) MapaObras {
	markers := make([]ObraMarker, 0, len(obras))
	points := make([]orb.Point, 0, len(obras))
	for i := range obras {
		o := &obras[i]
		if !o.HasCoordinates() {
			continue
		}
		if !utils.InMarica(o.Latitude, o.Longitude) {
			log.Printf("mapa: obra %s (%s) fora da região: (%.6f, %.6f)", o.OS, o.ID, o.Latitude, o.Longitude)
			continue
		}
		markers = append(markers, ObraMarker{
			ID:          o.ID.String(),
			OS:          o.OS,
			Position:    [2]float64{o.Latitude, o.Longitude},
			Color:       o.Status.MarkerColor(),
			Status:      string(o.Status),
			StatusLabel: o.Status.Label(),
			Descricao:   o.DescricaoServico,
			Endereco:    o.Endereco,
			Distrito:    o.Distrito,
			Progresso:   o.Progresso,
		})
		points = append(points, orb.Point{o.Longitude, o.Latitude})
	}
	return MapaObras{
		Markers: markers,
		Fit:     utils.FitMarkers(points),
		Layers:  tileLayers,
	}
}

// GetMapaObras serves the fleet map. ?status= narrows the marker set;
// the auto-fit then frames only the filtered markers.
func GetMapaObras(w http.ResponseWriter, r *http.Request) {
	obras, err := db.ListObras()
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if status := models.ObraStatus(r.URL.Query().Get("status")); status != "" {
		if !status.Valid() {
			http.Error(w, fmt.Sprintf("status desconhecido %q", status), http.StatusBadRequest)
			return
		}
		filtered := obras[:0]
		for _, o := range obras {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		obras = filtered
	}
	writeJSON(w, http.StatusOK, BuildMapaObras(obras))
}
