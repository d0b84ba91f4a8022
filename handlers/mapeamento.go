package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"p9e.in/obras/models"
	"p9e.in/obras/pkg/store"
)

// GetMapeamento returns the shape snapshot embedded on the obra.
func GetMapeamento(w http.ResponseWriter, r *http.Request) {
	obra, ok := fetchObra(w, r)
	if !ok {
		return
	}
	shapes := []models.Shape(obra.Mapeamento)
	if shapes == nil {
		shapes = []models.Shape{}
	}
	writeJSON(w, http.StatusOK, shapes)
}

// PutMapeamento overwrites the shape snapshot wholesale. The payload is
// the full desired state; there is no per-shape patching.
func PutMapeamento(w http.ResponseWriter, r *http.Request) {
	obra, ok := fetchObra(w, r)
	if !ok {
		return
	}

	var shapes []models.Shape
	if err := json.NewDecoder(r.Body).Decode(&shapes); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	for i := range shapes {
		shapes[i].Normalize()
		if err := shapes[i].Validate(); err != nil {
			http.Error(w, fmt.Sprintf("desenho %d: %v", i+1, err), http.StatusBadRequest)
			return
		}
	}

	obra.Mapeamento = shapes
	if err := db.SaveObra(obra); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, shapes)
}

// GetMapeamentoGeoJSON renders the snapshot as a GeoJSON
// FeatureCollection for consumption by external GIS tooling.
func GetMapeamentoGeoJSON(w http.ResponseWriter, r *http.Request) {
	obra, ok := fetchObra(w, r)
	if !ok {
		return
	}
	fc, err := models.ToFeatureCollection(obra.Mapeamento)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

func fetchObra(w http.ResponseWriter, r *http.Request) (*models.Obra, bool) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid obra id", http.StatusBadRequest)
		return nil, false
	}
	obra, err := db.GetObra(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "obra not found", http.StatusNotFound)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return obra, true
}
