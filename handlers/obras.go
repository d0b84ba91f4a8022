package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"p9e.in/obras/models"
	"p9e.in/obras/pkg/store"
	"p9e.in/obras/utils"
)

// GetObras lists all work orders newest-first. ?status= narrows to one
// lifecycle state.
func GetObras(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, obras)
}

func GetObra(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid obra id", http.StatusBadRequest)
		return
	}
	obra, err := db.GetObra(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "obra not found", http.StatusNotFound)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, obra)
}

// validateLocation enforces the regional bounding box when coordinates
// are present and logs (without rejecting) an unknown bairro.
func validateLocation(lat, lng float64, distrito string) error {
	if (lat != 0 || lng != 0) && !utils.InMarica(lat, lng) {
		return fmt.Errorf("coordenadas (%.6f, %.6f) fora da região de Maricá", lat, lng)
	}
	if distrito != "" && !models.KnownBairro(distrito) {
		log.Printf("obras: bairro %q não consta na lista de Maricá", distrito)
	}
	return nil
}

// resolveResponsavel checks an assignment target exists and is active.
func resolveResponsavel(in *models.CreateObraInput) error {
	if in.ResponsavelTecnicoID == nil {
		return nil
	}
	resp, err := db.GetResponsavel(*in.ResponsavelTecnicoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.New("responsável técnico não encontrado")
		}
		return err
	}
	if !resp.Ativo {
		return errors.New("responsável técnico está inativo")
	}
	return nil
}

// CreateObra registers a new work order. Status and progress are forced
// to planejada/0 regardless of payload.
func CreateObra(w http.ResponseWriter, r *http.Request) {
	var in models.CreateObraInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateLocation(in.Latitude, in.Longitude, in.Distrito); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := resolveResponsavel(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	obra := in.Obra()
	if err := db.CreateObra(&obra); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, obra)
}

// UpdateObra replaces the editable fields of an existing order. Status,
// progress, mapeamento and fotos are untouched here; they have their own
// endpoints.
func UpdateObra(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid obra id", http.StatusBadRequest)
		return
	}
	obra, err := db.GetObra(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "obra not found", http.StatusNotFound)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	var in models.CreateObraInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateLocation(in.Latitude, in.Longitude, in.Distrito); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := resolveResponsavel(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := in.Obra()
	updated.ID = obra.ID
	updated.Status = obra.Status
	updated.Progresso = obra.Progresso
	updated.Mapeamento = obra.Mapeamento
	updated.Fotos = obra.Fotos
	updated.CreatedAt = obra.CreatedAt
	// Lifecycle annotations live in the observação trail; an empty
	// payload field means "unchanged", not "erase".
	if in.Observacao == "" {
		updated.Observacao = obra.Observacao
	}

	if err := db.SaveObra(&updated); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteObra removes the order permanently, embedded documents included.
func DeleteObra(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid obra id", http.StatusBadRequest)
		return
	}
	if err := db.DeleteObra(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "obra not found", http.StatusNotFound)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
