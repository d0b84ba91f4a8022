package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"p9e.in/obras/models"
	"p9e.in/obras/pkg/store"
)

// GetResponsaveis lists technical leads ordered by name. Only active
// (assignable) records by default; ?all=true widens to every record so
// historical assignments keep resolving in admin views.
func GetResponsaveis(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("all") == "true"
	responsaveis, err := db.ListResponsaveis(includeInactive)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, responsaveis)
}

func GetResponsavel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid responsável id", http.StatusBadRequest)
		return
	}
	resp, err := db.GetResponsavel(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "responsável not found", http.StatusNotFound)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func CreateResponsavel(w http.ResponseWriter, r *http.Request) {
	var in models.CreateResponsavelInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp := in.Responsavel()
	if err := db.CreateResponsavel(&resp); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

type updateResponsavelReq struct {
	Nome          *string `json:"nome"`
	Email         *string `json:"email"`
	Telefone      *string `json:"telefone"`
	Especialidade *string `json:"especialidade"`
	Ativo         *bool   `json:"ativo"`
}

// UpdateResponsavel patches the provided fields. Ativo can be flipped
// back on here, which is how a deactivated lead is restored.
func UpdateResponsavel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid responsável id", http.StatusBadRequest)
		return
	}
	resp, err := db.GetResponsavel(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "responsável not found", http.StatusNotFound)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	var req updateResponsavelReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Nome != nil {
		if strings.TrimSpace(*req.Nome) == "" {
			http.Error(w, "nome é obrigatório", http.StatusBadRequest)
			return
		}
		resp.Nome = strings.TrimSpace(*req.Nome)
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			http.Error(w, "email é obrigatório", http.StatusBadRequest)
			return
		}
		resp.Email = strings.TrimSpace(*req.Email)
	}
	if req.Telefone != nil {
		resp.Telefone = strings.TrimSpace(*req.Telefone)
	}
	if req.Especialidade != nil {
		resp.Especialidade = strings.TrimSpace(*req.Especialidade)
	}
	if req.Ativo != nil {
		resp.Ativo = *req.Ativo
	}

	if err := db.SaveResponsavel(resp); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteResponsavel deactivates the lead. The row stays so obras that
// reference it keep resolving; only the assignable list shrinks.
func DeleteResponsavel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid responsável id", http.StatusBadRequest)
		return
	}
	if err := db.DeactivateResponsavel(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "responsável not found", http.StatusNotFound)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
