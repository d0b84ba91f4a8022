package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"p9e.in/obras/models"
	"p9e.in/obras/pkg/store"
)

// lifecycleReq is the shared payload of the three transition endpoints.
// Motivo is mandatory for every transition; Progresso is only honored
// when starting a planned order (an initial completion estimate).
type lifecycleReq struct {
	Motivo    string `json:"motivo"`
	Progresso *int   `json:"progresso,omitempty"`
}

func StartObra(w http.ResponseWriter, r *http.Request) {
	applyLifecycle(w, r, models.ActionStart)
}

func PauseObra(w http.ResponseWriter, r *http.Request) {
	applyLifecycle(w, r, models.ActionPause)
}

func CompleteObra(w http.ResponseWriter, r *http.Request) {
	applyLifecycle(w, r, models.ActionComplete)
}

func applyLifecycle(w http.ResponseWriter, r *http.Request, action models.LifecycleAction) {
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

	var req lifecycleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	motivo := strings.TrimSpace(req.Motivo)
	if motivo == "" {
		http.Error(w, "motivo é obrigatório", http.StatusBadRequest)
		return
	}

	next, err := models.Transition(obra.Status, action)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	// Progress policy: a fresh start may carry an initial percentage,
	// resuming keeps whatever was reached, completing always lands on
	// 100.
	switch action {
	case models.ActionStart:
		if obra.Status == models.StatusPlanejada && req.Progresso != nil {
			p := *req.Progresso
			if p < 0 || p > 100 {
				http.Error(w, "progresso deve estar entre 0 e 100", http.StatusBadRequest)
				return
			}
			obra.Progresso = p
		}
	case models.ActionComplete:
		obra.Progresso = 100
	}

	obra.Observacao = models.AppendMotivo(obra.Observacao, time.Now(), action, motivo)
	obra.Status = next

	if err := db.SaveObra(obra); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, obra)
}
