// Package handlers holds the HTTP layer of the obras dashboard. All
// record access goes through the shared store so every mutation fans
// out to stream subscribers.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/obras/pkg/store"
)

var db *store.Store

// Init wires the handlers to the record store. Must be called once
// before the router serves traffic.
func Init(s *store.Store) {
	db = s
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pathID extracts the {id} route variable as a UUID.
func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}
