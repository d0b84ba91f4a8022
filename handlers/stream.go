package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 30 * time.Second

// StreamObras pushes the obra list over Server-Sent Events: the full
// current set on connect, then a fresh full set after every mutation.
// Deliveries are full replaces, so a dropped intermediate update is
// invisible to the client.
func StreamObras(w http.ResponseWriter, r *http.Request) {
	// Subscribe before reading the snapshot so a write landing in
	// between is not lost.
	ch, unsubscribe := db.SubscribeObras()
	defer unsubscribe()

	obras, err := db.ListObras()
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	flusher, ok := beginSSE(w)
	if !ok {
		return
	}
	if !writeEvent(w, "obras", obras) {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case v := <-ch:
			if !writeEvent(w, "obras", v) {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}

// StreamResponsaveis pushes the active technical-lead list the same way.
func StreamResponsaveis(w http.ResponseWriter, r *http.Request) {
	ch, unsubscribe := db.SubscribeResponsaveis()
	defer unsubscribe()

	responsaveis, err := db.ListResponsaveis(false)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	flusher, ok := beginSSE(w)
	if !ok {
		return
	}
	if !writeEvent(w, "responsaveis", responsaveis) {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case v := <-ch:
			if !writeEvent(w, "responsaveis", v) {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}

func beginSSE(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	return flusher, true
}

func writeEvent(w http.ResponseWriter, event string, v interface{}) bool {
	data, err := json.Marshal(v)
	if err != nil {
		return false
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err == nil
}
