package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/makt28/updown/internal/storage"
)

var startTime = time.Now()

// Version is reported by /healthz. Overridden at build time.
var Version = "0.1.0"

// HealthHandler serves the /healthz endpoint.
type HealthHandler struct {
	hist *storage.History
}

func NewHealthHandler(hist *storage.History) *HealthHandler {
	return &HealthHandler{hist: hist}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        Version,
		"uptime_seconds": int(time.Since(startTime).Seconds()),
		"service_count":  h.hist.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
