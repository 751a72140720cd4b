package web

import (
	"net/http"
	"strconv"

	"github.com/makt28/updown/internal/storage"
)

const defaultEventLimit = 50

// Handlers serves the JSON status API.
type Handlers struct {
	hist *storage.History
}

func NewHandlers(hist *storage.History) *Handlers {
	return &Handlers{hist: hist}
}

// APIServices lists every service summary, or one when ?service= is given.
func (h *Handlers) APIServices(w http.ResponseWriter, r *http.Request) {
	if svc := r.URL.Query().Get("service"); svc != "" {
		s := h.hist.GetService(svc)
		if s == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "service not found"})
			return
		}
		writeJSON(w, http.StatusOK, s)
		return
	}
	writeJSON(w, http.StatusOK, h.hist.GetAll())
}

// APIEvents lists recent transitions, newest first. ?limit=N, default 50, 0 for all.
func (h *Handlers) APIEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, h.hist.Events(limit))
}
