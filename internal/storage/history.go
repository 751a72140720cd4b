package storage

import (
	"sync"
	"time"
)

// DefaultMaxEvents bounds the number of transitions kept in memory.
const DefaultMaxEvents = 500

// Event records a state transition of one service.
type Event struct {
	ID      string    `json:"id"`
	Service string    `json:"service"`
	Healthy bool      `json:"healthy"`
	Message string    `json:"message"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

// ServiceHistory is the runtime summary of one service.
type ServiceHistory struct {
	Service        string  `json:"service"`
	IsUp           bool    `json:"is_up"`
	Checks         int     `json:"checks"`
	UpChecks       int     `json:"up_checks"`
	Uptime         float64 `json:"uptime"`
	LastCheckTime  int64   `json:"last_check_time"`
	LastStatusCode int     `json:"last_status_code"`
	LatencyMs      int     `json:"latency_ms"`
}

// History keeps probe summaries and recent transitions in memory.
// It lives as long as the process; nothing is written to disk.
type History struct {
	mu        sync.RWMutex
	services  map[string]*ServiceHistory
	order     []string
	events    []Event
	maxEvents int
}

// NewHistory creates a History seeded with one healthy entry per service.
func NewHistory(services []string, maxEvents int) *History {
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	h := &History{
		services:  make(map[string]*ServiceHistory, len(services)),
		maxEvents: maxEvents,
	}
	for _, s := range services {
		h.ensure(s)
	}
	return h
}

// RecordProbe updates counters and last-check data for service.
func (h *History) RecordProbe(service string, up bool, statusCode int, latency time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sh := h.ensure(service)
	sh.Checks++
	if up {
		sh.UpChecks++
	}
	sh.Uptime = float64(sh.UpChecks) / float64(sh.Checks) * 100
	sh.LastCheckTime = time.Now().Unix()
	sh.LastStatusCode = statusCode
	sh.LatencyMs = int(latency.Milliseconds())
}

// Publish appends a transition and updates the service's up/down flag.
// The oldest events are dropped beyond maxEvents.
func (h *History) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ensure(ev.Service).IsUp = ev.Healthy
	h.events = append(h.events, ev)
	if over := len(h.events) - h.maxEvents; over > 0 {
		h.events = append([]Event(nil), h.events[over:]...)
	}
}

// GetAll returns a copy of every service summary in configuration order.
func (h *History) GetAll() []ServiceHistory {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]ServiceHistory, 0, len(h.order))
	for _, s := range h.order {
		out = append(out, *h.services[s])
	}
	return out
}

// GetService returns a copy of one service summary (nil if not found).
func (h *History) GetService(service string) *ServiceHistory {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sh, ok := h.services[service]
	if !ok {
		return nil
	}
	cp := *sh
	return &cp
}

// Events returns up to limit transitions, newest first. limit <= 0 means all.
func (h *History) Events(limit int) []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := len(h.events)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, h.events[i])
	}
	return out
}

// Len returns the number of tracked services.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.order)
}

func (h *History) ensure(service string) *ServiceHistory {
	sh, ok := h.services[service]
	if !ok {
		sh = &ServiceHistory{Service: service, IsUp: true}
		h.services[service] = sh
		h.order = append(h.order, service)
	}
	return sh
}
