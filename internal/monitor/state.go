package monitor

import (
	"net/url"
	"sync"
)

// State holds the last observed health of each service, keyed by endpoint string.
// Every service starts healthy, so the first success after start is silent and
// the first failure is reported.
type State struct {
	mu      sync.Mutex
	healthy map[string]bool
}

// NewState creates a State with one healthy entry per service.
// Duplicate endpoints collapse into a single entry.
func NewState(services []*url.URL) *State {
	s := &State{healthy: make(map[string]bool, len(services))}
	for _, svc := range services {
		s.healthy[svc.String()] = true
	}
	return s
}

// Transition records cur for key and reports whether it differs from the held value.
// The compare and the update happen under one lock.
func (s *State) Transition(key string, cur bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.healthy[key]
	if !ok {
		prev = true
	}
	if prev == cur {
		return false
	}
	s.healthy[key] = cur
	return true
}

// Snapshot returns a copy of all held values.
func (s *State) Snapshot() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.healthy))
	for k, v := range s.healthy {
		out[k] = v
	}
	return out
}
