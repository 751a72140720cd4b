package monitor

import (
	"net/url"
	"sync"
	"testing"
)

func TestStateStartsHealthy(t *testing.T) {
	a, _ := url.Parse("https://a.example.com")
	b, _ := url.Parse("https://b.example.com")
	s := NewState([]*url.URL{a, b, a})

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("got %d entries, want 2", len(snap))
	}
	for k, v := range snap {
		if !v {
			t.Errorf("%s = false, want true", k)
		}
	}
}

func TestStateTransition(t *testing.T) {
	a, _ := url.Parse("https://a.example.com")
	s := NewState([]*url.URL{a})
	key := a.String()

	if s.Transition(key, true) {
		t.Error("healthy -> healthy reported as transition")
	}
	if !s.Transition(key, false) {
		t.Error("healthy -> unhealthy not reported")
	}
	if s.Transition(key, false) {
		t.Error("unhealthy -> unhealthy reported as transition")
	}
	if !s.Transition(key, true) {
		t.Error("unhealthy -> healthy not reported")
	}
	if v, ok := s.Snapshot()[key]; !ok || !v {
		t.Errorf("Snapshot[%s] = %v, %v", key, v, ok)
	}
}

func TestStateTransitionConcurrent(t *testing.T) {
	a, _ := url.Parse("https://a.example.com")
	s := NewState([]*url.URL{a})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changes int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Transition(a.String(), false) {
				mu.Lock()
				changes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if changes != 1 {
		t.Errorf("got %d transitions, want exactly 1", changes)
	}
}
