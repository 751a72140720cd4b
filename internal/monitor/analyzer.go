package monitor

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/makt28/updown/internal/config"
	"github.com/makt28/updown/internal/storage"
)

// Notifier dispatches a message to every webhook without blocking.
type Notifier interface {
	Notify(webhooks []*url.URL, message string)
}

// Recorder receives every probe result.
type Recorder interface {
	RecordProbe(service string, up bool, statusCode int, latency time.Duration)
}

// EventSink receives every state transition.
type EventSink interface {
	Publish(ev storage.Event)
}

// Analyzer compares probe results against held state and triggers notifications.
type Analyzer struct {
	cfg      config.Config
	state    *State
	notifier Notifier
	recorder Recorder
	sinks    []EventSink
}

// NewAnalyzer creates a new Analyzer. recorder may be nil.
func NewAnalyzer(cfg config.Config, state *State, notifier Notifier, recorder Recorder, sinks ...EventSink) *Analyzer {
	return &Analyzer{
		cfg:      cfg,
		state:    state,
		notifier: notifier,
		recorder: recorder,
		sinks:    sinks,
	}
}

// Process handles one probe result for service and reports whether it was a transition.
func (a *Analyzer) Process(service *url.URL, result ProbeResult) bool {
	key := service.String()

	if a.recorder != nil {
		a.recorder.RecordProbe(key, result.Up, result.StatusCode, result.Latency)
	}
	if !result.Up {
		slog.Debug("probe failed", "service", key, "error", result.Error)
	}

	if !a.state.Transition(key, result.Up) {
		return false
	}

	message := a.cfg.Message(service, result.Up)
	if result.Up {
		slog.Info("service recovered", "service", key)
	} else {
		slog.Warn("service is DOWN", "service", key, "reason", result.Error)
	}

	// cfg.Webhooks is never written after validation.
	a.notifier.Notify(a.cfg.Webhooks, message)

	ev := storage.Event{
		ID:      uuid.NewString(),
		Service: key,
		Healthy: result.Up,
		Message: message,
		Reason:  result.Error,
		At:      time.Now(),
	}
	for _, sink := range a.sinks {
		sink.Publish(ev)
	}
	return true
}
