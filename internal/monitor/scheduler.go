package monitor

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/makt28/updown/internal/config"
	"github.com/makt28/updown/internal/notify"
)

// Option configures a Monitor.
type Option func(*options)

type options struct {
	prober   Prober
	notifier Notifier
	recorder Recorder
	sinks    []EventSink
}

// WithProber replaces the default HTTP prober.
func WithProber(p Prober) Option { return func(o *options) { o.prober = p } }

// WithNotifier replaces the default webhook dispatcher.
func WithNotifier(n Notifier) Option { return func(o *options) { o.notifier = n } }

// WithRecorder attaches a probe result recorder.
func WithRecorder(r Recorder) Option { return func(o *options) { o.recorder = r } }

// WithEventSink attaches a transition subscriber. May be given more than once.
func WithEventSink(s EventSink) Option {
	return func(o *options) { o.sinks = append(o.sinks, s) }
}

// Monitor owns the per-service state and runs one tick per interval.
type Monitor struct {
	cfg      config.Config
	prober   Prober
	state    *State
	analyzer *Analyzer
}

// New creates a Monitor for an already validated config.
func New(cfg config.Config, opts ...Option) *Monitor {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.prober == nil {
		o.prober = NewHTTPProber(nil)
	}
	if o.notifier == nil {
		o.notifier = notify.NewDispatcher(nil)
	}

	state := NewState(cfg.Services)
	return &Monitor{
		cfg:      cfg,
		prober:   o.prober,
		state:    state,
		analyzer: NewAnalyzer(cfg, state, o.notifier, o.recorder, o.sinks...),
	}
}

// Start validates raw and starts a monitor. Validation errors are returned
// before any timer is armed or request made.
func Start(raw config.Raw, opts ...Option) (*Handle, error) {
	cfg, err := raw.Validate()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...).Start(), nil
}

// Handle stops a running monitor.
type Handle struct {
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// Stop halts future ticks. It is safe to call at any time and more than once.
// Probes in flight are abandoned and do not change state.
func (h *Handle) Stop() {
	h.stopOnce.Do(h.cancel)
}

// Done is closed once the loop goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the loop goroutine has exited.
func (h *Handle) Wait() {
	<-h.done
}

// Start launches the loop goroutine. The first tick fires one interval after Start.
func (m *Monitor) Start() *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go m.run(ctx, h.done)
	return h
}

// Snapshot returns a copy of the held per-service health.
func (m *Monitor) Snapshot() map[string]bool {
	return m.state.Snapshot()
}

func (m *Monitor) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	slog.Info("monitor started", "services", len(m.cfg.Services), "interval", m.cfg.Interval.String())

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("monitor stopped")
			return
		case <-ticker.C:
			// A tick runs to completion before the ticker is read again, so ticks never overlap.
			m.tick(ctx)
		}
	}
}

// tick probes every service concurrently and waits for all of them.
func (m *Monitor) tick(ctx context.Context) {
	var wg sync.WaitGroup
	for _, svc := range m.cfg.Services {
		wg.Add(1)
		go func(svc *url.URL) {
			defer wg.Done()
			result := probeWithTimeout(ctx, m.prober, svc, m.cfg.ProbeTimeout)
			if ctx.Err() != nil {
				return
			}
			m.analyzer.Process(svc, result)
		}(svc)
	}
	wg.Wait()
}
