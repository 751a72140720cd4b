package monitor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/makt28/updown/internal/config"
)

// ProbeResult is the outcome of a single probe attempt.
type ProbeResult struct {
	Up         bool
	StatusCode int
	Latency    time.Duration
	Error      string
}

// Prober is the interface for health check implementations.
// Probe must not panic and reports every failure through ProbeResult.
type Prober interface {
	Probe(ctx context.Context, target string) ProbeResult
}

// --- HTTP Prober ---

// HTTPProber issues a GET and treats exactly 200 OK as healthy.
// Redirects are not followed, so a 3xx is unhealthy.
type HTTPProber struct {
	Client *http.Client
}

// NewHTTPProber returns a prober using client, or a non-redirecting client when nil.
func NewHTTPProber(client *http.Client) *HTTPProber {
	if client == nil {
		client = &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	return &HTTPProber{Client: client}
}

func (p *HTTPProber) Probe(ctx context.Context, target string) (result ProbeResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = ProbeResult{Up: false, Latency: time.Since(start), Error: fmt.Sprintf("probe panic: %v", r)}
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ProbeResult{Up: false, Error: fmt.Sprintf("create request: %v", err)}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return ProbeResult{
			Up:      false,
			Latency: time.Since(start),
			Error:   fmt.Sprintf("request failed: %v", err),
		}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	latency := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		return ProbeResult{
			Up:         false,
			StatusCode: resp.StatusCode,
			Latency:    latency,
			Error:      fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}

	return ProbeResult{Up: true, StatusCode: resp.StatusCode, Latency: latency}
}

var defaultProber = NewHTTPProber(nil)

// CheckHealth reports whether endpoint answers a GET with 200 within timeout.
// Every failure, including a nil endpoint, yields false.
func CheckHealth(ctx context.Context, endpoint *url.URL, timeout time.Duration) bool {
	return probeWithTimeout(ctx, defaultProber, endpoint, timeout).Up
}

func probeWithTimeout(ctx context.Context, p Prober, endpoint *url.URL, timeout time.Duration) ProbeResult {
	if endpoint == nil {
		return ProbeResult{Up: false, Error: "no endpoint"}
	}
	if timeout <= 0 {
		timeout = config.DefaultProbeTimeout
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.Probe(probeCtx, endpoint.String())
}
