package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

type capturedRequest struct {
	method      string
	contentType string
	body        string
}

// recorder is a webhook endpoint that records every request it receives.
type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec.mu.Lock()
	rec.requests = append(rec.requests, capturedRequest{
		method:      r.Method,
		contentType: r.Header.Get("Content-Type"),
		body:        string(body),
	})
	status := rec.status
	rec.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
}

func (rec *recorder) snapshot() []capturedRequest {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]capturedRequest(nil), rec.requests...)
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestWebhookSend(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	n := NewWebhookNotifier(srv.Client())
	if err := n.Send(context.Background(), mustParse(t, srv.URL+"/hook"), "Test message"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	reqs := rec.snapshot()
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want 1", len(reqs))
	}
	if reqs[0].method != http.MethodPost {
		t.Errorf("method = %s, want POST", reqs[0].method)
	}
	if reqs[0].contentType != "application/json" {
		t.Errorf("Content-Type = %q", reqs[0].contentType)
	}
	if reqs[0].body != `{"text":"Test message"}` {
		t.Errorf("body = %q", reqs[0].body)
	}
}

func TestWebhookSendEscapesMessage(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	n := NewWebhookNotifier(srv.Client())
	if err := n.Send(context.Background(), mustParse(t, srv.URL), `say "hi"`); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := rec.snapshot()[0].body; got != `{"text":"say \"hi\""}` {
		t.Errorf("body = %q", got)
	}
}

func TestWebhookSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(&recorder{status: http.StatusInternalServerError})
	defer srv.Close()

	n := NewWebhookNotifier(srv.Client())
	if err := n.Send(context.Background(), mustParse(t, srv.URL), "x"); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestWebhookSendNilURL(t *testing.T) {
	if err := NewWebhookNotifier(nil).Send(context.Background(), nil, "x"); err == nil {
		t.Error("expected error for nil webhook")
	}
}

func TestDispatcherFanOut(t *testing.T) {
	rec1, rec2 := &recorder{}, &recorder{}
	srv1 := httptest.NewServer(rec1)
	defer srv1.Close()
	srv2 := httptest.NewServer(rec2)
	defer srv2.Close()

	d := NewDispatcher(NewWebhookNotifier(&http.Client{Timeout: 2 * time.Second}))
	d.Notify([]*url.URL{mustParse(t, srv1.URL), mustParse(t, srv2.URL)}, "Service unavailable: https://example.com")
	d.Wait()

	for i, rec := range []*recorder{rec1, rec2} {
		reqs := rec.snapshot()
		if len(reqs) != 1 {
			t.Fatalf("webhook %d: got %d requests, want 1", i, len(reqs))
		}
		if reqs[0].body != `{"text":"Service unavailable: https://example.com"}` {
			t.Errorf("webhook %d: body = %q", i, reqs[0].body)
		}
	}
}

// blockingNotifier holds every send until release is closed.
type blockingNotifier struct {
	release chan struct{}
}

func (b *blockingNotifier) Send(ctx context.Context, _ *url.URL, _ string) error {
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return nil
}

func TestDispatcherDoesNotBlock(t *testing.T) {
	bn := &blockingNotifier{release: make(chan struct{})}
	d := NewDispatcher(bn)

	returned := make(chan struct{})
	go func() {
		d.Notify([]*url.URL{mustParse(t, "https://a.example.com"), mustParse(t, "https://b.example.com")}, "msg")
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on delivery")
	}
	close(bn.release)
	d.Wait()
}

func TestDispatcherDropsFailures(t *testing.T) {
	srv := httptest.NewServer(&recorder{status: http.StatusBadGateway})
	defer srv.Close()

	d := NewDispatcher(NewWebhookNotifier(srv.Client()))
	d.Notify([]*url.URL{mustParse(t, srv.URL), mustParse(t, "http://127.0.0.1:1")}, "msg")
	d.Wait()
}
