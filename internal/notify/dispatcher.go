package notify

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"
)

const sendTimeout = 10 * time.Second

// Dispatcher fans a message out to every webhook without blocking the caller.
// Delivery failures are logged and dropped; there is no retry.
type Dispatcher struct {
	notifier Notifier
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. A nil notifier means a default WebhookNotifier.
func NewDispatcher(n Notifier) *Dispatcher {
	if n == nil {
		n = NewWebhookNotifier(nil)
	}
	return &Dispatcher{notifier: n}
}

// Notify detaches one send per webhook and returns immediately.
func (d *Dispatcher) Notify(webhooks []*url.URL, message string) {
	for _, wh := range webhooks {
		d.wg.Add(1)
		go d.send(wh, message)
	}
}

// Wait blocks until every detached send has finished. Used on shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) send(webhook *url.URL, message string) {
	defer d.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	// Webhook paths carry secrets, only the host goes to the log.
	if err := d.notifier.Send(ctx, webhook, message); err != nil {
		slog.Warn("notification send failed", "webhook_host", hostOf(webhook), "error", err)
		return
	}
	slog.Info("notification sent", "webhook_host", hostOf(webhook))
}

func hostOf(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Host
}
