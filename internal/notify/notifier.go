package notify

import (
	"context"
	"net/url"
)

// Notifier delivers a single message to a single webhook.
type Notifier interface {
	Send(ctx context.Context, webhook *url.URL, message string) error
}

// Payload is the JSON body posted to chat webhooks. Teams and Slack
// incoming webhooks both accept a plain {"text": ...} document.
type Payload struct {
	Text string `json:"text"`
}
