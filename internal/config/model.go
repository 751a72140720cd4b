package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultUpMessage    = "Service available"
	DefaultDownMessage  = "Service unavailable"
	DefaultProbeTimeout = 5 * time.Second
	DefaultLogLevel     = "info"
)

// maxSeconds is the largest whole second count a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

// Raw is the configuration surface as loaded from file and environment.
type Raw struct {
	CheckHealthIntervalSeconds float64      `json:"checkHealthIntervalSeconds" yaml:"checkHealthIntervalSeconds"`
	Services                   []string     `json:"services" yaml:"services"`
	MicrosoftTeamsWebhook      string       `json:"microsoftTeamsWebhook,omitempty" yaml:"microsoftTeamsWebhook,omitempty"`
	SlackWebhook               string       `json:"slackWebhook,omitempty" yaml:"slackWebhook,omitempty"`
	ServiceUpMessage           string       `json:"serviceUpMessage,omitempty" yaml:"serviceUpMessage,omitempty"`
	ServiceDownMessage         string       `json:"serviceDownMessage,omitempty" yaml:"serviceDownMessage,omitempty"`
	ProbeTimeoutSeconds        float64      `json:"probeTimeoutSeconds,omitempty" yaml:"probeTimeoutSeconds,omitempty"`
	LogLevel                   string       `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	Server                     ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`
}

// ServerConfig controls the optional status API. An empty BindAddress disables it.
type ServerConfig struct {
	BindAddress  string `json:"bindAddress,omitempty" yaml:"bindAddress,omitempty"`
	Username     string `json:"username,omitempty" yaml:"username,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty" yaml:"passwordHash,omitempty"`
}

// Config is a validated, read-only monitor configuration.
type Config struct {
	Services     []*url.URL
	Webhooks     []*url.URL
	Interval     time.Duration
	UpMessage    string
	DownMessage  string
	ProbeTimeout time.Duration
	LogLevel     string
	Server       ServerConfig
}

// ApplyDefaults fills zero-value optional fields with defaults.
func (r *Raw) ApplyDefaults() {
	if r.LogLevel == "" {
		r.LogLevel = DefaultLogLevel
	}
}

// Validate checks the raw config and normalizes it into a Config.
// Checks run in a fixed order and the first failure is returned.
func (r Raw) Validate() (Config, error) {
	if !validSeconds(r.CheckHealthIntervalSeconds) || r.CheckHealthIntervalSeconds < 1 ||
		r.CheckHealthIntervalSeconds != math.Trunc(r.CheckHealthIntervalSeconds) {
		return Config{}, &ValidationError{
			Kind:  ErrInvalidInterval,
			Field: "checkHealthIntervalSeconds",
			Value: formatSeconds(r.CheckHealthIntervalSeconds),
		}
	}

	if len(r.Services) == 0 {
		return Config{}, &ValidationError{Kind: ErrNoServices, Field: "services"}
	}

	if r.MicrosoftTeamsWebhook == "" && r.SlackWebhook == "" {
		return Config{}, &ValidationError{Kind: ErrNoWebhooks, Field: "microsoftTeamsWebhook, slackWebhook"}
	}

	var webhooks []*url.URL
	for _, wh := range []struct{ field, value string }{
		{"microsoftTeamsWebhook", r.MicrosoftTeamsWebhook},
		{"slackWebhook", r.SlackWebhook},
	} {
		if wh.value == "" {
			continue
		}
		u, err := parseEndpoint(wh.value)
		if err != nil {
			return Config{}, &ValidationError{Kind: ErrInvalidWebhookURL, Field: wh.field, Value: wh.value, Cause: err}
		}
		webhooks = append(webhooks, u)
	}

	services := make([]*url.URL, 0, len(r.Services))
	for i, s := range r.Services {
		u, err := parseEndpoint(s)
		if err != nil {
			return Config{}, &ValidationError{
				Kind:  ErrInvalidServiceURL,
				Field: fmt.Sprintf("services[%d]", i),
				Value: s,
				Cause: err,
			}
		}
		services = append(services, u)
	}

	if !validSeconds(r.ProbeTimeoutSeconds) || r.ProbeTimeoutSeconds < 0 {
		return Config{}, &ValidationError{
			Kind:  ErrInvalidTimeout,
			Field: "probeTimeoutSeconds",
			Value: formatSeconds(r.ProbeTimeoutSeconds),
		}
	}

	logLevel := r.LogLevel
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[logLevel] {
		return Config{}, &ValidationError{Kind: ErrInvalidLogLevel, Field: "logLevel", Value: logLevel}
	}

	if r.Server.PasswordHash != "" && r.Server.Username == "" {
		return Config{}, &ValidationError{Kind: ErrIncompleteAuth, Field: "server.username"}
	}
	if r.Server.Username != "" && r.Server.PasswordHash == "" {
		return Config{}, &ValidationError{Kind: ErrIncompleteAuth, Field: "server.passwordHash"}
	}

	cfg := Config{
		Services:     services,
		Webhooks:     webhooks,
		Interval:     time.Duration(r.CheckHealthIntervalSeconds) * time.Second,
		UpMessage:    r.ServiceUpMessage,
		DownMessage:  r.ServiceDownMessage,
		ProbeTimeout: DefaultProbeTimeout,
		LogLevel:     logLevel,
		Server:       r.Server,
	}
	if cfg.UpMessage == "" {
		cfg.UpMessage = DefaultUpMessage
	}
	if cfg.DownMessage == "" {
		cfg.DownMessage = DefaultDownMessage
	}
	if r.ProbeTimeoutSeconds > 0 {
		cfg.ProbeTimeout = time.Duration(r.ProbeTimeoutSeconds * float64(time.Second))
	}
	return cfg, nil
}

// Message builds the notification text for a service observed in the given state.
func (c Config) Message(service *url.URL, healthy bool) string {
	prefix := c.DownMessage
	if healthy {
		prefix = c.UpMessage
	}
	return prefix + ": " + service.String()
}

// validSeconds reports whether v is finite and fits in a time.Duration.
func validSeconds(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v <= maxSeconds
}

// parseEndpoint accepts absolute http(s) URLs with a host. The host is
// lowercased and an empty path becomes "/", so equivalent spellings share
// one state entry and one message form.
func parseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scheme must be http or https (got %q)", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("missing host")
	}
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" && u.RawPath == "" {
		u.Path = "/"
	}
	return u, nil
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%gs", v)
}
