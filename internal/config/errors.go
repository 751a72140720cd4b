package config

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInterval   = errors.New("checkHealthIntervalSeconds must be a whole number >= 1")
	ErrNoServices        = errors.New("no services defined, add at least one")
	ErrNoWebhooks        = errors.New("provide a microsoft teams or slack webhook to be notified")
	ErrInvalidWebhookURL = errors.New("invalid webhook url")
	ErrInvalidServiceURL = errors.New("invalid service url")
	ErrInvalidTimeout    = errors.New("probeTimeoutSeconds must be >= 0")
	ErrInvalidLogLevel   = errors.New("logLevel must be one of: debug, info, warn, error")
	ErrIncompleteAuth    = errors.New("server.username and server.passwordHash must be set together")
)

// ValidationError identifies the config field and value that failed validation.
// Kind is one of the Err* sentinels, so errors.Is works against it.
type ValidationError struct {
	Kind  error
	Field string
	Value string
	Cause error
}

func (e *ValidationError) Error() string {
	msg := "config: " + e.Kind.Error()
	switch {
	case e.Field != "" && e.Value != "":
		msg += fmt.Sprintf(": %s %q", e.Field, e.Value)
	case e.Field != "":
		msg += ": " + e.Field
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
