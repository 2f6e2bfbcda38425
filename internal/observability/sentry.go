// Package observability wires Sentry error reporting. Everything here is a
// no-op when no DSN is configured, so local development needs no account.
package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled bool

// Init configures the Sentry client. An empty DSN disables reporting.
func Init(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		return err
	}
	enabled = true
	return nil
}

// CaptureErr reports an unexpected error with a short scope tag.
func CaptureErr(scope string, err error) {
	if !enabled || err == nil {
		return
	}
	sentry.WithScope(func(s *sentry.Scope) {
		s.SetTag("scope", scope)
		sentry.CaptureException(err)
	})
}

// Flush drains pending events on shutdown.
func Flush() {
	if !enabled {
		return
	}
	sentry.Flush(2 * time.Second)
}
