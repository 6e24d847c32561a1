package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/DanielEliad/powerworld/config"
	coremon "github.com/DanielEliad/powerworld/core/monitoring"
)

// NewSentryMonitor initializes Sentry from configuration. An empty DSN yields
// the no-op monitor so local runs need no Sentry project.
func NewSentryMonitor(cfg config.SentryConfig) (coremon.Monitor, error) {
	if cfg.DSN == "" {
		return coremon.NopMonitor{}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate,
		Release:          cfg.Release,
		Debug:            cfg.Debug,
	}); err != nil {
		return nil, err
	}
	return sentryMonitor{}, nil
}

// sentryMonitor forwards reports to the process-global Sentry client. Each
// capture clones the current hub so tags never leak between requests.
type sentryMonitor struct{}

func (sentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
	hub.CaptureException(err)
}

func (sentryMonitor) Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
