package engine

import "log/slog"

// Notifier receives engine events the presentation layer cares about.
// Implementations must be cheap and non-blocking; the engine calls them
// from its single worker goroutine.
type Notifier interface {
	// ApplicationSent fires after a successful submission.
	ApplicationSent(employer, url string)
	// ReauthRequired fires when the bearer token is gone and the run
	// cannot continue.
	ReauthRequired()
}

// LogNotifier is the default Notifier: structured log lines.
type LogNotifier struct{}

func (LogNotifier) ApplicationSent(employer, url string) {
	slog.Info("application sent",
		slog.String("employer", employer),
		slog.String("url", url),
	)
}

func (LogNotifier) ReauthRequired() {
	slog.Warn("authorization expired, re-authorize to continue")
}
