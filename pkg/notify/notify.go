// Package notify defines the user-facing notification channel collaborator.
// Every failure surfaced to a human goes through it; delivery is
// fire-and-forget.
package notify

import (
	"context"
	"log/slog"
	"time"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DefaultDuration is how long a notification stays visible when the caller
// has no preference.
const DefaultDuration = 5 * time.Second

// Notifier delivers a message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string, severity Severity, duration time.Duration)
}

// LogNotifier records notifications on a structured logger. It stands in for
// the real toast surface in headless deployments and tests.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, message string, severity Severity, duration time.Duration) {
	level := slog.LevelInfo
	if severity == SeverityError {
		level = slog.LevelError
	}

	n.logger.Log(ctx, level, message, "severity", string(severity), "duration", duration)
}

// Noop discards every notification.
type Noop struct{}

func (Noop) Notify(context.Context, string, Severity, time.Duration) {}
