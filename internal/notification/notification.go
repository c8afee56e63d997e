package notification

import (
	"context"
	"log/slog"
)

const (
	// KindOrphanedCheck indicates a check that was persisted but never
	// linked to its owner; operators reconcile these by hand.
	KindOrphanedCheck = "orphaned_check"
)

// Message describes a notification payload.
type Message struct {
	Kind    string
	Subject string
	Body    string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notifications to the structured log. It is the only
// delivery channel wired today; an SMS or pager backend would implement the
// same interface.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier builds a log-backed notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send logs the notification.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	n.logger.Warn("notification",
		slog.String("kind", message.Kind),
		slog.String("subject", message.Subject),
		slog.String("body", message.Body),
	)
	return nil
}
