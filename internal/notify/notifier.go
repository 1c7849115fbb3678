package notify

import (
	"context"
	"log/slog"
)

// Notifier is the contract for the companion push-notification channel.
// The channel's transport and reconnection behavior live in the host
// application; this core only tells it that configuration changed and
// whether the credential itself is different, so the channel can decide
// whether a reconnect is needed.
type Notifier interface {
	ConfigChanged(ctx context.Context, credentialChanged bool)
}

// LogNotifier is a Notifier that only logs, for hosts without a push
// channel wired up
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With(slog.String("component", "notifier")),
	}
}

// Ensure LogNotifier implements the interface
var _ Notifier = (*LogNotifier)(nil)

// ConfigChanged logs the notification
func (n *LogNotifier) ConfigChanged(ctx context.Context, credentialChanged bool) {
	n.logger.Info("configuration changed",
		slog.Bool("credential_changed", credentialChanged))
}
