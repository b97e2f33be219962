// Package notify sends desktop notifications about scan results.
package notify

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// Notifier provides a generic interface for sending notifications.
type Notifier interface {
	Notify(title string, message string)
}

// DesktopNotifier sends notifications through the OS notification center.
type DesktopNotifier struct {
	logger *zap.SugaredLogger
}

// NewDesktopNotifier creates a new DesktopNotifier.
func NewDesktopNotifier(logger *zap.SugaredLogger) *DesktopNotifier {
	logger = logger.Named("notifier")
	logger.Debug("Created desktop notifier instance")

	return &DesktopNotifier{logger: logger}
}

// Notify sends a notification. Failures are logged, never returned.
func (n *DesktopNotifier) Notify(title, message string) {
	n.logger.Infow("Sending desktop notification", "title", title, "message", message)

	if err := beeep.Notify(title, message, ""); err != nil {
		n.logger.Warnw("Failed to send desktop notification", "error", err)
	}
}
