// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/zhubert/chatpane/internal/logger"
)

// AppName is used as the notification title
const AppName = "chatpane"

var notifier = beeep.Notify

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon lets beeep pick the platform default
	err := notifier(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// SlowLoad tells the user a load finished after a noticeable delay, so they
// can switch back to the terminal.
func SlowLoad(what string, elapsed time.Duration) error {
	return Send(AppName, fmt.Sprintf("%s loaded after %s", what, elapsed.Round(time.Second)))
}

// SetNotifier replaces the notification backend. Used in tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notifier = beeep.Notify
}
