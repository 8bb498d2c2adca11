// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/gen2brain/beeep"

	"github.com/zhubert/banter/internal/logger"
)

// AppName is the notification title.
const AppName = "banter"

// PreviewLength caps the reply text shown in a notification.
const PreviewLength = 80

// Notifier has the signature of beeep.Notify.
type Notifier func(title, message string, icon any) error

var (
	mu     sync.Mutex
	notify Notifier = beeep.Notify
)

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(n Notifier) {
	mu.Lock()
	defer mu.Unlock()
	notify = n
}

// ResetNotifier restores beeep.Notify.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	mu.Lock()
	n := notify
	mu.Unlock()

	log := logger.ComponentLogger("notification")
	log.Debug("sending notification", "title", title)
	// Empty icon: beeep picks the platform default
	if err := n(title, message, ""); err != nil {
		log.Warn("failed to send notification", "error", err)
		return err
	}
	return nil
}

// ReplyReceived announces an assistant reply, previewing its first line.
func ReplyReceived(text string) error {
	return Send(AppName, Preview(text))
}

// Preview returns the first line of text, cut to PreviewLength cells.
func Preview(text string) string {
	line := text
	for i, r := range text {
		if r == '\n' {
			line = text[:i]
			break
		}
	}
	return ansi.Truncate(line, PreviewLength, "…")
}
