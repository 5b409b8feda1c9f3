package auth

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// Notifier announces a device-code challenge to the user. Implementations
// must never abort the flow: the user can always type the code manually.
type Notifier interface {
	Notify(userCode, verificationURI, message string)
}

// DesktopNotifier copies the user code to the clipboard and opens the
// verification page in the default browser. Both are best-effort.
type DesktopNotifier struct {
	Logger *slog.Logger
}

func (n *DesktopNotifier) Notify(userCode, verificationURI, message string) {
	if message != "" {
		fmt.Fprintln(os.Stderr, message)
	} else {
		fmt.Fprintf(os.Stderr, "To sign in, open %s and enter the code %s\n", verificationURI, userCode)
	}

	if err := clipboard.WriteAll(userCode); err != nil {
		n.Logger.Warn("failed to copy user code to clipboard", "error", err)
	}
	if err := browser.OpenURL(verificationURI); err != nil {
		n.Logger.Warn("failed to open browser", "error", err)
	}
}
