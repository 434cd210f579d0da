package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

const desktopTimeout = 5 * time.Second

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

// ExecDesktopNotifier shells out to notify-send on Linux and osascript on
// macOS. Other platforms are a no-op.
type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), desktopTimeout)
	defer cancel()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		cmd = exec.CommandContext(ctx, "notify-send", notifySendArgs(n)...)
	case "darwin":
		cmd = exec.CommandContext(ctx, "osascript", "-e", appleScript(n))
	default:
		return nil
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", cmd.Path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func notifySendArgs(n Notification) []string {
	urgency := "normal"
	if n.Level == "error" {
		urgency = "critical"
	}
	return []string{"--app-name=kario", "--urgency=" + urgency, n.Title, n.Body}
}

func appleScript(n Notification) string {
	return fmt.Sprintf(`display notification "%s" with title "kario" subtitle "%s"`,
		escapeAppleScript(n.Body), escapeAppleScript(n.Title))
}

func escapeAppleScript(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
