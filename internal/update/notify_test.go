package update

import (
	"slices"
	"strings"
	"testing"
)

func TestNotifySendArgs(t *testing.T) {
	got := notifySendArgs(Notification{Title: "Reminder", Body: "Pay rent", Level: "info"})
	want := []string{"--app-name=kario", "--urgency=normal", "Reminder", "Pay rent"}
	if !slices.Equal(got, want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	got = notifySendArgs(Notification{Title: "Error", Body: "disk full", Level: "error"})
	if got[1] != "--urgency=critical" {
		t.Fatalf("error urgency = %s", got[1])
	}
}

func TestAppleScriptEscapesQuotesAndBackslashes(t *testing.T) {
	script := appleScript(Notification{Title: `say "hi"`, Body: `C:\tmp "x"`})
	if !strings.Contains(script, `"C:\\tmp \"x\""`) {
		t.Fatalf("body not escaped: %s", script)
	}
	if !strings.Contains(script, `subtitle "say \"hi\""`) {
		t.Fatalf("title not escaped: %s", script)
	}
}
