package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/manav03panchal/hydrate/internal/scheduler"
)

const osascript = "osascript"

// buttonPrefix precedes the clicked button in osascript's output.
const buttonPrefix = "button returned:"

// runFunc executes a command and returns its standard output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Dialog prompts with a macOS modal dialog via osascript.
type Dialog struct {
	run runFunc
}

// NewDialog creates a dialog notifier.
func NewDialog() *Dialog {
	return &Dialog{run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Prompt implements scheduler.Notifier.
func (d *Dialog) Prompt(ctx context.Context, title, message string) (scheduler.Response, error) {
	out, err := d.run(ctx, osascript, "-e", dialogScript(title, message))
	if err != nil {
		return 0, fmt.Errorf("osascript: %w", err)
	}
	return parseButton(string(out))
}

// dialogScript builds the AppleScript for the three-button dialog.
func dialogScript(title, message string) string {
	buttons := make([]string, len(choices))
	for i, c := range choices {
		buttons[i] = appleQuote(c.Label)
	}
	return fmt.Sprintf("display dialog %s with title %s buttons {%s} default button 1",
		appleQuote(message), appleQuote(title), strings.Join(buttons, ", "))
}

// parseButton maps osascript output such as "button returned:Snooze" to a
// response.
func parseButton(out string) (scheduler.Response, error) {
	for _, field := range strings.Split(strings.TrimSpace(out), ",") {
		label, ok := strings.CutPrefix(strings.TrimSpace(field), buttonPrefix)
		if !ok {
			continue
		}
		if resp, ok := ResponseForLabel(label); ok {
			return resp, nil
		}
		return 0, fmt.Errorf("unexpected dialog button %q", label)
	}
	return 0, fmt.Errorf("unexpected dialog output %q", strings.TrimSpace(out))
}

func appleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
