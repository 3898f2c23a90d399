// Package notify implements the reminder prompt. Each Notifier shows the
// same three choices and blocks until the user picks one.
package notify

import (
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/manav03panchal/hydrate/internal/errors"
	"github.com/manav03panchal/hydrate/internal/scheduler"
)

// Notifier kinds accepted by Select.
const (
	KindAuto     = "auto"
	KindTerminal = "terminal"
	KindDialog   = "dialog"
)

// Kinds lists every valid notifier kind.
var Kinds = []string{KindAuto, KindTerminal, KindDialog}

// Button labels, in display order.
const (
	LabelConfirm = "I drank water"
	LabelSnooze  = "Snooze"
	LabelExit    = "Exit"
)

// choices maps each label to the response it produces.
var choices = []struct {
	Label    string
	Response scheduler.Response
}{
	{LabelConfirm, scheduler.Confirmed},
	{LabelSnooze, scheduler.Snoozed},
	{LabelExit, scheduler.Exit},
}

// ResponseForLabel returns the response for a button label.
func ResponseForLabel(label string) (scheduler.Response, bool) {
	label = strings.TrimSpace(label)
	for _, c := range choices {
		if c.Label == label {
			return c.Response, true
		}
	}
	return 0, false
}

// ValidateKind checks a notifier kind.
func ValidateKind(kind string) error {
	for _, k := range Kinds {
		if kind == k {
			return nil
		}
	}
	return errors.NewValidationError("notifier", kind,
		"must be one of "+strings.Join(Kinds, ", "), errors.ErrInvalidNotifier)
}

// Select returns the notifier for kind. The terminal notifier reads from in
// and draws on out; nil means stdin and stdout.
func Select(kind string, in io.Reader, out io.Writer) (scheduler.Notifier, error) {
	if err := ValidateKind(kind); err != nil {
		return nil, err
	}
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	switch kind {
	case KindDialog:
		return NewDialog(), nil
	case KindTerminal:
		return NewTerminal(in, out), nil
	default:
		if dialogAvailable() {
			return NewDialog(), nil
		}
		return NewTerminal(in, out), nil
	}
}

func dialogAvailable() bool {
	if runtime.GOOS != "darwin" {
		return false
	}
	_, err := exec.LookPath(osascript)
	return err == nil
}
