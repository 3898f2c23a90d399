package notify

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/manav03panchal/hydrate/internal/scheduler"
)

// Terminal prompts with an interactive select form on the terminal.
// Aborting the form (ctrl+c) counts as Exit.
type Terminal struct {
	in         io.Reader
	out        io.Writer
	accessible bool
}

// NewTerminal creates a terminal notifier.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// WithAccessible switches to huh's plain-text accessible mode.
func (t *Terminal) WithAccessible(accessible bool) *Terminal {
	t.accessible = accessible
	return t
}

// Prompt implements scheduler.Notifier.
func (t *Terminal) Prompt(ctx context.Context, title, message string) (scheduler.Response, error) {
	resp := scheduler.Confirmed

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[scheduler.Response]().
				Title(title).
				Description(message).
				Options(responseOptions()...).
				Value(&resp),
		),
	).
		WithInput(t.in).
		WithOutput(t.out).
		WithAccessible(t.accessible).
		WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		if errors.Is(err, huh.ErrUserAborted) {
			return scheduler.Exit, nil
		}
		return 0, err
	}
	return resp, nil
}

func responseOptions() []huh.Option[scheduler.Response] {
	options := make([]huh.Option[scheduler.Response], 0, len(choices))
	for _, c := range choices {
		options = append(options, huh.NewOption(c.Label, c.Response))
	}
	return options
}
