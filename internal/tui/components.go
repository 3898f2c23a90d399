package tui

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/hydrate/internal/output"
	"github.com/manav03panchal/hydrate/internal/scheduler"
	"github.com/manav03panchal/hydrate/internal/stats"
	"github.com/manav03panchal/hydrate/internal/timer"
)

// boxWidth is the inner width of a box on a terminal width columns wide.
func boxWidth(width int) int {
	if width < 24 {
		return 20
	}
	return width - 4
}

// CountdownComponent shows the time left until the next reminder.
type CountdownComponent struct {
	Status scheduler.Status
	Width  int
}

// Phase maps the scheduler state to the countdown phase.
func (cc *CountdownComponent) Phase() timer.Phase {
	switch {
	case cc.Status.State == scheduler.StateDue:
		return timer.PhaseDue
	case cc.Status.Suppressed:
		return timer.PhaseSnoozed
	default:
		return timer.PhaseWaiting
	}
}

// View renders the countdown component.
func (cc *CountdownComponent) View() string {
	display := timer.NewCountdownDisplay()
	display.BarWidth = min(30, max(10, boxWidth(cc.Width)-16))

	var content strings.Builder
	content.WriteString(display.Render(cc.Status.Remaining, cc.Status.Interval, cc.Phase()))
	content.WriteString("\n\n")
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("Every %s", output.FormatDuration(cc.Status.Interval))))
	if cc.Status.HasBaseline {
		content.WriteString(StyleSubtitle.Render(fmt.Sprintf("  •  last drink %s", output.FormatTimeOnly(cc.Status.Baseline))))
	}

	return StyleBox.Width(boxWidth(cc.Width)).Render(content.String())
}

// PromptComponent is the in-place reminder question.
type PromptComponent struct {
	Message string
	Width   int
}

// View renders the prompt component.
func (pc *PromptComponent) View() string {
	var content strings.Builder
	content.WriteString(StyleWarning.Bold(true).Render(pc.Message))
	content.WriteString("\n\n")
	content.WriteString(keyHints([][2]string{
		{"y", "I drank water"},
		{"s", "snooze"},
		{"q", "exit"},
	}))
	return StylePromptBox.Width(boxWidth(pc.Width)).Render(content.String())
}

// HistoryComponent shows today's count and a bar per recent day.
type HistoryComponent struct {
	Days  []stats.DailyCount
	Today int
	Width int
}

// View renders the history component.
func (hc *HistoryComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("Today"))
	content.WriteString("\n")
	content.WriteString(StyleCount.Render(fmt.Sprintf("%d", hc.Today)))
	content.WriteString(StyleSubtitle.Render(" glasses"))
	content.WriteString("\n\n")

	if len(hc.Days) == 0 {
		content.WriteString(StyleMuted.Render("No water intake recorded"))
	} else {
		barWidth := min(30, max(5, boxWidth(hc.Width)-22))
		most := stats.Max(hc.Days)
		for i, day := range hc.Days {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(StyleSubtitle.Render(day.Date.Time().Format("Mon 01-02")))
			content.WriteString(fmt.Sprintf(" %3d ", day.Count))
			content.WriteString(StyleBar.Render(output.Bar(day.Count, most, barWidth)))
		}
	}

	return StyleBox.Width(boxWidth(hc.Width)).Render(content.String())
}

func keyHints(hints [][2]string) string {
	parts := make([]string, 0, len(hints))
	for _, k := range hints {
		parts = append(parts, StyleHelpKey.Render(k[0])+" "+StyleHelpDesc.Render(k[1]))
	}
	return strings.Join(parts, "  •  ")
}
