// Package timer renders the countdown to the next hydration reminder.
package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Phase is what the countdown is showing.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseSnoozed
	PhaseDue
)

// String returns the header label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "NEXT REMINDER"
	case PhaseSnoozed:
		return "SNOOZED"
	case PhaseDue:
		return "TIME TO DRINK"
	default:
		return "UNKNOWN"
	}
}

// Styles for countdown display.
var (
	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0EA5E9"))

	waitingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#38BDF8"))

	snoozedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	dueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// CountdownDisplay renders the time left until the next reminder.
type CountdownDisplay struct {
	UseColor bool
	BarWidth int
}

// NewCountdownDisplay creates a new countdown display.
func NewCountdownDisplay() *CountdownDisplay {
	return &CountdownDisplay{
		UseColor: true,
		BarWidth: 30,
	}
}

// FormatDuration formats a duration as MM:SS or HH:MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Render draws the phase header, the remaining time and a progress bar
// measuring how much of interval has elapsed.
func (cd *CountdownDisplay) Render(remaining, interval time.Duration, phase Phase) string {
	var b strings.Builder

	b.WriteString(cd.style(phaseStyle(phase), phase.String()))
	b.WriteString("\n\n")

	b.WriteString(cd.style(timerStyle, FormatDuration(remaining)))
	b.WriteString("\n\n")

	b.WriteString(cd.style(progressStyle, cd.renderProgressBar(Progress(remaining, interval), cd.BarWidth)))

	return b.String()
}

// Progress is the elapsed fraction of interval, clamped to [0, 1].
func Progress(remaining, interval time.Duration) float64 {
	if interval <= 0 {
		return 1
	}
	progress := 1.0 - float64(remaining)/float64(interval)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func phaseStyle(p Phase) lipgloss.Style {
	switch p {
	case PhaseSnoozed:
		return snoozedStyle
	case PhaseDue:
		return dueStyle
	default:
		return waitingStyle
	}
}

func (cd *CountdownDisplay) style(s lipgloss.Style, text string) string {
	if cd.UseColor {
		return s.Render(text)
	}
	return text
}

// renderProgressBar creates a progress bar string.
func (cd *CountdownDisplay) renderProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d%%", bar, int(progress*100))
}
