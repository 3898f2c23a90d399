package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uitable"

	"github.com/manav03panchal/hydrate/internal/model"
	"github.com/manav03panchal/hydrate/internal/stats"
)

// Styles for CLI output.
var (
	colorPrimary = lipgloss.Color("#0EA5E9") // Sky
	colorWater   = lipgloss.Color("#38BDF8")
	colorMuted   = lipgloss.Color("#6B7280")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleBar = lipgloss.NewStyle().
			Foreground(colorWater)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// PrintStatus prints the reminder status overview.
func (c *CLIFormatter) PrintStatus(s *StatusView) {
	c.Title("Hydration")

	if s.LastIntake == nil {
		c.Printf("  Last drink:  %s\n", c.render(styleMuted, "none recorded"))
	} else {
		c.Printf("  Last drink:  %s (%s)\n", FormatTime(*s.LastIntake), FormatAgo(*s.LastIntake, s.Now))
	}
	c.Printf("  Today:       %s\n", c.render(styleBold, strconv.Itoa(s.Today)))
	c.Printf("  Interval:    %d min\n", s.IntervalMinutes)

	if s.Remaining <= 0 {
		c.Printf("  Next:        %s\n", c.render(styleWarning, "due now"))
	} else {
		c.Printf("  Next:        in %s (%s)\n", FormatDuration(s.Remaining), FormatTimeOnly(s.Now.Add(s.Remaining)))
	}

	c.Println("")
	c.Muted("Log a drink with 'hydrate drink' or start reminders with 'hydrate run'.")
}

// PrintRecorded prints confirmation of a recorded intake.
func (c *CLIFormatter) PrintRecorded(event model.IntakeEvent, today int) {
	c.Success(fmt.Sprintf("%s at %s", event.Action, FormatTimeOnly(event.Timestamp)))
	c.Muted(fmt.Sprintf("  %d today", today))
}

// PrintDailyCounts prints per-day counts in ascending date order with a bar
// for each day and a summary line.
func (c *CLIFormatter) PrintDailyCounts(days []stats.DailyCount, summary stats.Summary) {
	if len(days) == 0 {
		c.Muted("No water intake recorded.")
		return
	}

	c.Title("Water intake per day")

	barWidth := c.Width() - 24
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 5 {
		barWidth = 5
	}
	most := stats.Max(days)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, day := range days {
		tbl.AddRow(day.Date.String(), day.Count, c.render(styleBar, Bar(day.Count, most, barWidth)))
	}
	c.Println(tbl)

	c.Println("")
	c.Printf("Total: %s over %d days, %.1f per day", c.render(styleBold, strconv.Itoa(summary.Total)), summary.Days, summary.Average)
	if summary.Best != nil {
		c.Printf(", best %s (%d)", summary.Best.Date, summary.Best.Count)
	}
	c.Println("")
}

// PrintHistory prints raw intake events, oldest first.
func (c *CLIFormatter) PrintHistory(events []model.IntakeEvent) {
	if len(events) == 0 {
		c.Muted("No water intake recorded.")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(c.render(styleBold, "WHEN"), c.render(styleBold, "ACTION"))
	for _, e := range events {
		tbl.AddRow(FormatTime(e.Timestamp), e.Action)
	}
	c.Println(tbl)
}

// PrintConfig prints configuration keys and values.
func (c *CLIFormatter) PrintConfig(keys []string, values map[string]string, path string) {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, k := range keys {
		v := values[k]
		if v == "" {
			v = c.render(styleMuted, "(unset)")
		}
		tbl.AddRow(c.render(styleBold, k), v)
	}
	c.Println(tbl)
	c.Muted("\nConfig file: " + path)
}

// Bar renders count as a horizontal bar scaled so that max fills width.
func Bar(count, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	if count > max {
		count = max
	}
	filled := count * width / max
	if count > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled)
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}
