package output

import (
	"time"

	"github.com/manav03panchal/hydrate/internal/model"
	"github.com/manav03panchal/hydrate/internal/stats"
)

// StatusView is the data shown by the status command.
type StatusView struct {
	Now             time.Time     `json:"-"`
	LastIntake      *time.Time    `json:"last_intake"`
	Today           int           `json:"today"`
	IntervalMinutes int           `json:"interval_minutes"`
	Remaining       time.Duration `json:"-"`
	StorePath       string        `json:"store_path"`
}

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// StatusResponse is the JSON form of StatusView.
type StatusResponse struct {
	*StatusView
	Due              bool       `json:"due"`
	RemainingSeconds int64      `json:"remaining_seconds"`
	NextReminder     *time.Time `json:"next_reminder,omitempty"`
}

// RecordResponse reports a newly recorded intake.
type RecordResponse struct {
	Status string            `json:"status"`
	Event  model.IntakeEvent `json:"event"`
	Today  int               `json:"today"`
}

// StatsResponse holds per-day counts in ascending date order.
type StatsResponse struct {
	From    *model.Date        `json:"from,omitempty"`
	To      *model.Date        `json:"to,omitempty"`
	Days    []stats.DailyCount `json:"days"`
	Summary stats.Summary      `json:"summary"`
}

// HistoryResponse lists raw intake events.
type HistoryResponse struct {
	Events []model.IntakeEvent `json:"events"`
	Total  int                 `json:"total"`
}

// ConfigResponse lists configuration values.
type ConfigResponse struct {
	Path   string            `json:"path"`
	Values map[string]string `json:"values"`
}

// ErrorResponse represents an error in JSON format.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Category   string `json:"category,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintStatus prints the reminder status.
func (j *JSONFormatter) PrintStatus(s *StatusView) error {
	resp := StatusResponse{
		StatusView:       s,
		Due:              s.Remaining <= 0,
		RemainingSeconds: int64(s.Remaining.Seconds()),
	}
	if s.Remaining > 0 {
		next := s.Now.Add(s.Remaining)
		resp.NextReminder = &next
	} else {
		resp.RemainingSeconds = 0
	}
	return j.JSON(resp)
}

// PrintRecorded prints a recorded intake.
func (j *JSONFormatter) PrintRecorded(event model.IntakeEvent, today int) error {
	return j.JSON(RecordResponse{Status: "recorded", Event: event, Today: today})
}

// PrintDailyCounts prints per-day counts. Bounds of r are included when set.
func (j *JSONFormatter) PrintDailyCounts(days []stats.DailyCount, summary stats.Summary, r stats.Range) error {
	if days == nil {
		days = []stats.DailyCount{}
	}
	resp := StatsResponse{Days: days, Summary: summary}
	if !r.From.IsZero() {
		resp.From = &r.From
	}
	if !r.To.IsZero() {
		resp.To = &r.To
	}
	return j.JSON(resp)
}

// PrintHistory prints raw intake events.
func (j *JSONFormatter) PrintHistory(events []model.IntakeEvent, total int) error {
	if events == nil {
		events = []model.IntakeEvent{}
	}
	return j.JSON(HistoryResponse{Events: events, Total: total})
}

// PrintConfig prints configuration values.
func (j *JSONFormatter) PrintConfig(values map[string]string, path string) error {
	return j.JSON(ConfigResponse{Path: path, Values: values})
}

// PrintError prints an error response.
func (j *JSONFormatter) PrintError(errMsg, category, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      errMsg,
		Category:   category,
		Suggestion: suggestion,
	})
}
