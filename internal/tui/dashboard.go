package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/hydrate/internal/logging"
	"github.com/manav03panchal/hydrate/internal/model"
	"github.com/manav03panchal/hydrate/internal/scheduler"
	"github.com/manav03panchal/hydrate/internal/stats"
)

// IntervalStep is how far + and - move the reminder interval.
const IntervalStep = 5

// HistoryDays is the number of days shown in the bar chart.
const HistoryDays = 7

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// History supplies recorded intakes for the chart.
type History interface {
	LoadAll() ([]model.IntakeEvent, error)
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	ctx       context.Context
	scheduler *scheduler.Scheduler
	history   History
	clock     scheduler.Clock
	logger    *slog.Logger
	message   string

	// Data
	status scheduler.Status
	days   []stats.DailyCount
	today  int

	// UI state
	prompting bool
	width     int
	height    int
	err       error
	notice    string
	noticeExp time.Time
	quitting  bool

	refreshInterval time.Duration
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Scheduler       *scheduler.Scheduler
	History         History
	Clock           scheduler.Clock
	Message         string
	RefreshInterval time.Duration
}

// NewDashboardModel creates a new dashboard model. The scheduler must
// already be started.
func NewDashboardModel(ctx context.Context, config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.Clock == nil {
		config.Clock = scheduler.SystemClock
	}
	if config.Message == "" {
		config.Message = scheduler.DefaultMessage
	}

	return &DashboardModel{
		ctx:             ctx,
		scheduler:       config.Scheduler,
		history:         config.History,
		clock:           config.Clock,
		logger:          logging.LoggerFromContext(ctx).With("component", "dashboard"),
		message:         config.Message,
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.evaluate()
		if !m.noticeExp.IsZero() && m.clock.Now().After(m.noticeExp) {
			m.notice = ""
			m.noticeExp = time.Time{}
		}
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		m.evaluate()
		return m, nil
	}

	return m, nil
}

// evaluate asks the scheduler whether a reminder is due and opens the
// prompt if so.
func (m *DashboardModel) evaluate() {
	if !m.prompting && m.scheduler.Poll() {
		m.prompting = true
		m.logger.Info("reminder due")
	}
	m.status = m.scheduler.Status()
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if err := m.scheduler.Respond(m.ctx, scheduler.Exit); err != nil {
			m.logger.Warn("exit", logging.KeyError, err)
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Drink):
		m.drink()
		return m, nil

	case key.Matches(msg, keys.Snooze):
		if !m.prompting {
			m.setNotice("No reminder to snooze", 2*time.Second)
			return m, nil
		}
		m.prompting = false
		if err := m.scheduler.Respond(m.ctx, scheduler.Snoozed); err != nil {
			m.err = err
		} else {
			m.setNotice("Snoozed", 2*time.Second)
		}
		m.status = m.scheduler.Status()
		return m, nil

	case key.Matches(msg, keys.Longer):
		m.changeInterval(IntervalStep)
		return m, nil

	case key.Matches(msg, keys.Shorter):
		m.changeInterval(-IntervalStep)
		return m, nil

	case key.Matches(msg, keys.Refresh):
		m.loadData()
		m.setNotice("Refreshed", time.Second)
		return m, nil
	}

	return m, nil
}

// drink answers an open prompt with Confirmed, or records an intake
// between reminders. A failed write keeps the reminder due.
func (m *DashboardModel) drink() {
	var err error
	if m.prompting {
		m.prompting = false
		err = m.scheduler.Respond(m.ctx, scheduler.Confirmed)
	} else {
		err = m.scheduler.Record(m.ctx)
	}

	if err != nil {
		m.err = err
		m.status = m.scheduler.Status()
		return
	}

	m.err = nil
	m.setNotice("Logged. Nice!", 2*time.Second)
	m.loadData()
	m.status = m.scheduler.Status()
}

func (m *DashboardModel) changeInterval(delta int) {
	minutes := int(m.scheduler.Status().Interval/time.Minute) + delta
	if err := m.scheduler.SetInterval(minutes); err != nil {
		m.setNotice(err.Error(), 3*time.Second)
		return
	}
	m.status = m.scheduler.Status()
	m.setNotice(fmt.Sprintf("Interval set to %d min", minutes), 2*time.Second)
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.notice != "" {
		sections = append(sections, StyleWarning.Render(m.notice))
	}

	if m.prompting {
		prompt := &PromptComponent{Message: m.message, Width: m.width}
		sections = append(sections, prompt.View())
	}

	countdown := &CountdownComponent{Status: m.status, Width: m.width}
	sections = append(sections, countdown.View())

	history := &HistoryComponent{Days: m.days, Today: m.today, Width: m.width}
	sections = append(sections, history.View())

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Hydrate")
	now := StyleSubtitle.Render(m.clock.Now().Format("Mon Jan 2, 15:04:05"))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", now) + "\n"
}

// loadData reloads the chart from the intake log.
func (m *DashboardModel) loadData() {
	events, err := m.history.LoadAll()
	if err != nil {
		m.err = err
		return
	}

	now := m.clock.Now()
	counts := stats.CountsByDate(events)
	today := model.DateOf(now)
	from := today.AddDays(-(HistoryDays - 1))

	recent := stats.Sorted(stats.Filter(counts, stats.Range{From: from, To: today}))
	m.days = stats.FillGaps(recent, from, today)
	m.today = stats.Today(counts, now)
}

// setNotice sets a temporary message.
func (m *DashboardModel) setNotice(msg string, duration time.Duration) {
	m.notice = msg
	m.noticeExp = m.clock.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, config DashboardConfig) error {
	m := NewDashboardModel(ctx, config)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
