package daemon

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"

	"github.com/manav03panchal/hydrate/internal/model"
	"github.com/manav03panchal/hydrate/internal/scheduler"
)

// MetricsNamespace prefixes every exported metric name.
const MetricsNamespace = "hydrate"

// Metrics counts what happened during one reminder session. Counters live
// in a private prometheus registry so they can be scraped through Handler.
type Metrics struct {
	registry      *prometheus.Registry
	promptsShown  prometheus.Counter
	promptsFailed prometheus.Counter
	responses     *prometheus.CounterVec
	appended      prometheus.Counter
	writeFailures prometheus.Counter

	mu          sync.RWMutex
	startedAt   time.Time
	lastPrompt  time.Time
	lastError   string
	lastErrorAt time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		promptsShown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "prompts_total",
			Help:      "Reminder prompts shown.",
		}),
		promptsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "prompt_failures_total",
			Help:      "Reminder prompts that could not be shown or answered.",
		}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "responses_total",
			Help:      "Answers to reminder prompts by choice.",
		}, []string{"response"}),
		appended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "intakes_appended_total",
			Help:      "Intake records written to the log.",
		}),
		writeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "intake_write_failures_total",
			Help:      "Intake records that could not be written.",
		}),
		startedAt: time.Now(),
	}
	m.registry.MustRegister(m.promptsShown, m.promptsFailed, m.responses, m.appended, m.writeFailures)
	return m
}

// Handler serves the counters in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// MetricsSnapshot represents a point-in-time view of metrics.
type MetricsSnapshot struct {
	PromptsShown  int64      `json:"prompts_shown"`
	PromptsFailed int64      `json:"prompts_failed"`
	Confirmed     int64      `json:"confirmed"`
	Snoozed       int64      `json:"snoozed"`
	Appended      int64      `json:"appended"`
	WriteFailures int64      `json:"write_failures"`
	Uptime        string     `json:"uptime"`
	LastPromptAt  *time.Time `json:"last_prompt_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	LastErrorAt   *time.Time `json:"last_error_at,omitempty"`
}

// Snapshot returns a copy of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		PromptsShown:  counterValue(m.promptsShown),
		PromptsFailed: counterValue(m.promptsFailed),
		Confirmed:     counterValue(m.responses.WithLabelValues(scheduler.Confirmed.String())),
		Snoozed:       counterValue(m.responses.WithLabelValues(scheduler.Snoozed.String())),
		Appended:      counterValue(m.appended),
		WriteFailures: counterValue(m.writeFailures),
		Uptime:        time.Since(m.startedAt).Truncate(time.Second).String(),
		LastError:     m.lastError,
	}
	if !m.lastPrompt.IsZero() {
		t := m.lastPrompt
		snap.LastPromptAt = &t
	}
	if !m.lastErrorAt.IsZero() {
		t := m.lastErrorAt
		snap.LastErrorAt = &t
	}
	return snap
}

func counterValue(c prometheus.Counter) int64 {
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		return 0
	}
	return int64(metric.GetCounter().GetValue())
}

// LogValues returns the snapshot as slog key/value pairs.
func (m *Metrics) LogValues() []any {
	s := m.Snapshot()
	return []any{
		"prompts", s.PromptsShown,
		"confirmed", s.Confirmed,
		"snoozed", s.Snoozed,
		"appended", s.Appended,
		"write_failures", s.WriteFailures,
		"uptime", s.Uptime,
	}
}

func (m *Metrics) recordError(err error) {
	m.mu.Lock()
	m.lastError = err.Error()
	m.lastErrorAt = time.Now()
	m.mu.Unlock()
}

// InstrumentNotifier wraps n so every prompt and answer is counted.
func InstrumentNotifier(n scheduler.Notifier, m *Metrics) scheduler.Notifier {
	return &countingNotifier{next: n, metrics: m}
}

type countingNotifier struct {
	next    scheduler.Notifier
	metrics *Metrics
}

func (c *countingNotifier) Prompt(ctx context.Context, title, message string) (scheduler.Response, error) {
	c.metrics.promptsShown.Inc()
	c.metrics.mu.Lock()
	c.metrics.lastPrompt = time.Now()
	c.metrics.mu.Unlock()

	resp, err := c.next.Prompt(ctx, title, message)
	if err != nil {
		c.metrics.promptsFailed.Inc()
		c.metrics.recordError(err)
		return resp, err
	}

	c.metrics.responses.WithLabelValues(resp.String()).Inc()
	return resp, nil
}

// InstrumentStore wraps s so appends and write failures are counted.
func InstrumentStore(s scheduler.IntakeStore, m *Metrics) scheduler.IntakeStore {
	return &countingStore{IntakeStore: s, metrics: m}
}

type countingStore struct {
	scheduler.IntakeStore
	metrics *Metrics
}

func (c *countingStore) Append(event model.IntakeEvent) error {
	if err := c.IntakeStore.Append(event); err != nil {
		c.metrics.writeFailures.Inc()
		c.metrics.recordError(err)
		return err
	}
	c.metrics.appended.Inc()
	return nil
}
