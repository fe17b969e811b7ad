// Package metrics exposes Prometheus metrics for scoring, import and query operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Import record outcomes.
const (
	OutcomeInserted = "inserted"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// Manager owns the service metrics and the registry they are registered on.
type Manager struct {
	namespace string
	registry  *prometheus.Registry
	buckets   []float64

	predictions   *prometheus.CounterVec
	scoringErrors prometheus.Counter
	importRecords *prometheus.CounterVec
	importRuns    *prometheus.CounterVec
	queryLatency  *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = ns }
}

// WithRegistry registers the metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Manager) { m.registry = reg }
}

// WithHistogramBuckets overrides the latency buckets (seconds).
func WithHistogramBuckets(b []float64) Option {
	return func(m *Manager) { m.buckets = b }
}

// NewManager creates and registers all metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "loan_scorer",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)

	m.predictions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "scoring",
		Name:      "predictions_total",
		Help:      "Scored requests by predicted class",
	}, []string{"class"})

	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "scoring",
		Name:      "errors_total",
		Help:      "Scoring calls rejected for input or feature errors",
	})

	m.importRecords = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "import",
		Name:      "records_total",
		Help:      "Imported candidate records by outcome",
	}, []string{"outcome"})

	m.importRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "import",
		Name:      "runs_total",
		Help:      "Import runs by status",
	}, []string{"status"})

	m.queryLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "query",
		Name:      "duration_seconds",
		Help:      "Latency of list and statistics queries",
		Buckets:   m.buckets,
	}, []string{"operation"})

	return m
}

// RecordPrediction counts a successful prediction.
func (m *Manager) RecordPrediction(class string) {
	m.predictions.WithLabelValues(class).Inc()
}

// RecordScoringError counts a rejected scoring call.
func (m *Manager) RecordScoringError() {
	m.scoringErrors.Inc()
}

// RecordImportRecords adds n records with the given outcome.
func (m *Manager) RecordImportRecords(outcome string, n int) {
	if n <= 0 {
		return
	}
	m.importRecords.WithLabelValues(outcome).Add(float64(n))
}

// RecordImportRun counts a finished import run.
func (m *Manager) RecordImportRun(status string) {
	m.importRuns.WithLabelValues(status).Inc()
}

// ObserveQuery records the latency of a query operation started at start.
func (m *Manager) ObserveQuery(operation string, start time.Time) {
	m.queryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Registry returns the registry backing the manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
