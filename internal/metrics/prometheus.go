package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/core"
)

// defaultBuckets are millisecond buckets from 1ms to about 65s.
var defaultBuckets = prometheus.ExponentialBuckets(1, 4, 9)

// Run outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBusy    = "busy"
)

// Manager owns the service metrics and the registry they live on.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Pipeline steps
	stepDuration *prometheus.HistogramVec
	stepInput    *prometheus.CounterVec
	stepOutput   *prometheus.CounterVec
	stepErrors   *prometheus.CounterVec
	stepWarnings *prometheus.CounterVec

	// Runs
	runs              *prometheus.CounterVec
	runDuration       prometheus.Histogram
	activeRuns        prometheus.Gauge
	recordsOut        prometheus.Counter
	recordsInvalid    prometheus.Counter
	duplicatesRemoved prometheus.Counter
	mergeMatched      prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var _ core.StepObserver = (*Manager)(nil)

// NewManager creates a metrics manager. Without WithRegistry a fresh
// registry is used, so managers never collide on the default registerer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hmda",
		subsystem:        "etl",
		histogramBuckets: defaultBuckets,
		enabled:          true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.stepDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "step_duration_milliseconds",
		Help:      "Pipeline step duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"step"})

	m.stepInput = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "step_input_rows_total",
		Help:      "Rows entering each pipeline step",
	}, []string{"step"})

	m.stepOutput = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "step_output_rows_total",
		Help:      "Rows leaving each pipeline step",
	}, []string{"step"})

	m.stepErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "step_errors_total",
		Help:      "Error messages recorded by each pipeline step",
	}, []string{"step"})

	m.stepWarnings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "step_warnings_total",
		Help:      "Warning messages recorded by each pipeline step",
	}, []string{"step"})

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Pipeline runs by outcome",
	}, []string{"outcome"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_milliseconds",
		Help:      "End to end pipeline run duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.activeRuns = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_runs",
		Help:      "Pipeline runs currently in progress",
	})

	m.recordsOut = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_output_total",
		Help:      "Canonical records produced",
	})

	m.recordsInvalid = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_invalid_total",
		Help:      "Records with at least one validation error",
	})

	m.duplicatesRemoved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicates_removed_total",
		Help:      "Rows removed as duplicates",
	})

	m.mergeMatched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "merge_matched_total",
		Help:      "Primary records matched to supplemental data",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveStep records a completed pipeline step.
func (m *Manager) ObserveStep(t core.StepTrace) {
	if !m.enabled {
		return
	}
	m.stepDuration.WithLabelValues(t.Step).Observe(float64(t.DurationMs))
	m.stepInput.WithLabelValues(t.Step).Add(float64(t.InputCount))
	m.stepOutput.WithLabelValues(t.Step).Add(float64(t.OutputCount))
	m.stepErrors.WithLabelValues(t.Step).Add(float64(len(t.Errors)))
	m.stepWarnings.WithLabelValues(t.Step).Add(float64(len(t.Warnings)))
}

// RunStarted marks a run as in progress. Call RunFinished when it ends.
func (m *Manager) RunStarted() {
	if m.enabled {
		m.activeRuns.Inc()
	}
}

// RunFinished records the outcome of a run. sum is ignored unless the
// outcome is OutcomeSuccess.
func (m *Manager) RunFinished(outcome string, sum *core.RunSummary) {
	if !m.enabled {
		return
	}
	m.activeRuns.Dec()
	m.runs.WithLabelValues(outcome).Inc()
	if outcome != OutcomeSuccess || sum == nil {
		return
	}
	m.runDuration.Observe(float64(sum.DurationMs))
	m.recordsOut.Add(float64(sum.OutputRows))
	m.recordsInvalid.Add(float64(sum.Invalid))
	m.duplicatesRemoved.Add(float64(sum.DuplicatesRemoved))
	m.mergeMatched.Add(float64(sum.Matched))
}

// RecordHTTPRequest records one served request.
func (m *Manager) RecordHTTPRequest(route, method string, status int, d time.Duration) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(float64(d.Milliseconds()))
}
