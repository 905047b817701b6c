// Package metrics exports drill lifecycle counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/soroban/internal/problem"
)

const namespace = "soroban"

// DrillMetrics implements orchestration.Observer. Each instance owns its
// registry, so several can coexist in one process.
type DrillMetrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	runsStarted        *prometheus.CounterVec
	runsCompleted      prometheus.Counter
	runsSuperseded     prometheus.Counter
	generationFailures *prometheus.CounterVec
	utteranceErrors    prometheus.Counter
	generationAttempts prometheus.Histogram
	runDuration        prometheus.Histogram
	scrapes            prometheus.Counter
}

// NewDrillMetrics creates the collectors and registers them together with
// the Go runtime and process collectors.
func NewDrillMetrics() *DrillMetrics {
	m := &DrillMetrics{
		registry: prometheus.NewRegistry(),
		runsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_started_total",
			Help:      "Drill runs started, by difficulty step and mode.",
		}, []string{"step", "mode"}),
		runsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_completed_total",
			Help:      "Drill runs that reached the answer reveal.",
		}),
		runsSuperseded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_superseded_total",
			Help:      "Drill runs abandoned because of stop or restart.",
		}),
		generationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_failures_total",
			Help:      "Runs whose problem search exhausted its budget.",
		}, []string{"step", "mode"}),
		utteranceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "utterance_errors_total",
			Help:      "Utterances the speech engine reported as failed.",
		}),
		generationAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_attempts",
			Help:      "Full sequence constructions needed per generated problem.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time from playback start to answer reveal.",
			Buckets:   prometheus.LinearBuckets(5, 5, 12),
		}),
		scrapes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metrics_scrapes_total",
			Help:      "Requests served by the metrics endpoint.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.runsStarted,
		m.runsCompleted,
		m.runsSuperseded,
		m.generationFailures,
		m.utteranceErrors,
		m.generationAttempts,
		m.runDuration,
		m.scrapes,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

func labels(cfg problem.Config) prometheus.Labels {
	return prometheus.Labels{"step": strconv.Itoa(cfg.Step), "mode": string(cfg.Mode)}
}

// RunStarted counts a started run.
func (m *DrillMetrics) RunStarted(cfg problem.Config) {
	m.runsStarted.With(labels(cfg)).Inc()
}

// ProblemGenerated records how hard the search was.
func (m *DrillMetrics) ProblemGenerated(p problem.Problem) {
	m.generationAttempts.Observe(float64(p.Attempts))
}

// GenerationFailed counts an exhausted search.
func (m *DrillMetrics) GenerationFailed(cfg problem.Config, _ error) {
	m.generationFailures.With(labels(cfg)).Inc()
}

// UtteranceFailed counts a speech engine error.
func (m *DrillMetrics) UtteranceFailed(error) { m.utteranceErrors.Inc() }

// RunSuperseded counts an abandoned run.
func (m *DrillMetrics) RunSuperseded() { m.runsSuperseded.Inc() }

// RunCompleted counts a finished run and its duration.
func (m *DrillMetrics) RunCompleted(elapsed time.Duration) {
	m.runsCompleted.Inc()
	m.runDuration.Observe(elapsed.Seconds())
}

// IncrementScrapes counts one request to the metrics endpoint.
func (m *DrillMetrics) IncrementScrapes() { m.scrapes.Inc() }

// WritePrometheus writes the exposition format to w.
func (m *DrillMetrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Registry exposes the underlying registry.
func (m *DrillMetrics) Registry() *prometheus.Registry { return m.registry }
