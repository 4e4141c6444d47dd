package reconciler

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"alertstate/pkg/logging"
)

// Metrics tracks run results in a private Prometheus registry.
//
// The tool is a short lived process, so the registry is pushed to a
// Pushgateway at the end of a run instead of being scraped.
type Metrics struct {
	registry *prometheus.Registry

	mutations   *prometheus.CounterVec
	attempts    *prometheus.CounterVec
	runs        prometheus.Counter
	monitors    *prometheus.GaugeVec
	planned     prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alertstate",
			Name:      "mutations_total",
			Help:      "Monitor mutations by action and outcome.",
		}, []string{"action", "outcome"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alertstate",
			Name:      "mutation_attempts_total",
			Help:      "Calls issued to the monitors API, retries included.",
		}, []string{"action"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alertstate",
			Name:      "runs_total",
			Help:      "Completed reconciliation runs.",
		}),
		monitors: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "alertstate",
			Name:      "monitors",
			Help:      "Monitors seen in the last run by side.",
		}, []string{"side"}),
		planned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "alertstate",
			Name:      "planned_actions",
			Help:      "Actions planned in the last run.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "alertstate",
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "alertstate",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run completed.",
		}),
	}

	m.registry.MustRegister(m.mutations, m.attempts, m.runs, m.monitors, m.planned, m.duration, m.lastSuccess)
	return m
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveResult records one executed action.
func (m *Metrics) ObserveResult(r Result) {
	action := string(r.Action.Kind)
	m.mutations.WithLabelValues(action, r.Outcome.String()).Inc()
	m.attempts.WithLabelValues(action).Add(float64(r.Attempts))
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(s Summary) {
	m.runs.Inc()
	m.monitors.WithLabelValues(SourceDeclared).Set(float64(s.Declared))
	m.monitors.WithLabelValues(SourceRemote).Set(float64(s.Remote))
	m.planned.Set(float64(s.Planned))
	m.duration.Set(s.Duration.Seconds())
	m.lastSuccess.SetToCurrentTime()
}

// Push sends the registry to the Pushgateway at url, grouped by project.
func (m *Metrics) Push(ctx context.Context, url, job, project string) error {
	err := push.New(url, job).
		Gatherer(m.registry).
		Grouping("project", project).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	logging.Debug("Metrics", "Pushed run metrics to %s (job %s)", url, job)
	return nil
}
