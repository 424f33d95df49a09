// Package metrics holds the Prometheus instruments for simulation runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dfa"

// Metrics counts simulation runs. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	// RunsTotal counts runs by outcome (accepted, rejected, no_initial_state,
	// no_transition, cancelled).
	RunsTotal *prometheus.CounterVec

	// SymbolsTotal counts input symbols consumed across runs.
	SymbolsTotal prometheus.Counter

	// RunDurationSeconds measures wall time per run, delays included.
	RunDurationSeconds prometheus.Histogram

	// Running is 1 while a run is in flight.
	Running prometheus.Gauge
}

// New creates the instruments and registers them with reg. Pass
// prometheus.DefaultRegisterer to expose them globally, or a fresh
// prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_total",
			Help:      "Simulation runs by outcome",
		}, []string{"outcome"}),
		SymbolsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "symbols_total",
			Help:      "Input symbols consumed",
		}),
		RunDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "run_duration_seconds",
			Help:      "Simulation run duration including animation delays",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
		}),
		Running: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "running",
			Help:      "Whether a simulation run is in flight",
		}),
	}
}

// RunStarted marks a run as in flight.
func (m *Metrics) RunStarted() {
	if m == nil {
		return
	}
	m.Running.Set(1)
}

// RunFinished records a finished run.
func (m *Metrics) RunFinished(outcome string, consumed int, d time.Duration) {
	if m == nil {
		return
	}
	m.Running.Set(0)
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.SymbolsTotal.Add(float64(consumed))
	m.RunDurationSeconds.Observe(d.Seconds())
}
