// Package metrics records per-run strategy outcomes in a private Prometheus
// registry, exportable in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Strategy attempt outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeDeclined = "declined"
	OutcomeSkipped  = "skipped"
)

// Recorder collects the metrics of a single run. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	attempts  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	extracted *prometheus.GaugeVec
}

// New returns a Recorder backed by its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "palettes_strategy_attempts_total",
			Help: "Extraction strategy attempts by outcome.",
		}, []string{"strategy", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "palettes_strategy_duration_seconds",
			Help:    "Time spent in each extraction strategy.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40},
		}, []string{"strategy"}),
		extracted: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "palettes_extracted",
			Help: "Palettes emitted by the run, labelled by the source that produced them.",
		}, []string{"source"}),
	}
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Attempt records one strategy run with its outcome and duration.
func (r *Recorder) Attempt(strategy, outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.attempts.WithLabelValues(strategy, outcome).Inc()
	r.duration.WithLabelValues(strategy).Observe(took.Seconds())
}

// Skip records a strategy the selected method did not run.
func (r *Recorder) Skip(strategy string) {
	if r == nil {
		return
	}
	r.attempts.WithLabelValues(strategy, OutcomeSkipped).Inc()
}

// Extracted records how many palettes the run emitted and from where.
func (r *Recorder) Extracted(source string, n int) {
	if r == nil {
		return
	}
	r.extracted.WithLabelValues(source).Set(float64(n))
}

// WriteTextfile writes every metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
