package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	predictions *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	modelLoaded *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rxpulse_predictions_total",
				Help: "Total number of predictions served per model role",
			},
			[]string{"role", "status"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rxpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		modelLoaded: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rxpulse_model_loaded",
				Help: "Whether a model artifact is loaded (1) or not (0)",
			},
			[]string{"role"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rxpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordPrediction records a prediction outcome for a model role.
func (r *Recorder) RecordPrediction(role, status string) {
	r.predictions.WithLabelValues(role, status).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordModelLoaded records artifact availability for a role.
func (r *Recorder) RecordModelLoaded(role string, loaded bool) {
	v := 0.0
	if loaded {
		v = 1.0
	}
	r.modelLoaded.WithLabelValues(role).Set(v)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
