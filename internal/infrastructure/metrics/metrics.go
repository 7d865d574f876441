package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "phishproof"

// Metrics holds the Prometheus collectors exported by the service
type Metrics struct {
	Predictions        *prometheus.CounterVec
	PredictionDuration prometheus.Histogram
	CacheLookups       *prometheus.CounterVec
	ModelTrained       prometheus.Gauge
	TrainingSamples    prometheus.Gauge
	TrainingDuration   prometheus.Gauge
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates and registers the service collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Number of verdicts returned, by verdict type.",
		}, []string{"type"}),
		PredictionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent running inference for a single text.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdict_cache_lookups_total",
			Help:      "Verdict cache lookups, by result (hit, miss, error).",
		}, []string{"result"}),
		ModelTrained: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_trained",
			Help:      "1 when a model was fitted at startup, 0 otherwise.",
		}),
		TrainingSamples: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "training_samples",
			Help:      "Number of samples the model was fitted on.",
		}),
		TrainingDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "training_duration_seconds",
			Help:      "Wall time of the startup training run.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}
