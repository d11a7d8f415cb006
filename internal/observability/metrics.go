package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "housing_prediction"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Lookup result label values.
const (
	LookupHit  = "hit"
	LookupMiss = "miss"
)

// Metrics holds the Prometheus collectors for the prediction API.
type Metrics struct {
	PredictionRequests  *prometheus.CounterVec   // labels: endpoint, outcome={success,error}
	DemographicsLookups *prometheus.CounterVec   // labels: result={hit,miss}
	PredictionDuration  *prometheus.HistogramVec // labels: endpoint
	DemographicsRows    prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PredictionRequests,
		m.DemographicsLookups,
		m.PredictionDuration,
		m.DemographicsRows,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as
// many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PredictionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_requests_total",
			Help:      "Prediction requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		DemographicsLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "demographics_lookups_total",
			Help:      "Zipcode lookups against the demographics table by result.",
		}, []string{"result"}),
		PredictionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent assembling features and running the model.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"endpoint"}),
		DemographicsRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "demographics_rows",
			Help:      "Distinct zipcodes loaded into the demographics table.",
		}),
	}
}
