package service

import (
	"context"
	"fmt"

	"housing-prediction-api/internal/features"
	"housing-prediction-api/internal/observability"

	"github.com/jonboulle/clockwork"
)

// Endpoint names used for metric labels.
const (
	EndpointPredict        = "predict"
	EndpointPredictMinimal = "predict_minimal"
)

// Model interface for dependency injection
type Model interface {
	Predict(features.Vector) (float64, error)
}

// Prediction is the result of one inference.
type Prediction struct {
	Prediction float64         `json:"prediction" example:"412345.67"`
	Metadata   features.Record `json:"metadata" swaggertype:"object"`
}

// PredictionService contains the core business logic for predictions
type PredictionService struct {
	table   features.Lookup
	model   Model
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewPredictionService creates a new prediction service. The table and model
// are shared read-only across requests.
func NewPredictionService(table features.Lookup, model Model, metrics *observability.Metrics, clock clockwork.Clock) *PredictionService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PredictionService{
		table:   table,
		model:   model,
		metrics: metrics,
		clock:   clock,
	}
}

// Predict enriches in with demographics, runs the model and returns the
// prediction with the merged metadata. endpoint only labels metrics.
func (s *PredictionService) Predict(ctx context.Context, endpoint string, in features.Input) (*Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	start := s.clock.Now()

	vec, merged, err := features.Prepare(in, s.table)
	if err != nil {
		s.observe(endpoint, observability.OutcomeError)
		return nil, fmt.Errorf("service: failed to prepare features: %w", err)
	}
	s.observeLookup(merged.Enriched)

	y, err := s.model.Predict(vec)
	if err != nil {
		s.observe(endpoint, observability.OutcomeError)
		return nil, fmt.Errorf("service: model prediction failed: %w", err)
	}

	if s.metrics != nil {
		s.metrics.PredictionDuration.WithLabelValues(endpoint).Observe(s.clock.Since(start).Seconds())
	}
	s.observe(endpoint, observability.OutcomeSuccess)

	return &Prediction{Prediction: y, Metadata: merged}, nil
}

func (s *PredictionService) observe(endpoint, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.PredictionRequests.WithLabelValues(endpoint, outcome).Inc()
}

func (s *PredictionService) observeLookup(hit bool) {
	if s.metrics == nil {
		return
	}
	result := observability.LookupMiss
	if hit {
		result = observability.LookupHit
	}
	s.metrics.DemographicsLookups.WithLabelValues(result).Inc()
}
