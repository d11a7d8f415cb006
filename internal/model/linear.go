package model

import (
	"errors"
	"fmt"
	"math"
	"os"

	"housing-prediction-api/internal/features"
	"housing-prediction-api/internal/models"

	"gopkg.in/yaml.v3"
)

// KindLinear identifies the linear model artifact format.
const KindLinear = "linear"

// ErrInvalidArtifact is returned when a model file parses but cannot be used.
var ErrInvalidArtifact = errors.New("model: invalid artifact")

// ErrNonFinite is returned when a score overflows to ±Inf or is NaN.
var ErrNonFinite = errors.New("model: prediction is not a finite number")

// Levels holds the weights for one categorical feature. Categories not listed
// contribute Default.
type Levels struct {
	Weights map[string]float64 `yaml:"weights"`
	Default float64            `yaml:"default"`
}

// LinearModel scores a vector as intercept + Σ coefficient·number for numeric
// features + the level weight of each categorical feature.
type LinearModel struct {
	Intercept    float64            `yaml:"intercept"`
	Coefficients map[string]float64 `yaml:"coefficients"`
	Categories   map[string]Levels  `yaml:"categories"`
	ModelKind    string             `yaml:"kind"`
}

// Load reads a model artifact from path. The file may be YAML or JSON.
func Load(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.LoadError{Resource: "model", Source: path, Err: err}
	}

	m, err := Parse(data)
	if err != nil {
		return nil, &models.LoadError{Resource: "model", Source: path, Err: err}
	}
	return m, nil
}

// Parse decodes and validates an artifact. Every numeric feature in the
// feature order must have a coefficient.
func Parse(data []byte) (*LinearModel, error) {
	var m LinearModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("model: failed to decode artifact: %w", err)
	}

	if m.ModelKind == "" {
		m.ModelKind = KindLinear
	}
	if m.ModelKind != KindLinear {
		return nil, fmt.Errorf("%w: unsupported kind %q", ErrInvalidArtifact, m.ModelKind)
	}

	for _, name := range []string{features.Age, features.Income} {
		if _, ok := m.Coefficients[name]; !ok {
			return nil, fmt.Errorf("%w: missing coefficient for %q", ErrInvalidArtifact, name)
		}
	}

	return &m, nil
}

// Kind reports the artifact format.
func (m *LinearModel) Kind() string {
	return m.ModelKind
}

// Predict scores vec, which must follow features.Order.
func (m *LinearModel) Predict(vec features.Vector) (float64, error) {
	if len(vec) != len(features.Order()) {
		return 0, fmt.Errorf("model: expected %d features, got %d", len(features.Order()), len(vec))
	}

	y := m.Intercept
	for _, v := range vec {
		if v.Numeric {
			coef, ok := m.Coefficients[v.Name]
			if !ok {
				return 0, fmt.Errorf("model: no coefficient for numeric feature %q", v.Name)
			}
			y += coef * v.Number
			continue
		}

		levels, ok := m.Categories[v.Name]
		if !ok {
			continue
		}
		if w, ok := levels.Weights[v.Text]; ok {
			y += w
		} else {
			y += levels.Default
		}
	}
	if math.IsInf(y, 0) || math.IsNaN(y) {
		return 0, fmt.Errorf("%w: %v", ErrNonFinite, y)
	}
	return y, nil
}
