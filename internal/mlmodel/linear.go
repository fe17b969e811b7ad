// Package mlmodel holds the pre-fitted scaler and classifier exported by the training pipeline.
// Both are immutable after loading and safe for concurrent use.
package mlmodel

import (
	"fmt"
	"math"

	"loan-scorer/internal/apperrors"
)

// StandardScaler centers and scales each feature: (x - mean) / scale.
type StandardScaler struct {
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
}

// Width is the number of features the scaler was fitted on.
func (s *StandardScaler) Width() int {
	return len(s.Mean)
}

// Transform returns a scaled copy of x.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d: %w", len(s.Mean), len(x), apperrors.ErrFeatureMismatch)
	}

	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		// zero-variance features are left centered but unscaled
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 {
		return fmt.Errorf("scaler has no features")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler mean has %d entries, scale has %d", len(s.Mean), len(s.Scale))
	}
	return nil
}

// LogisticRegression is a binary linear classifier.
type LogisticRegression struct {
	Coef      []float64 `yaml:"coef"`
	Intercept float64   `yaml:"intercept"`
}

// Width is the number of features the classifier was fitted on.
func (m *LogisticRegression) Width() int {
	return len(m.Coef)
}

func (m *LogisticRegression) decision(x []float64) (float64, error) {
	if len(x) != len(m.Coef) {
		return 0, fmt.Errorf("classifier expects %d features, got %d: %w", len(m.Coef), len(x), apperrors.ErrFeatureMismatch)
	}
	z := m.Intercept
	for i, v := range x {
		z += m.Coef[i] * v
	}
	return z, nil
}

// PredictProba returns the probability of the positive class.
func (m *LogisticRegression) PredictProba(x []float64) (float64, error) {
	z, err := m.decision(x)
	if err != nil {
		return 0, err
	}
	return 1 / (1 + math.Exp(-z)), nil
}

// Predict returns 1 for the positive class and 0 otherwise.
func (m *LogisticRegression) Predict(x []float64) (int, error) {
	z, err := m.decision(x)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return 1, nil
	}
	return 0, nil
}

func (m *LogisticRegression) validate() error {
	if len(m.Coef) == 0 {
		return fmt.Errorf("classifier has no coefficients")
	}
	return nil
}
