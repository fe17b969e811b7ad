package mlmodel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadScaler reads a scaler artifact. YAML and JSON are both accepted.
//
//	mean:  [40.1, 51000, ...]
//	scale: [11.2, 23000, ...]
func LoadScaler(path string) (*StandardScaler, error) {
	var s StandardScaler
	if err := decodeFile(path, &s); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scaler artifact %s: %w", path, err)
	}
	return &s, nil
}

// LoadClassifier reads a classifier artifact. YAML and JSON are both accepted.
//
//	coef:      [0.12, -0.4, ...]
//	intercept: -1.3
func LoadClassifier(path string) (*LogisticRegression, error) {
	var m LogisticRegression
	if err := decodeFile(path, &m); err != nil {
		return nil, err
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid classifier artifact %s: %w", path, err)
	}
	return &m, nil
}

// CheckCompatible verifies that scaler and classifier were fitted on the same number of features
// and that it matches the expected width.
func CheckCompatible(s *StandardScaler, m *LogisticRegression, width int) error {
	if s.Width() != width {
		return fmt.Errorf("scaler fitted on %d features, model input has %d", s.Width(), width)
	}
	if m.Width() != width {
		return fmt.Errorf("classifier fitted on %d features, model input has %d", m.Width(), width)
	}
	return nil
}

func decodeFile(path string, target any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, target); err != nil {
		return fmt.Errorf("failed to decode artifact %s: %w", path, err)
	}
	return nil
}
