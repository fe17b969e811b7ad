// Package features turns raw financing requests into the fixed numeric layout the classifier was trained on.
package features

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"loan-scorer/internal/apperrors"
)

// Record is a raw, loosely typed financing request keyed by attribute name.
type Record map[string]any

// Vector is an aligned model input. Position i holds Schema[i].
type Vector []float64

// Align builds the model input for rec.
// Every numeric attribute must be present; categorical values that have no
// schema column (including the reference category) leave all indicators at 0.
// Attributes outside the schema are ignored.
func Align(rec Record) (Vector, error) {
	vec := make(Vector, Width)
	for i, col := range Schema {
		if col.Indicator() {
			if Category(rec, col.Field) == col.Value {
				vec[i] = 1
			}
			continue
		}

		v, err := Number(rec, col.Field)
		if err != nil {
			return nil, err
		}
		vec[i] = v
	}
	return vec, nil
}

// Number reads a numeric attribute. Quoted numbers are accepted since the
// import source does not type its JSON consistently. NaN and infinities are rejected.
func Number(rec Record, field string) (float64, error) {
	raw, ok := rec[field]
	if !ok || raw == nil {
		return 0, fmt.Errorf("missing numeric field %q: %w", field, apperrors.ErrFeatureMismatch)
	}

	f, err := toFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w: %w", field, err, apperrors.ErrFeatureMismatch)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("field %q is not finite (%v): %w", field, raw, apperrors.ErrFeatureMismatch)
	}
	return f, nil
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("not numeric (%q)", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
}

// Category reads a categorical attribute. Non-string values read as "".
func Category(rec Record, field string) string {
	s, _ := rec[field].(string)
	return s
}
