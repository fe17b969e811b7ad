package service

import (
	"errors"
	"fmt"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/dto"
	"loan-scorer/internal/features"
	"loan-scorer/pkg/metrics"

	"go.uber.org/zap"
)

// Predicted classes.
const (
	ClassApproved = "SI"
	ClassRejected = "NO"
)

// Scaler is the fitted feature transform applied before classification.
type Scaler interface {
	Transform(x []float64) ([]float64, error)
}

// Classifier is the fitted binary model.
type Classifier interface {
	Predict(x []float64) (int, error)
	PredictProba(x []float64) (float64, error)
}

// Score is the outcome of a single prediction.
type Score struct {
	Probability float64
	Class       string
}

// ScoringService runs aligned feature vectors through the scaler and the classifier.
// Both are read-only after construction, so the service is safe for concurrent use.
type ScoringService struct {
	scaler  Scaler
	model   Classifier
	metrics *metrics.Manager
	logger  *zap.Logger
}

func NewScoringService(scaler Scaler, model Classifier, m *metrics.Manager, logger *zap.Logger) *ScoringService {
	return &ScoringService{
		scaler:  scaler,
		model:   model,
		metrics: m,
		logger:  logger,
	}
}

// Score classifies an aligned vector. The probability is the model's raw positive-class output.
func (s *ScoringService) Score(vec features.Vector) (*Score, error) {
	if len(vec) != features.Width {
		return nil, fmt.Errorf("vector has %d features, model expects %d: %w", len(vec), features.Width, apperrors.ErrFeatureMismatch)
	}

	scaled, err := s.scaler.Transform(vec)
	if err != nil {
		return nil, fmt.Errorf("scaler transform: %w", mismatch(err))
	}

	proba, err := s.model.PredictProba(scaled)
	if err != nil {
		return nil, fmt.Errorf("predict probability: %w", mismatch(err))
	}

	label, err := s.model.Predict(scaled)
	if err != nil {
		return nil, fmt.Errorf("predict class: %w", mismatch(err))
	}

	class := ClassRejected
	if label == 1 {
		class = ClassApproved
	}

	return &Score{Probability: proba, Class: class}, nil
}

// ScoreRecord validates, aligns and scores a raw record.
func (s *ScoringService) ScoreRecord(rec features.Record) (*Score, error) {
	if len(rec) == 0 {
		s.recordError()
		return nil, fmt.Errorf("no input data provided: %w", apperrors.ErrInput)
	}

	vec, err := features.Align(rec)
	if err != nil {
		s.recordError()
		return nil, err
	}

	score, err := s.Score(vec)
	if err != nil {
		s.recordError()
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPrediction(score.Class)
	}
	s.logger.Debug("Request scored",
		zap.String("class", score.Class),
		zap.Float64("probability", score.Probability),
	)
	return score, nil
}

// Predict is the API form of ScoreRecord.
func (s *ScoringService) Predict(rec features.Record) (*dto.PredictResponse, error) {
	score, err := s.ScoreRecord(rec)
	if err != nil {
		return nil, err
	}
	return &dto.PredictResponse{
		Probability:    score.Probability,
		PredictedClass: score.Class,
	}, nil
}

func (s *ScoringService) recordError() {
	if s.metrics != nil {
		s.metrics.RecordScoringError()
	}
}

// mismatch tags model failures as feature mismatches.
func mismatch(err error) error {
	if errors.Is(err, apperrors.ErrFeatureMismatch) {
		return err
	}
	return fmt.Errorf("%w: %w", err, apperrors.ErrFeatureMismatch)
}
