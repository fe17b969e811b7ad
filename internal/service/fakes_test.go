package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/features"
	"loan-scorer/internal/models"
	"loan-scorer/internal/query"
)

// identityScaler passes vectors through unchanged.
type identityScaler struct{}

func (identityScaler) Transform(x []float64) ([]float64, error) {
	out := make([]float64, len(x))
	copy(out, x)
	return out, nil
}

// amountModel approves requests below a threshold amount with a fixed probability.
type amountModel struct {
	threshold float64
	approve   float64
	reject    float64
}

func (m amountModel) amount(x []float64) (float64, error) {
	if len(x) != features.Width {
		return 0, errors.New("wrong width")
	}
	return x[3], nil
}

func (m amountModel) PredictProba(x []float64) (float64, error) {
	a, err := m.amount(x)
	if err != nil {
		return 0, err
	}
	if a < m.threshold {
		return m.approve, nil
	}
	return m.reject, nil
}

func (m amountModel) Predict(x []float64) (int, error) {
	p, err := m.PredictProba(x)
	if err != nil {
		return 0, err
	}
	if p > 0.5 {
		return 1, nil
	}
	return 0, nil
}

type staticSource struct {
	records []features.Record
	err     error
}

func (s staticSource) Fetch(context.Context) ([]features.Record, error) {
	return s.records, s.err
}

// memStore keeps requests in insertion order.
type memStore struct {
	mu       sync.Mutex
	rows     []models.FinancingRequest
	failIDs  map[int64]bool
	racedIDs map[int64]bool
	inserts  int
}

func newMemStore() *memStore {
	return &memStore{failIDs: map[int64]bool{}, racedIDs: map[int64]bool{}}
}

func (s *memStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.RequestID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) Insert(ctx context.Context, req *models.FinancingRequest) (bool, error) {
	if s.failIDs[req.RequestID] {
		return false, fmt.Errorf("insert %d: %w", req.RequestID, apperrors.ErrStore)
	}
	if s.racedIDs[req.RequestID] {
		return false, nil
	}
	exists, _ := s.Exists(ctx, req.RequestID)
	if exists {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *req)
	s.inserts++
	return true, nil
}

func (s *memStore) List(_ context.Context, f query.Filter) ([]models.FinancingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f.Apply(s.rows), nil
}

func rawRequest(id int64, amount float64, sex string) features.Record {
	return features.Record{
		features.FieldRequestID:          float64(id),
		features.FieldAge:                30.0,
		features.FieldSex:                sex,
		features.FieldEducation:          "Laurea",
		features.FieldGrossIncome:        40000.0,
		features.FieldWorkExperience:     5.0,
		features.FieldRealEstate:         "Affitto",
		features.FieldAmountRequested:    amount,
		features.FieldPurpose:            "Personale",
		features.FieldInterestRate:       5.0,
		features.FieldAmountToIncome:     amount / 40000,
		features.FieldCreditHistoryYears: 4.0,
		features.FieldCreditScore:        600.0,
		features.FieldPriorDefault:       "NO",
	}
}
