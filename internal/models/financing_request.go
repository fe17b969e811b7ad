package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/features"
)

// ApprovalThreshold is the probability above which a stored request counts as approved.
const ApprovalThreshold = 0.5

// FinancingRequest is a scored request as persisted. It is never updated after insert.
type FinancingRequest struct {
	RequestID           int64   `db:"request_id" json:"RichiestaFinanziamentoID"`
	Age                 float64 `db:"age" json:"Eta"`
	Sex                 string  `db:"sex" json:"Sesso"`
	Education           string  `db:"education" json:"TitoloStudio"`
	GrossIncome         float64 `db:"gross_income" json:"RedditoLordoUltimoAnno"`
	WorkExperience      float64 `db:"work_experience_years" json:"AnniEsperienzaLavorativa"`
	RealEstate          string  `db:"real_estate" json:"InformazioniImmobile"`
	AmountRequested     float64 `db:"amount_requested" json:"ImportoRichiesto"`
	Purpose             string  `db:"purpose" json:"ScopoFinanziamento"`
	InterestRate        float64 `db:"interest_rate" json:"TassoInteresseFinanziamento"`
	AmountToIncome      float64 `db:"amount_to_income" json:"ImportoRichiestoDivisoReddito"`
	CreditHistoryYears  float64 `db:"credit_history_years" json:"DurataDellaStoriaCreditiziaInAnni"`
	CreditScore         float64 `db:"credit_score" json:"AffidabilitàCreditizia"`
	PriorDefault        string  `db:"prior_default" json:"InadempienzeFinanziamentiPrecedenti"`
	ApprovalProbability float64 `db:"approval_probability" json:"ProbabilitaFinanziamentoApprovato"`
}

// Approved reports whether the stored probability is strictly above ApprovalThreshold.
func (r *FinancingRequest) Approved() bool {
	return r.ApprovalProbability > ApprovalThreshold
}

// maxExactID is the largest integer every float64 id can represent without rounding.
const maxExactID = 1 << 53

// RequestIDOf extracts the natural key of a raw record. Integer encodings are parsed
// exactly; float encodings are accepted only while they are integral and exact.
func RequestIDOf(rec features.Record) (int64, error) {
	raw, ok := rec[features.FieldRequestID]
	if !ok || raw == nil {
		return 0, fmt.Errorf("missing request id: %w", apperrors.ErrInput)
	}

	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float32:
		return floatID(float64(v))
	case float64:
		return floatID(v)
	case json.Number:
		return textID(v.String())
	case string:
		return textID(v)
	default:
		return 0, fmt.Errorf("request id has unsupported type %T: %w", raw, apperrors.ErrInput)
	}
}

func textID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("request id %q is not numeric: %w", s, apperrors.ErrInput)
	}
	return floatID(f)
}

func floatID(v float64) (int64, error) {
	if math.IsNaN(v) || v != math.Trunc(v) {
		return 0, fmt.Errorf("request id %v is not an integer: %w", v, apperrors.ErrInput)
	}
	if math.Abs(v) > maxExactID {
		return 0, fmt.Errorf("request id %v is out of exact range: %w", v, apperrors.ErrInput)
	}
	return int64(v), nil
}

// NewFinancingRequest builds the persisted form of rec with its computed probability.
// rec must already have passed features.Align, so every numeric attribute is present.
func NewFinancingRequest(rec features.Record, probability float64) (*FinancingRequest, error) {
	id, err := RequestIDOf(rec)
	if err != nil {
		return nil, err
	}

	nums := make([]float64, len(features.NumericFields))
	for i, field := range features.NumericFields {
		if nums[i], err = features.Number(rec, field); err != nil {
			return nil, err
		}
	}

	return &FinancingRequest{
		RequestID:           id,
		Age:                 nums[0],
		GrossIncome:         nums[1],
		WorkExperience:      nums[2],
		AmountRequested:     nums[3],
		InterestRate:        nums[4],
		AmountToIncome:      nums[5],
		CreditHistoryYears:  nums[6],
		CreditScore:         nums[7],
		Sex:                 text(rec, features.FieldSex),
		Education:           text(rec, features.FieldEducation),
		RealEstate:          text(rec, features.FieldRealEstate),
		Purpose:             text(rec, features.FieldPurpose),
		PriorDefault:        text(rec, features.FieldPriorDefault),
		ApprovalProbability: probability,
	}, nil
}

// text reads a categorical attribute, dropping invalid UTF-8 sequences
// that PostgreSQL would reject on insert.
func text(rec features.Record, field string) string {
	return strings.ToValidUTF8(features.Category(rec, field), "")
}
