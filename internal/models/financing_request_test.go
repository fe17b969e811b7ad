package models

import (
	"encoding/json"
	"math"
	"testing"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFinancingRequest(t *testing.T) {
	rec := features.Record{
		features.FieldRequestID:          "101",
		features.FieldAge:                41.0,
		features.FieldSex:                "F",
		features.FieldEducation:          "Laurea",
		features.FieldGrossIncome:        "38000",
		features.FieldWorkExperience:     12.0,
		features.FieldRealEstate:         "Affitto",
		features.FieldAmountRequested:    9000.0,
		features.FieldPurpose:            "Medico",
		features.FieldInterestRate:       7.1,
		features.FieldAmountToIncome:     0.24,
		features.FieldCreditHistoryYears: 6.0,
		features.FieldCreditScore:        650.0,
		features.FieldPriorDefault:       "NO",
	}

	r, err := NewFinancingRequest(rec, 0.73)
	require.NoError(t, err)
	assert.Equal(t, FinancingRequest{
		RequestID:           101,
		Age:                 41,
		Sex:                 "F",
		Education:           "Laurea",
		GrossIncome:         38000,
		WorkExperience:      12,
		RealEstate:          "Affitto",
		AmountRequested:     9000,
		Purpose:             "Medico",
		InterestRate:        7.1,
		AmountToIncome:      0.24,
		CreditHistoryYears:  6,
		CreditScore:         650,
		PriorDefault:        "NO",
		ApprovalProbability: 0.73,
	}, *r)
	assert.True(t, r.Approved())
}

func TestRequestIDOf(t *testing.T) {
	id, err := RequestIDOf(features.Record{features.FieldRequestID: 7.0})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = RequestIDOf(features.Record{})
	assert.ErrorIs(t, err, apperrors.ErrInput)

	_, err = RequestIDOf(features.Record{features.FieldRequestID: 7.5})
	assert.ErrorIs(t, err, apperrors.ErrInput)
}

func TestRequestIDOfLargeIDs(t *testing.T) {
	a, err := RequestIDOf(features.Record{features.FieldRequestID: json.Number("9007199254740993")})
	require.NoError(t, err)
	b, err := RequestIDOf(features.Record{features.FieldRequestID: json.Number("9007199254740992")})
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), a)
	assert.NotEqual(t, a, b)

	id, err := RequestIDOf(features.Record{features.FieldRequestID: " 9223372036854775807 "})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), id)

	id, err = RequestIDOf(features.Record{features.FieldRequestID: json.Number("12.0")})
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, raw := range []any{
		json.Number("99999999999999999999"),
		"1e300",
		float64(1 << 60),
		math.Inf(1),
		"NaN",
		true,
	} {
		_, err := RequestIDOf(features.Record{features.FieldRequestID: raw})
		assert.ErrorIs(t, err, apperrors.ErrInput, "id %v", raw)
	}
}

func TestApprovedIsStrict(t *testing.T) {
	assert.False(t, (&FinancingRequest{ApprovalProbability: 0.5}).Approved())
	assert.True(t, (&FinancingRequest{ApprovalProbability: 0.5000001}).Approved())
}

func TestNewFinancingRequestDropsInvalidUTF8(t *testing.T) {
	rec := features.Record{features.FieldRequestID: 1.0, features.FieldPurpose: "Medi\xffco"}
	for _, f := range features.NumericFields {
		rec[f] = 1.0
	}

	r, err := NewFinancingRequest(rec, 0.1)
	require.NoError(t, err)
	assert.Equal(t, "Medico", r.Purpose)
	assert.Empty(t, r.Sex)
}
