package query

import (
	"loan-scorer/internal/features"
	"loan-scorer/internal/models"
)

// NumericField is a range-filterable attribute.
type NumericField struct {
	Param  string
	Column string
	Value  func(*models.FinancingRequest) float64
}

// CategoricalField is an equality-filterable attribute.
type CategoricalField struct {
	Param  string
	Column string
	Value  func(*models.FinancingRequest) string
}

// RangeFields are the attributes accepting <Param>_min and <Param>_max.
var RangeFields = []NumericField{
	{features.FieldAge, "age", func(r *models.FinancingRequest) float64 { return r.Age }},
	{features.FieldGrossIncome, "gross_income", func(r *models.FinancingRequest) float64 { return r.GrossIncome }},
	{features.FieldWorkExperience, "work_experience_years", func(r *models.FinancingRequest) float64 { return r.WorkExperience }},
	{features.FieldAmountRequested, "amount_requested", func(r *models.FinancingRequest) float64 { return r.AmountRequested }},
	{features.FieldInterestRate, "interest_rate", func(r *models.FinancingRequest) float64 { return r.InterestRate }},
	{features.FieldAmountToIncome, "amount_to_income", func(r *models.FinancingRequest) float64 { return r.AmountToIncome }},
	{features.FieldCreditHistoryYears, "credit_history_years", func(r *models.FinancingRequest) float64 { return r.CreditHistoryYears }},
	{features.FieldCreditScore, "credit_score", func(r *models.FinancingRequest) float64 { return r.CreditScore }},
	{features.FieldApprovalProbability, "approval_probability", func(r *models.FinancingRequest) float64 { return r.ApprovalProbability }},
}

// EqualityFields are the attributes accepting an exact-match value.
var EqualityFields = []CategoricalField{
	{features.FieldSex, "sex", func(r *models.FinancingRequest) string { return r.Sex }},
	{features.FieldEducation, "education", func(r *models.FinancingRequest) string { return r.Education }},
	{features.FieldRealEstate, "real_estate", func(r *models.FinancingRequest) string { return r.RealEstate }},
	{features.FieldPurpose, "purpose", func(r *models.FinancingRequest) string { return r.Purpose }},
	{features.FieldPriorDefault, "prior_default", func(r *models.FinancingRequest) string { return r.PriorDefault }},
}

// StatisticsFields are the equality filters honored by the statistics report.
var StatisticsFields = []string{
	features.FieldSex,
	features.FieldEducation,
	features.FieldRealEstate,
	features.FieldPurpose,
}
