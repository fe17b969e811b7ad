package query

import (
	"sort"

	"loan-scorer/internal/models"
)

// TopN is the size of the largest-amount ranking in the report.
const TopN = 10

// Report is the statistics payload. Group maps only contain keys that have records.
type Report struct {
	TotalRequests   int     `json:"totale_richieste"`
	TotalAmount     float64 `json:"importo_totale"`
	AverageAmount   float64 `json:"importo_medio"`
	ApprovedCount   int     `json:"approvate"`
	ApprovedPercent float64 `json:"percentuale_approvate"`

	AvgAmountBySex               map[string]float64 `json:"importo_medio_sesso"`
	AvgApprovedAmountBySex       map[string]float64 `json:"importo_medio_approvato_sesso"`
	AvgAmountByEducation         map[string]float64 `json:"importo_medio_titolo"`
	AvgApprovedAmountByEducation map[string]float64 `json:"importo_medio_approvato_titolo"`

	TopAmounts []models.FinancingRequest `json:"top10_importi"`

	CountBySex         map[string]int     `json:"sesso_counts"`
	AmountByRealEstate map[string]float64 `json:"immobile_importi"`
	AmountByEducation  map[string]float64 `json:"titolo_importi"`
	AmountByPurpose    map[string]float64 `json:"scopo_importi"`
	CountByPurpose     map[string]int     `json:"scopo_counts"`
}

type mean struct {
	sum float64
	n   int
}

type meanGroup map[string]*mean

func (g meanGroup) add(key string, v float64) {
	m, ok := g[key]
	if !ok {
		m = &mean{}
		g[key] = m
	}
	m.sum += v
	m.n++
}

func (g meanGroup) averages() map[string]float64 {
	out := make(map[string]float64, len(g))
	for k, m := range g {
		out[k] = m.sum / float64(m.n)
	}
	return out
}

// Aggregate computes the report over records, which must be in storage order.
func Aggregate(records []models.FinancingRequest) *Report {
	rep := &Report{
		CountBySex:         make(map[string]int),
		AmountByRealEstate: make(map[string]float64),
		AmountByEducation:  make(map[string]float64),
		AmountByPurpose:    make(map[string]float64),
		CountByPurpose:     make(map[string]int),
	}

	bySex := meanGroup{}
	approvedBySex := meanGroup{}
	byEducation := meanGroup{}
	approvedByEducation := meanGroup{}

	for i := range records {
		r := &records[i]
		rep.TotalRequests++
		rep.TotalAmount += r.AmountRequested

		bySex.add(r.Sex, r.AmountRequested)
		byEducation.add(r.Education, r.AmountRequested)
		if r.Approved() {
			rep.ApprovedCount++
			approvedBySex.add(r.Sex, r.AmountRequested)
			approvedByEducation.add(r.Education, r.AmountRequested)
		}

		rep.CountBySex[r.Sex]++
		rep.AmountByRealEstate[r.RealEstate] += r.AmountRequested
		rep.AmountByEducation[r.Education] += r.AmountRequested
		rep.AmountByPurpose[r.Purpose] += r.AmountRequested
		rep.CountByPurpose[r.Purpose]++
	}

	if rep.TotalRequests > 0 {
		rep.AverageAmount = rep.TotalAmount / float64(rep.TotalRequests)
		rep.ApprovedPercent = float64(rep.ApprovedCount) / float64(rep.TotalRequests) * 100
	}

	rep.AvgAmountBySex = bySex.averages()
	rep.AvgApprovedAmountBySex = approvedBySex.averages()
	rep.AvgAmountByEducation = byEducation.averages()
	rep.AvgApprovedAmountByEducation = approvedByEducation.averages()
	rep.TopAmounts = TopByAmount(records, TopN)

	return rep
}

// TopByAmount returns up to n records by descending requested amount.
// Equal amounts keep their storage order.
func TopByAmount(records []models.FinancingRequest, n int) []models.FinancingRequest {
	sorted := make([]models.FinancingRequest, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AmountRequested > sorted[j].AmountRequested
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
