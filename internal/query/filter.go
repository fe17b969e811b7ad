// Package query filters stored financing requests and aggregates them into the statistics report.
package query

import (
	"slices"
	"strconv"
	"strings"

	"loan-scorer/internal/models"

	"github.com/Masterminds/squirrel"
)

// Range is an inclusive interval. A nil bound leaves that side open.
// Inverted bounds are not rejected; they simply match nothing.
type Range struct {
	Min *float64
	Max *float64
}

// Filter is a conjunction of range and equality conditions plus an optional row cap.
type Filter struct {
	Ranges map[string]Range
	Equals map[string]string
	// Limit truncates the ordered result. Zero means no cap.
	Limit int
}

// ParseFilter reads filter parameters through lookup, which returns "" for absent keys.
// Unparsable numbers are ignored, as are empty equality values and non-positive limits.
func ParseFilter(lookup func(key string) string) Filter {
	f := Filter{
		Ranges: make(map[string]Range),
		Equals: make(map[string]string),
	}

	for _, field := range RangeFields {
		var r Range
		r.Min = parseFloat(lookup(field.Param + "_min"))
		r.Max = parseFloat(lookup(field.Param + "_max"))
		if r.Min != nil || r.Max != nil {
			f.Ranges[field.Param] = r
		}
	}

	for _, field := range EqualityFields {
		if v := lookup(field.Param); v != "" {
			f.Equals[field.Param] = v
		}
	}

	if n, err := strconv.Atoi(strings.TrimSpace(lookup("limit"))); err == nil && n > 0 {
		f.Limit = n
	}
	return f
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Empty reports whether the filter has no conditions.
func (f Filter) Empty() bool {
	return len(f.Ranges) == 0 && len(f.Equals) == 0
}

// EqualityOnly drops the range conditions and the limit, and keeps only the
// equality conditions on the given fields.
func (f Filter) EqualityOnly(fields ...string) Filter {
	out := Filter{
		Ranges: make(map[string]Range),
		Equals: make(map[string]string),
	}
	for k, v := range f.Equals {
		if slices.Contains(fields, k) {
			out.Equals[k] = v
		}
	}
	return out
}

// Where renders the conditions for SQL. Conditions follow the field tables, so the
// output is stable regardless of map order.
func (f Filter) Where() squirrel.And {
	cond := squirrel.And{}
	for _, field := range RangeFields {
		r, ok := f.Ranges[field.Param]
		if !ok {
			continue
		}
		if r.Min != nil {
			cond = append(cond, squirrel.GtOrEq{field.Column: *r.Min})
		}
		if r.Max != nil {
			cond = append(cond, squirrel.LtOrEq{field.Column: *r.Max})
		}
	}
	for _, field := range EqualityFields {
		if v, ok := f.Equals[field.Param]; ok {
			cond = append(cond, squirrel.Eq{field.Column: v})
		}
	}
	return cond
}

// Match evaluates the conditions against an in-memory record.
func (f Filter) Match(r *models.FinancingRequest) bool {
	for _, field := range RangeFields {
		rng, ok := f.Ranges[field.Param]
		if !ok {
			continue
		}
		v := field.Value(r)
		if rng.Min != nil && v < *rng.Min {
			return false
		}
		if rng.Max != nil && v > *rng.Max {
			return false
		}
	}
	for _, field := range EqualityFields {
		if want, ok := f.Equals[field.Param]; ok && field.Value(r) != want {
			return false
		}
	}
	return true
}

// Apply filters records in order and applies the limit. It is the in-memory
// counterpart of Where plus LIMIT, used by stores that do not speak SQL.
func (f Filter) Apply(records []models.FinancingRequest) []models.FinancingRequest {
	out := make([]models.FinancingRequest, 0, len(records))
	for i := range records {
		if f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}
