// Package valuation implements the CPF deduplication rule used by every
// report: a proposal's value only counts when its client identifier appears
// once in the occurrence scope chosen by the caller.
//
// The package performs no I/O and never fails; results are recomputed from
// the records on every call.
package valuation

import (
	"github.com/shopspring/decimal"
	"github.com/sjperalta/propostas-api/internal/models"
)

// Occurrences maps a client identifier to the number of proposals carrying it
type Occurrences map[string]int

// CountOccurrences counts proposals per client identifier over scope.
// Proposals without a value are counted like any other.
func CountOccurrences(scope []models.Proposal) Occurrences {
	occ := make(Occurrences, len(scope))
	for i := range scope {
		occ[scope[i].ClientID]++
	}
	return occ
}

// Row is a proposal with the outcome of the rule
type Row struct {
	Proposal     models.Proposal `json:"proposal"`
	Occurrences  int             `json:"occurrences"`
	IgnoreValue  bool            `json:"ignore_value"`
	CountedValue decimal.Decimal `json:"counted_value"`
}

// Result holds per-record outcomes in input order plus the two totals.
// Totals are unrounded; rounding to cents happens at presentation.
type Result struct {
	Rows         []Row           `json:"rows"`
	GrossTotal   decimal.Decimal `json:"gross_total"`
	CountedTotal decimal.Decimal `json:"counted_total"`
}

// Apply evaluates records against occurrence counts taken from another
// (or the same) scope. A client identifier missing from occ counts as zero
// occurrences, so its value is kept.
func Apply(records []models.Proposal, occ Occurrences) *Result {
	res := &Result{
		Rows:         make([]Row, 0, len(records)),
		GrossTotal:   decimal.Zero,
		CountedTotal: decimal.Zero,
	}
	for i := range records {
		p := records[i]
		value := p.ValueOrZero()
		n := occ[p.ClientID]
		row := Row{
			Proposal:     p,
			Occurrences:  n,
			IgnoreValue:  n > 1,
			CountedValue: value,
		}
		if row.IgnoreValue {
			row.CountedValue = decimal.Zero
		}
		res.GrossTotal = res.GrossTotal.Add(value)
		res.CountedTotal = res.CountedTotal.Add(row.CountedValue)
		res.Rows = append(res.Rows, row)
	}
	return res
}

// Evaluate applies the rule with occurrences counted over records themselves
func Evaluate(records []models.Proposal) *Result {
	return Apply(records, CountOccurrences(records))
}

// Len returns the number of evaluated records
func (r *Result) Len() int {
	return len(r.Rows)
}
