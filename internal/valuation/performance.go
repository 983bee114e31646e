package valuation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// OperatorPerformance aggregates an operator's proposals
type OperatorPerformance struct {
	Operator      string          `json:"operator"`
	Proposals     int             `json:"proposals"`
	Clients       int             `json:"clients"`
	GrossTotal    decimal.Decimal `json:"gross_total"`
	CountedTotal  decimal.Decimal `json:"counted_total"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

// Performance summarizes rows per operator, ordered by counted total
// descending (ties keep first-encountered order). AverageTicket is the
// counted total divided by the number of proposals.
func (r *Result) Performance() []OperatorPerformance {
	index := make(map[string]int)
	clients := make([]map[string]struct{}, 0)
	perf := make([]OperatorPerformance, 0)

	for i := range r.Rows {
		row := &r.Rows[i]
		op := row.Proposal.Operator
		pos, seen := index[op]
		if !seen {
			pos = len(perf)
			index[op] = pos
			perf = append(perf, OperatorPerformance{
				Operator:     op,
				GrossTotal:   decimal.Zero,
				CountedTotal: decimal.Zero,
			})
			clients = append(clients, make(map[string]struct{}))
		}
		p := &perf[pos]
		p.Proposals++
		p.GrossTotal = p.GrossTotal.Add(row.Proposal.ValueOrZero())
		p.CountedTotal = p.CountedTotal.Add(row.CountedValue)
		clients[pos][row.Proposal.ClientID] = struct{}{}
	}

	for i := range perf {
		perf[i].Clients = len(clients[i])
		perf[i].AverageTicket = decimal.Zero
		if perf[i].Proposals > 0 {
			perf[i].AverageTicket = perf[i].CountedTotal.Div(decimal.NewFromInt(int64(perf[i].Proposals)))
		}
	}

	sort.SliceStable(perf, func(i, j int) bool {
		return perf[i].CountedTotal.GreaterThan(perf[j].CountedTotal)
	})
	return perf
}
