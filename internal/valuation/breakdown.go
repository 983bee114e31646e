package valuation

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/propostas-api/internal/models"
)

// KeyFunc extracts the grouping key of a proposal. Returning false leaves
// the proposal out of that grouping only.
type KeyFunc func(p *models.Proposal) (string, bool)

// Grouping keys over proposal attributes
var (
	ByBank        KeyFunc = func(p *models.Proposal) (string, bool) { return p.Bank, true }
	ByPartner     KeyFunc = func(p *models.Proposal) (string, bool) { return p.Partner, true }
	ByOperator    KeyFunc = func(p *models.Proposal) (string, bool) { return p.Operator, true }
	ByProductType KeyFunc = func(p *models.Proposal) (string, bool) { return p.ProductType, true }
)

// Group is the sum of counted values for one key
type Group struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// GroupBy sums counted values per key, in first-encountered key order
func (r *Result) GroupBy(key KeyFunc) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for i := range r.Rows {
		k, ok := key(&r.Rows[i].Proposal)
		if !ok {
			continue
		}
		pos, seen := index[k]
		if !seen {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, Group{Key: k, Total: decimal.Zero})
		}
		groups[pos].Total = groups[pos].Total.Add(r.Rows[i].CountedValue)
		groups[pos].Count++
	}
	return groups
}

// SortByTotal orders groups by total descending. Equal totals keep their
// relative order, which for GroupBy output is first-encountered order.
func SortByTotal(groups []Group) []Group {
	sorted := make([]Group, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total.GreaterThan(sorted[j].Total)
	})
	return sorted
}

// Top returns the n groups with the highest totals. n <= 0 returns them all.
func Top(groups []Group, n int) []Group {
	sorted := SortByTotal(groups)
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// DateParser turns a stored proposal date into a calendar day
type DateParser func(s string) (time.Time, bool)

var dateLayouts = []string{
	models.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate accepts ISO dates, optionally with a time part, and truncates
// them to the day
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// DayTotal is the sum of counted values for a calendar day
type DayTotal struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// ByDay sums counted values per calendar day in ascending day order.
// Proposals whose date parse fails are left out of this breakdown.
func (r *Result) ByDay(parse DateParser) []DayTotal {
	if parse == nil {
		parse = ParseDate
	}
	groups := r.GroupBy(func(p *models.Proposal) (string, bool) {
		t, ok := parse(p.Date)
		if !ok {
			return "", false
		}
		return t.Format(models.DateLayout), true
	})
	days := make([]DayTotal, 0, len(groups))
	for _, g := range groups {
		days = append(days, DayTotal{Day: g.Key, Total: g.Total, Count: g.Count})
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}
