// Package reporting selects the working set fed to the valuation rule.
package reporting

import (
	"strconv"
	"strings"
	"time"

	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/valuation"
)

// Filter holds the predicates of a reporting screen. Zero values are no-ops
// and set predicates combine with AND.
type Filter struct {
	// Inclusive date range over the proposal date
	From *time.Time
	To   *time.Time

	// Case-insensitive substring matches
	Operator      string
	ClientID      string
	ReferenceCode string

	// Substring match over the decimal form of the identifier
	ID string

	// Exact matches
	Partner     string
	Bank        string
	ProductType string
}

// IsZero reports whether no predicate is set
func (f Filter) IsZero() bool {
	return f.From == nil && f.To == nil &&
		f.Operator == "" && f.ClientID == "" && f.ReferenceCode == "" && f.ID == "" &&
		f.Partner == "" && f.Bank == "" && f.ProductType == ""
}

// Apply returns the records matching every set predicate, preserving order.
// When a date bound is set, records whose date cannot be parsed are dropped.
func Apply(records []models.Proposal, f Filter) []models.Proposal {
	out := make([]models.Proposal, 0, len(records))
	for i := range records {
		if f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Match reports whether p satisfies every set predicate
func (f Filter) Match(p *models.Proposal) bool {
	if f.From != nil || f.To != nil {
		day, ok := valuation.ParseDate(p.Date)
		if !ok {
			return false
		}
		if f.From != nil && day.Before(truncate(*f.From)) {
			return false
		}
		if f.To != nil && day.After(truncate(*f.To)) {
			return false
		}
	}
	if !containsFold(p.Operator, f.Operator) ||
		!containsFold(p.ClientID, f.ClientID) ||
		!containsFold(p.ReferenceCode, f.ReferenceCode) {
		return false
	}
	if id := strings.TrimSpace(f.ID); id != "" && !strings.Contains(strconv.FormatUint(uint64(p.ID), 10), id) {
		return false
	}
	if f.Partner != "" && p.Partner != f.Partner {
		return false
	}
	if f.Bank != "" && p.Bank != f.Bank {
		return false
	}
	if f.ProductType != "" && p.ProductType != f.ProductType {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	substr = strings.TrimSpace(substr)
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
