package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/reporting"
	"github.com/sjperalta/propostas-api/internal/repository"
	"github.com/sjperalta/propostas-api/internal/valuation"
)

// TopN is the size of the bank and partner rankings on the dashboard
const TopN = 10

// Scopes holds the default occurrence scope of each reporting view
type Scopes struct {
	Dashboard    reporting.Scope
	Consultation reporting.Scope
	Performance  reporting.Scope
}

// DefaultScopes matches the behaviour users know: the dashboard and the
// consultation screen count CPFs over the whole table, performance over the
// filtered rows.
var DefaultScopes = Scopes{
	Dashboard:    reporting.ScopeGlobal,
	Consultation: reporting.ScopeGlobal,
	Performance:  reporting.ScopeFiltered,
}

// ReportService builds the reporting views. Every call re-reads the table and
// recomputes the valuation rule.
type ReportService struct {
	proposals repository.ProposalRepository
	scopes    Scopes
}

// NewReportService creates a report service
func NewReportService(proposals repository.ProposalRepository, scopes Scopes) *ReportService {
	return &ReportService{proposals: proposals, scopes: scopes}
}

// Summary holds the totals shared by every view
type Summary struct {
	Scope        reporting.Scope `json:"scope"`
	Proposals    int             `json:"proposals"`
	Ignored      int             `json:"ignored"`
	GrossTotal   decimal.Decimal `json:"gross_total"`
	CountedTotal decimal.Decimal `json:"counted_total"`
}

// Dashboard is the dashboard view
type Dashboard struct {
	Summary
	ByDay       []valuation.DayTotal `json:"by_day"`
	TopBanks    []valuation.Group    `json:"top_banks"`
	TopPartners []valuation.Group    `json:"top_partners"`
	ByOperator  []valuation.Group    `json:"by_operator"`
	ByProduct   []valuation.Group    `json:"by_product"`
}

// Consultation is the row-level view
type Consultation struct {
	Summary
	Rows []valuation.Row `json:"rows"`
}

// Performance is the per-operator view
type Performance struct {
	Summary
	Operators []valuation.OperatorPerformance `json:"operators"`
}

func (s *ReportService) evaluate(ctx context.Context, f reporting.Filter, scope, def reporting.Scope) (*valuation.Result, reporting.Scope, error) {
	if scope == "" {
		scope = def
	}
	all, err := s.proposals.List(ctx)
	if err != nil {
		return nil, "", err
	}
	working := reporting.Apply(all, f)
	return reporting.Evaluate(all, working, scope), scope, nil
}

func summarize(res *valuation.Result, scope reporting.Scope) Summary {
	sum := Summary{
		Scope:        scope,
		Proposals:    res.Len(),
		GrossTotal:   res.GrossTotal,
		CountedTotal: res.CountedTotal,
	}
	for _, row := range res.Rows {
		if row.IgnoreValue {
			sum.Ignored++
		}
	}
	return sum
}

// Dashboard returns totals and breakdowns. An empty scope uses the configured default.
func (s *ReportService) Dashboard(ctx context.Context, f reporting.Filter, scope reporting.Scope) (*Dashboard, error) {
	res, scope, err := s.evaluate(ctx, f, scope, s.scopes.Dashboard)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Summary:     summarize(res, scope),
		ByDay:       res.ByDay(valuation.ParseDate),
		TopBanks:    valuation.Top(res.GroupBy(valuation.ByBank), TopN),
		TopPartners: valuation.Top(res.GroupBy(valuation.ByPartner), TopN),
		ByOperator:  valuation.SortByTotal(res.GroupBy(valuation.ByOperator)),
		ByProduct:   valuation.SortByTotal(res.GroupBy(valuation.ByProductType)),
	}, nil
}

// Consultation returns the filtered rows with their counted values
func (s *ReportService) Consultation(ctx context.Context, f reporting.Filter, scope reporting.Scope) (*Consultation, error) {
	res, scope, err := s.evaluate(ctx, f, scope, s.scopes.Consultation)
	if err != nil {
		return nil, err
	}
	return &Consultation{Summary: summarize(res, scope), Rows: res.Rows}, nil
}

// Performance returns one row per operator
func (s *ReportService) Performance(ctx context.Context, f reporting.Filter, scope reporting.Scope) (*Performance, error) {
	res, scope, err := s.evaluate(ctx, f, scope, s.scopes.Performance)
	if err != nil {
		return nil, err
	}
	return &Performance{Summary: summarize(res, scope), Operators: res.Performance()}, nil
}

// FilterOptions lists the values offered by the report filter inputs
type FilterOptions struct {
	Operators    []string `json:"operators"`
	Partners     []string `json:"partners"`
	Banks        []string `json:"banks"`
	ProductTypes []string `json:"product_types"`
}

// Options returns the distinct values present in the table, in first-seen order
func (s *ReportService) Options(ctx context.Context) (*FilterOptions, error) {
	all, err := s.proposals.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := &FilterOptions{ProductTypes: models.ProductTypes}
	seen := map[string]map[string]bool{"op": {}, "partner": {}, "bank": {}}
	add := func(set string, dst *[]string, v string) {
		if v == "" || seen[set][v] {
			return
		}
		seen[set][v] = true
		*dst = append(*dst, v)
	}
	for _, p := range all {
		add("op", &opts.Operators, p.Operator)
		add("partner", &opts.Partners, p.Partner)
		add("bank", &opts.Banks, p.Bank)
	}
	return opts, nil
}
