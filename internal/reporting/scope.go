package reporting

import (
	"fmt"

	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/valuation"
)

// Scope selects the records over which CPF occurrences are counted
type Scope string

const (
	// ScopeGlobal counts occurrences over the whole, unfiltered table
	ScopeGlobal Scope = "global"
	// ScopeFiltered counts occurrences over the filtered working set only
	ScopeFiltered Scope = "filtered"
)

// ParseScope validates a scope name. An empty name yields def.
func ParseScope(name string, def Scope) (Scope, error) {
	switch Scope(name) {
	case "":
		return def, nil
	case ScopeGlobal, ScopeFiltered:
		return Scope(name), nil
	}
	return "", fmt.Errorf("escopo inválido %q: use %q ou %q", name, ScopeGlobal, ScopeFiltered)
}

// Evaluate runs the valuation rule over working, counting occurrences over
// all or over working itself depending on scope
func Evaluate(all, working []models.Proposal, scope Scope) *valuation.Result {
	if scope == ScopeFiltered {
		return valuation.Evaluate(working)
	}
	return valuation.Apply(working, valuation.CountOccurrences(all))
}
