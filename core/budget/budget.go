package budget

import (
	"sort"

	"github.com/DanielEliad/powerworld/core/model"
)

// Summarize aggregates installed-battery costs plus the load redistribution
// cost against the budget ceiling. Pure aggregation; costs are keyed by bus.
func Summarize(costs map[string]model.BatteryCost, loadCost, limit float64) model.BudgetSummary {
	keys := make([]string, 0, len(costs))
	for k := range costs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	batteryCost := 0.0
	for _, k := range keys {
		batteryCost += costs[k].TotalCost
	}
	total := batteryCost + loadCost

	pct := 0.0
	if limit > 0 {
		pct = total / limit * 100
	}

	return model.BudgetSummary{
		TotalCost:      total,
		BudgetLimit:    limit,
		PercentageUsed: pct,
		IsOverBudget:   total > limit,
		BatteryCost:    batteryCost,
		LoadCost:       loadCost,
	}
}
