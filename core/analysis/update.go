package analysis

import (
	"time"

	"github.com/DanielEliad/powerworld/core/budget"
	"github.com/DanielEliad/powerworld/core/model"
	"github.com/DanielEliad/powerworld/internal/tabular"
)

// UpdateBatteryResult reports the recomputed capacities and costing after an
// edit of the battery table.
type UpdateBatteryResult struct {
	BatteryCapacity  map[string][]float64         `json:"battery_capacity"`
	ValidationErrors []model.Issue                `json:"validation_errors"`
	BatteryCosts     map[string]model.BatteryCost `json:"battery_costs"`
	BudgetSummary    model.BudgetSummary          `json:"budget_summary"`
}

// UpdateBatteryTable reruns the capacity, validation and costing pipeline
// over edited battery rows. The budget roll-up keeps the stored
// redistribution cost, so battery edits and load moves price independently.
func (a *Analyzer) UpdateBatteryTable(records []map[string]any) (*UpdateBatteryResult, error) {
	start := time.Now()
	f, err := tabular.FromRecords(records)
	if err != nil {
		a.fail("update_battery", err)
		return nil, err
	}
	byBus := tabular.BatteryColumnsByBus(f.DataColumns())
	capacities, issues, costs := a.batterySurvey(f, byBus)
	res := &UpdateBatteryResult{
		BatteryCapacity:  capacities,
		ValidationErrors: issues,
		BatteryCosts:     costs,
		BudgetSummary:    budget.Summarize(costs, a.store.LoadCost(), a.budget.Limit),
	}
	a.finish("update_battery", start, issues)
	return res, nil
}
