package model

// BudgetSummary aggregates installed battery costs plus the load
// redistribution cost against the configured budget ceiling.
type BudgetSummary struct {
	TotalCost      float64 `json:"total_cost"`
	BudgetLimit    float64 `json:"budget_limit"`
	PercentageUsed float64 `json:"percentage_used"`
	IsOverBudget   bool    `json:"is_over_budget"`
	BatteryCost    float64 `json:"battery_cost"`
	LoadCost       float64 `json:"load_cost"`
}
