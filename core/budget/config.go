package budget

import "fmt"

// Config fixes the budget ceiling and the price of moved load energy.
type Config struct {
	Limit          float64 `json:"limit"`
	LoadCostPerKWh float64 `json:"load_cost_per_kwh"`
}

// SetDefaults applies the stock community budget.
func (c *Config) SetDefaults() {
	if c.Limit == 0 {
		c.Limit = 150000
	}
	if c.LoadCostPerKWh == 0 {
		c.LoadCostPerKWh = 5
	}
}

// Validate checks the amounts.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("limit must be >= 0")
	}
	if c.LoadCostPerKWh < 0 {
		return fmt.Errorf("load_cost_per_kwh must be >= 0")
	}
	return nil
}
