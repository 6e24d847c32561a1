package analysis

import "fmt"

// Config bounds the per-unit voltage band enforced by the buses analysis.
type Config struct {
	VoltageMinPU float64 `json:"voltage_min_pu"`
	VoltageMaxPU float64 `json:"voltage_max_pu"`
}

// SetDefaults applies the standard distribution band.
func (c *Config) SetDefaults() {
	if c.VoltageMinPU == 0 && c.VoltageMaxPU == 0 {
		c.VoltageMinPU = 0.95
		c.VoltageMaxPU = 1.05
	}
}

// Validate checks the voltage band.
func (c Config) Validate() error {
	if c.VoltageMinPU <= 0 {
		return fmt.Errorf("voltage_min_pu must be positive, got %g", c.VoltageMinPU)
	}
	if c.VoltageMaxPU <= c.VoltageMinPU {
		return fmt.Errorf("voltage_max_pu (%g) must exceed voltage_min_pu (%g)", c.VoltageMaxPU, c.VoltageMinPU)
	}
	return nil
}
