package battery

import (
	"fmt"

	"github.com/DanielEliad/powerworld/core/model"
)

// Config fixes the constraints of each battery class.
type Config struct {
	Home         model.BatteryConstraints `json:"home"`
	Neighborhood model.BatteryConstraints `json:"neighborhood"`
}

// SetDefaults installs the stock economics for any class left unconfigured.
func (c *Config) SetDefaults() {
	if c.Home.RoundingIncrementKWh == 0 {
		c.Home = model.BatteryConstraints{
			CostPerKWh:           500,
			MinSizeKWh:           5,
			MaxSizeKWh:           45,
			RoundingIncrementKWh: 5,
			AllowedCategories:    []model.BusCategory{model.CategoryResidential},
		}
	}
	if c.Neighborhood.RoundingIncrementKWh == 0 {
		c.Neighborhood = model.BatteryConstraints{
			CostPerKWh:           350,
			MinSizeKWh:           25,
			MaxSizeKWh:           250,
			RoundingIncrementKWh: 25,
			AllowedCategories:    []model.BusCategory{model.CategoryCommunity},
		}
	}
}

// Validate checks both constraint records.
func (c Config) Validate() error {
	for class, cons := range map[model.BatteryClass]model.BatteryConstraints{
		model.BatteryHome:         c.Home,
		model.BatteryNeighborhood: c.Neighborhood,
	} {
		if cons.RoundingIncrementKWh <= 0 {
			return fmt.Errorf("%s: rounding_increment_kwh must be > 0", class)
		}
		if cons.MaxSizeKWh < cons.MinSizeKWh {
			return fmt.Errorf("%s: max_size_kwh below min_size_kwh", class)
		}
		if cons.CostPerKWh < 0 {
			return fmt.Errorf("%s: cost_per_kwh must be >= 0", class)
		}
	}
	return nil
}

// ForClass returns the constraints of one battery class.
func (c Config) ForClass(class model.BatteryClass) (model.BatteryConstraints, bool) {
	switch class {
	case model.BatteryHome:
		return c.Home, true
	case model.BatteryNeighborhood:
		return c.Neighborhood, true
	default:
		return model.BatteryConstraints{}, false
	}
}
