package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DanielEliad/powerworld/core/model"
)

type ConstraintsDef struct {
	CostPerKWh           int `yaml:"cost_per_kwh"`
	MinSizeKWh           int `yaml:"min_size_kwh"`
	MaxSizeKWh           int `yaml:"max_size_kwh"`
	RoundingIncrementKWh int `yaml:"rounding_increment_kwh"`
}

func (c ConstraintsDef) ToModel() model.BatteryConstraints {
	return model.BatteryConstraints{
		CostPerKWh:           c.CostPerKWh,
		MinSizeKWh:           c.MinSizeKWh,
		MaxSizeKWh:           c.MaxSizeKWh,
		RoundingIncrementKWh: c.RoundingIncrementKWh,
	}
}

type Expected struct {
	Errors     []string `yaml:"errors,omitempty"`
	Warnings   []string `yaml:"warnings,omitempty"`
	RoundedKWh float64  `yaml:"rounded_kwh"`
	TotalCost  float64  `yaml:"total_cost"`
}

type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Bus         int            `yaml:"bus"`
	Class       string         `yaml:"class"`
	PowerMW     []float64      `yaml:"power_mw"`
	Constraints ConstraintsDef `yaml:"constraints"`
	Expected    Expected       `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func parseClass(c string) model.BatteryClass {
	switch c {
	case "neighborhood":
		return model.BatteryNeighborhood
	default:
		return model.BatteryHome
	}
}
