package busconfig

import (
	"fmt"

	"github.com/DanielEliad/powerworld/core/model"
)

// Config carries the seed table installed by EnsureSeeded.
type Config struct {
	Buses []model.BusConfig `json:"buses"`
}

// SetDefaults installs the built-in six-bus network used when no table is
// configured: bus 1 is the grid connection, bus 2 the community hub, buses
// 3 through 6 residential feeders.
func (c *Config) SetDefaults() {
	if len(c.Buses) > 0 {
		return
	}
	c.Buses = []model.BusConfig{
		{BusNumber: 1, Category: model.CategoryGridConnection},
		{BusNumber: 2, Category: model.CategoryCommunity, SolarPanelCount: 40, EVCapacityKW: 50},
		{BusNumber: 3, Category: model.CategoryResidential, HouseCount: 45, SolarPanelCount: 20, EVCapacityKW: 22},
		{BusNumber: 4, Category: model.CategoryResidential, HouseCount: 38, SolarPanelCount: 15, EVCapacityKW: 22},
		{BusNumber: 5, Category: model.CategoryResidential, HouseCount: 52, SolarPanelCount: 25, EVCapacityKW: 22},
		{BusNumber: 6, Category: model.CategoryResidential, HouseCount: 41, SolarPanelCount: 18, EVCapacityKW: 22},
	}
}

// Validate checks the table entries.
func (c Config) Validate() error {
	for _, b := range c.Buses {
		if b.BusNumber < 1 {
			return fmt.Errorf("bus number %d: must be >= 1", b.BusNumber)
		}
		switch b.Category {
		case model.CategoryGridConnection, model.CategoryCommunity, model.CategoryResidential:
		default:
			return fmt.Errorf("bus %d: unknown category %q", b.BusNumber, b.Category)
		}
		if b.HouseCount < 0 || b.SolarPanelCount < 0 {
			return fmt.Errorf("bus %d: counts must be >= 0", b.BusNumber)
		}
		if b.EVCapacityKW < 0 {
			return fmt.Errorf("bus %d: ev_capacity_kw must be >= 0", b.BusNumber)
		}
	}
	return nil
}
