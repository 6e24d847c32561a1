package model

// BatteryClass selects the battery economics applied to a bus. Residential
// buses install home batteries, community buses neighborhood batteries; the
// grid-connection bus installs none.
type BatteryClass string

const (
	BatteryHome         BatteryClass = "Home Battery"
	BatteryNeighborhood BatteryClass = "Neighborhood Battery"
)

// BatteryConstraints carries the hard limits and pricing of one battery
// class. One fixed record exists per class; it is never mutated.
type BatteryConstraints struct {
	CostPerKWh           int           `json:"cost_per_kwh"`
	MinSizeKWh           int           `json:"min_size_kwh"`
	MaxSizeKWh           int           `json:"max_size_kwh"`
	RoundingIncrementKWh int           `json:"rounding_increment_kwh"`
	AllowedCategories    []BusCategory `json:"allowed_categories"`
}

// BatteryCost prices the battery observed on one bus during one analysis.
// Derived per call, never persisted.
type BatteryCost struct {
	MaxCapacityKWh     float64      `json:"max_capacity_kwh"`
	RoundedCapacityKWh float64      `json:"rounded_capacity_kwh"`
	CostPerKWh         int          `json:"cost_per_kwh"`
	TotalCost          float64      `json:"total_cost"`
	BatteryClass       BatteryClass `json:"battery_class"`
	MinSizeKWh         int          `json:"min_size_kwh"`
	MaxSizeKWh         int          `json:"max_size_kwh"`
}
