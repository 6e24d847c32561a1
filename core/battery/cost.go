package battery

import "github.com/DanielEliad/powerworld/core/model"

// Cost prices the battery observed on one bus: the peak capacity is rounded
// up to an installable size and priced per kWh. Pure function of its inputs.
func Cost(peakKWh float64, constraints model.BatteryConstraints, class model.BatteryClass) model.BatteryCost {
	installed := RoundCapacity(peakKWh, constraints.RoundingIncrementKWh)
	return model.BatteryCost{
		MaxCapacityKWh:     peakKWh,
		RoundedCapacityKWh: installed,
		CostPerKWh:         constraints.CostPerKWh,
		TotalCost:          installed * float64(constraints.CostPerKWh),
		BatteryClass:       class,
		MinSizeKWh:         constraints.MinSizeKWh,
		MaxSizeKWh:         constraints.MaxSizeKWh,
	}
}
