package battery

import (
	"fmt"
	"strconv"

	"github.com/DanielEliad/powerworld/core/model"
)

const (
	// notFullyUsedThresholdKWh is the residual charge above which a battery
	// counts as not drained by end of day.
	notFullyUsedThresholdKWh = 0.1
	// wasteThresholdPercent is the rounding waste share that makes an
	// installed size worth flagging.
	wasteThresholdPercent = 10
)

// CheckWarnings evaluates the soft heuristics for one bus. Callers invoke it
// only when ValidateCapacity produced zero errors for the bus; a bus already
// in violation gets no secondary advice.
func CheckWarnings(bus int, capacity CapacitySeries, constraints model.BatteryConstraints) []model.Issue {
	if len(capacity) == 0 {
		return nil
	}

	var warnings []model.Issue
	busStr := strconv.Itoa(bus)
	peak := capacity.Peak()
	final := capacity.Final()

	if final > notFullyUsedThresholdKWh {
		remaining := 0.0
		if peak > 0 {
			remaining = final / peak * 100
		}
		warnings = append(warnings, model.Issue{
			Kind:             model.BatteryNotFullyUsed,
			Bus:              busStr,
			Timestep:         model.IntPtr(len(capacity) - 1),
			CapacityKWh:      model.FloatPtr(final),
			MaxCapacityKWh:   model.FloatPtr(peak),
			PercentRemaining: model.FloatPtr(remaining),
			Message:          fmt.Sprintf("Bus %d battery not at 0 at end of day: %.2f kWh remaining", bus, final),
		})
	}

	if peak > 0 {
		installed := RoundCapacity(peak, constraints.RoundingIncrementKWh)
		wasted := installed - peak
		wastePct := wasted / installed * 100
		if wastePct > wasteThresholdPercent {
			warnings = append(warnings, model.Issue{
				Kind:               model.BatteryUnderutilizedRounding,
				Bus:                busStr,
				Timestep:           model.IntPtr(0),
				CapacityKWh:        model.FloatPtr(peak),
				RoundedCapacityKWh: model.FloatPtr(installed),
				WastedCapacityKWh:  model.FloatPtr(wasted),
				WastePercent:       model.FloatPtr(wastePct),
				Message: fmt.Sprintf("Bus %d battery underutilized: using %.2f kWh but paying for %.0f kWh (%.1f%% wasted due to rounding)",
					bus, peak, installed, wastePct),
			})
		}
	}

	return warnings
}
