package battery

import (
	"fmt"
	"math"
	"strconv"

	"github.com/DanielEliad/powerworld/core/model"
)

// CapacityToleranceKWh absorbs floating round-off when checking for negative
// capacity.
const CapacityToleranceKWh = 0.01

// ValidateCapacity checks one bus's capacity and power series against the
// hard limits of its battery class. All findings are collected; nothing
// short-circuits.
func ValidateCapacity(bus int, capacity CapacitySeries, powerMW []float64, constraints model.BatteryConstraints) []model.Issue {
	var issues []model.Issue
	busStr := strconv.Itoa(bus)

	for timestep, c := range capacity {
		if c < -CapacityToleranceKWh {
			issues = append(issues, model.Issue{
				Kind:        model.NegativeCapacity,
				Bus:         busStr,
				Timestep:    model.IntPtr(timestep),
				CapacityKWh: model.FloatPtr(c),
				Message:     fmt.Sprintf("Bus %d capacity %.2f kWh drops below zero at timestep %d", bus, c, timestep),
			})
		}
	}

	peak := capacity.Peak()
	if peak > float64(constraints.MaxSizeKWh) {
		issues = append(issues, model.Issue{
			Kind:        model.AboveMaxSize,
			Bus:         busStr,
			Timestep:    model.IntPtr(capacity.PeakIndex()),
			CapacityKWh: model.FloatPtr(peak),
			MinSizeKWh:  model.IntPtr(constraints.MinSizeKWh),
			MaxSizeKWh:  model.IntPtr(constraints.MaxSizeKWh),
			Message:     fmt.Sprintf("Bus %d capacity %.2f kWh exceeds maximum allowed %d kWh", bus, peak, constraints.MaxSizeKWh),
		})
	}

	// 1C rule: the power ceiling derives from the rounded installed size,
	// never from a value still under validation.
	installed := RoundCapacity(peak, constraints.RoundingIncrementKWh)
	ratingMW := installed / 1000
	for i, mw := range powerMW {
		if math.Abs(mw) <= ratingMW {
			continue
		}
		// Power at index i produced capacity at index i+1; the finding is
		// reported against the capacity index.
		capAt := 0.0
		if i+1 < len(capacity) {
			capAt = capacity[i+1]
		}
		issues = append(issues, model.Issue{
			Kind:                 model.ExceedsPowerRating,
			Bus:                  busStr,
			Timestep:             model.IntPtr(i + 1),
			CapacityKWh:          model.FloatPtr(capAt),
			PowerMW:              model.FloatPtr(mw),
			MaxPowerRatingMW:     model.FloatPtr(ratingMW),
			InstalledCapacityKWh: model.FloatPtr(installed),
			Message: fmt.Sprintf("Bus %d power %.3f MW exceeds 1C rate limit of %.3f MW (battery: %.0f kWh)",
				bus, math.Abs(mw), ratingMW, installed),
		})
	}

	return issues
}
