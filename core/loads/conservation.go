package loads

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/DanielEliad/powerworld/core/model"
	"github.com/DanielEliad/powerworld/internal/tabular"
)

// EnergyToleranceMW bounds how far a submission's total may drift from the
// baseline before the redistribution is rejected.
const EnergyToleranceMW = 0.01

// ValidateConservation compares one bus's submitted series against its
// baseline. A length mismatch is reported on its own; totals are only
// compared when the shapes agree.
func ValidateConservation(bus int, newValues, defaultValues []float64, kind Kind) []model.Issue {
	if len(newValues) != len(defaultValues) {
		return []model.Issue{{
			Kind: model.LoadEnergyNotConserved,
			Bus:  strconv.Itoa(bus),
			Message: fmt.Sprintf("Bus %d: Data length mismatch. Default: %d rows, New: %d rows",
				bus, len(defaultValues), len(newValues)),
		}}
	}

	defaultTotal := floats.Sum(defaultValues)
	newTotal := floats.Sum(newValues)
	if math.Abs(newTotal-defaultTotal) > EnergyToleranceMW {
		return []model.Issue{{
			Kind:         model.LoadEnergyNotConserved,
			Bus:          strconv.Itoa(bus),
			DefaultTotal: model.FloatPtr(defaultTotal),
			NewTotal:     model.FloatPtr(newTotal),
			Message: fmt.Sprintf("Bus %d: Total %s energy must remain constant. Default: %.3f, New: %.3f",
				bus, kind.Unit(), defaultTotal, newTotal),
		}}
	}
	return nil
}

// ValidatePQSync flags buses that contribute one power kind without the
// other. Both maps come from LoadColumnsByBus over the respective frames, so
// a bus can appear in the reactive map while carrying only an MW column.
func ValidatePQSync(mwByBus, mvarByBus map[int]tabular.LoadColumns) []model.Issue {
	var issues []model.Issue
	for _, bus := range tabular.SortedBuses(mwByBus) {
		if mwByBus[bus].MWCol == "" {
			continue
		}
		if mvarByBus[bus].MVarCol == "" {
			issues = append(issues, model.Issue{
				Kind:    model.LoadPQNotSynchronized,
				Bus:     strconv.Itoa(bus),
				Message: fmt.Sprintf("Bus %d: Has MW column but missing MVar column for #EV load", bus),
			})
		}
	}
	for _, bus := range tabular.SortedBuses(mvarByBus) {
		if mvarByBus[bus].MVarCol == "" {
			continue
		}
		if mwByBus[bus].MWCol == "" {
			issues = append(issues, model.Issue{
				Kind:    model.LoadPQNotSynchronized,
				Bus:     strconv.Itoa(bus),
				Message: fmt.Sprintf("Bus %d: Has MVar column but missing MW column for #EV load", bus),
			})
		}
	}
	return issues
}

// EnergyMovedKWh totals the absolute per-timestep deviation of a series from
// its baseline and converts it to kWh. Every moved unit shows up once at its
// source and once at its destination, hence the halving. Both slices must
// have the same length.
func EnergyMovedKWh(current, defaults []float64) float64 {
	moved := 0.0
	for i := range current {
		moved += math.Abs(current[i] - defaults[i])
	}
	return moved / 2 * 1000
}
