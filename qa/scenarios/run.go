package scenarios

import (
	"math"
	"testing"

	"github.com/DanielEliad/powerworld/core/battery"
	"github.com/DanielEliad/powerworld/core/model"
)

// RunScenario replays one YAML-defined power series through the battery
// pipeline: integrate to capacity, validate, advise, price.
func RunScenario(t *testing.T, sc *Scenario) {
	constraints := sc.Constraints.ToModel()
	capacity := battery.CapacityTimeseries(sc.PowerMW)

	errs := battery.ValidateCapacity(sc.Bus, capacity, sc.PowerMW, constraints)
	var warnings []model.Issue
	if len(errs) == 0 {
		warnings = battery.CheckWarnings(sc.Bus, capacity, constraints)
	}

	if got, want := kinds(errs), sc.Expected.Errors; !equalKinds(got, want) {
		t.Errorf("scenario %s expected errors %v, got %v", sc.Name, want, got)
	}
	if got, want := kinds(warnings), sc.Expected.Warnings; !equalKinds(got, want) {
		t.Errorf("scenario %s expected warnings %v, got %v", sc.Name, want, got)
	}

	cost := battery.Cost(capacity.Peak(), constraints, parseClass(sc.Class))
	if math.Abs(cost.RoundedCapacityKWh-sc.Expected.RoundedKWh) > 1e-9 {
		t.Errorf("scenario %s expected %.2f kWh installed, got %.2f", sc.Name, sc.Expected.RoundedKWh, cost.RoundedCapacityKWh)
	}
	if math.Abs(cost.TotalCost-sc.Expected.TotalCost) > 1e-9 {
		t.Errorf("scenario %s expected total cost %.2f, got %.2f", sc.Name, sc.Expected.TotalCost, cost.TotalCost)
	}
}

func kinds(issues []model.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = string(issue.Kind)
	}
	return out
}

func equalKinds(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
