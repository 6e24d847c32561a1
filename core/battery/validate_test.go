package battery

import (
	"math"
	"testing"

	"github.com/DanielEliad/powerworld/core/model"
)

func homeConstraints() model.BatteryConstraints {
	var cfg Config
	cfg.SetDefaults()
	return cfg.Home
}

func findKind(issues []model.Issue, kind model.IssueKind) []model.Issue {
	var out []model.Issue
	for _, is := range issues {
		if is.Kind == kind {
			out = append(out, is)
		}
	}
	return out
}

func TestValidateNegativeCapacity(t *testing.T) {
	power := []float64{-5, 3, 3}
	capacity := CapacityTimeseries(power)
	issues := ValidateCapacity(6, capacity, power, homeConstraints())

	neg := findKind(issues, model.NegativeCapacity)
	if len(neg) != 1 {
		t.Fatalf("negative-capacity findings = %d, want 1 (full set: %+v)", len(neg), issues)
	}
	if *neg[0].Timestep != 3 {
		t.Fatalf("timestep = %d, want 3", *neg[0].Timestep)
	}
	if math.Abs(*neg[0].CapacityKWh-(-1000)) > 1e-6 {
		t.Fatalf("capacity = %v, want -1000", *neg[0].CapacityKWh)
	}
	if neg[0].Bus != "6" {
		t.Fatalf("bus = %q", neg[0].Bus)
	}

	// The 5 MWh swing also dwarfs a 45 kWh home battery.
	if above := findKind(issues, model.AboveMaxSize); len(above) != 1 {
		t.Fatalf("above-max findings = %d, want 1", len(above))
	}
}

func TestValidateAboveMaxAtPeakTimestep(t *testing.T) {
	power := []float64{-0.01, -0.04, 0.05}
	capacity := CapacityTimeseries(power) // [0, 10, 50, 0]
	issues := ValidateCapacity(3, capacity, power, homeConstraints())

	if len(issues) != 1 {
		t.Fatalf("issues = %+v, want exactly the above-max finding", issues)
	}
	is := issues[0]
	if is.Kind != model.AboveMaxSize {
		t.Fatalf("kind = %q", is.Kind)
	}
	if *is.Timestep != 2 {
		t.Fatalf("timestep = %d, want index of the peak", *is.Timestep)
	}
	if math.Abs(*is.CapacityKWh-50) > 1e-6 {
		t.Fatalf("capacity = %v, want 50", *is.CapacityKWh)
	}
	if *is.MinSizeKWh != 5 || *is.MaxSizeKWh != 45 {
		t.Fatalf("size bounds = %d..%d", *is.MinSizeKWh, *is.MaxSizeKWh)
	}
}

func TestValidatePowerRating(t *testing.T) {
	power := []float64{-0.04, 0.05}
	capacity := CapacityTimeseries(power) // [0, 40, -10], installed 40 kWh -> 0.04 MW ceiling
	issues := ValidateCapacity(4, capacity, power, homeConstraints())

	exceeds := findKind(issues, model.ExceedsPowerRating)
	if len(exceeds) != 1 {
		t.Fatalf("exceeds-power findings = %d (full set: %+v)", len(exceeds), issues)
	}
	is := exceeds[0]
	if *is.Timestep != 2 {
		t.Fatalf("timestep = %d, want power index + 1", *is.Timestep)
	}
	if math.Abs(*is.PowerMW-0.05) > 1e-9 {
		t.Fatalf("power = %v", *is.PowerMW)
	}
	if math.Abs(*is.MaxPowerRatingMW-0.04) > 1e-9 {
		t.Fatalf("rating = %v, want 0.04", *is.MaxPowerRatingMW)
	}
	if math.Abs(*is.InstalledCapacityKWh-40) > 1e-9 {
		t.Fatalf("installed = %v, want 40", *is.InstalledCapacityKWh)
	}
	if math.Abs(*is.CapacityKWh-(-10)) > 1e-6 {
		t.Fatalf("capacity at offending index = %v, want -10", *is.CapacityKWh)
	}

	if neg := findKind(issues, model.NegativeCapacity); len(neg) != 1 {
		t.Fatalf("the drained series must also report negative capacity, got %+v", issues)
	}
}

func TestValidatePowerRatingCapacityOutOfRange(t *testing.T) {
	// A capacity series shorter than power+1 reports 0 for the missing index.
	issues := ValidateCapacity(5, CapacitySeries{0}, []float64{99}, homeConstraints())
	exceeds := findKind(issues, model.ExceedsPowerRating)
	if len(exceeds) != 1 {
		t.Fatalf("findings = %+v", issues)
	}
	if *exceeds[0].CapacityKWh != 0 {
		t.Fatalf("capacity = %v, want 0 fallback", *exceeds[0].CapacityKWh)
	}
}

func TestValidateCleanSeries(t *testing.T) {
	power := []float64{-0.02, 0.01, 0.01}
	capacity := CapacityTimeseries(power) // [0, 20, 10, 0]
	if issues := ValidateCapacity(3, capacity, power, homeConstraints()); len(issues) != 0 {
		t.Fatalf("clean series produced %+v", issues)
	}
}
