package analysis

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/DanielEliad/powerworld/core/model"
	"github.com/DanielEliad/powerworld/internal/tabular"
)

// VoltageStats summarizes one bus's per-unit voltage series.
type VoltageStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// BusesSeries is the plottable voltage data.
type BusesSeries struct {
	Datetime []string             `json:"datetime"`
	Buses    map[string][]float64 `json:"buses"`
}

// BusesResult reports per-bus voltages and band violations.
type BusesResult struct {
	Data                     BusesSeries             `json:"data"`
	BusNumbers               []string                `json:"bus_numbers"`
	Statistics               map[string]VoltageStats `json:"statistics"`
	VoltageErrors            []model.Issue           `json:"voltage_errors"`
	BusesWithViolationsCount int                     `json:"buses_with_violations_count"`
}

// Buses analyzes a bus voltage export against the configured band.
func (a *Analyzer) Buses(text string) (*BusesResult, error) {
	start := time.Now()
	res, err := a.buses(text)
	if err != nil {
		a.fail("buses", err)
		return nil, err
	}
	a.finish("buses", start, res.VoltageErrors)
	return res, nil
}

func (a *Analyzer) buses(text string) (*BusesResult, error) {
	f, err := tabular.Parse(text)
	if err != nil {
		return nil, err
	}
	datetimes, err := f.Datetimes()
	if err != nil {
		return nil, err
	}

	var busNumbers []string
	buses := map[string][]float64{}
	stats := map[string]VoltageStats{}
	for _, col := range f.Columns {
		bus, ok := tabular.VoltageBus(col)
		if !ok {
			continue
		}
		vals, _ := f.Column(col)
		busNumbers = append(busNumbers, bus)
		buses[bus] = append([]float64(nil), vals...)
		if len(vals) > 0 {
			stats[bus] = VoltageStats{
				Min: floats.Min(vals),
				Max: floats.Max(vals),
				Avg: stat.Mean(vals, nil),
			}
		}
	}

	issues := a.validateVoltages(f)
	violating := map[string]struct{}{}
	for _, is := range issues {
		violating[is.Bus] = struct{}{}
	}

	return &BusesResult{
		Data:                     BusesSeries{Datetime: datetimes, Buses: buses},
		BusNumbers:               busNumbers,
		Statistics:               stats,
		VoltageErrors:            issues,
		BusesWithViolationsCount: len(violating),
	}, nil
}

// validateVoltages flags every timestep outside the configured band, column
// by column in paste order.
func (a *Analyzer) validateVoltages(f *tabular.Frame) []model.Issue {
	issues := []model.Issue{}
	for _, col := range f.Columns {
		bus, ok := tabular.VoltageBus(col)
		if !ok {
			continue
		}
		vals, _ := f.Column(col)
		for i, v := range vals {
			if v < a.cfg.VoltageMinPU || v > a.cfg.VoltageMaxPU {
				issues = append(issues, model.Issue{
					Kind:      model.VoltageViolation,
					Bus:       bus,
					Timestep:  model.IntPtr(i),
					VoltagePU: model.FloatPtr(v),
					Message: fmt.Sprintf("Bus %s - Timestep %d: Voltage = %.3f p.u. (must be between %g and %g)",
						bus, i, v, a.cfg.VoltageMinPU, a.cfg.VoltageMaxPU),
				})
			}
		}
	}
	return issues
}
