package battery

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CapacitySeries is a battery state-of-charge trajectory in kWh. It always
// has one more entry than the power series it was derived from, and index 0
// is zero by construction.
type CapacitySeries []float64

// CapacityTimeseries integrates a per-timestep battery power series into
// capacity. Power is in MW with positive meaning discharge, so
// capacity[i+1] = capacity[i] - power[i], accumulated in MWh and emitted in
// kWh. Strict left-to-right scan; no smoothing, no reordering.
func CapacityTimeseries(powerMW []float64) CapacitySeries {
	series := make(CapacitySeries, len(powerMW)+1)
	acc := 0.0
	for i, p := range powerMW {
		acc -= p
		series[i+1] = acc * 1000
	}
	return series
}

// Peak returns the series maximum, 0 for an empty series.
func (s CapacitySeries) Peak() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Max(s)
}

// PeakIndex returns the timestep of the series maximum, 0 for an empty
// series. Ties resolve to the first occurrence.
func (s CapacitySeries) PeakIndex() int {
	if len(s) == 0 {
		return 0
	}
	return floats.MaxIdx(s)
}

// Final returns the last value of the series, 0 for an empty series.
func (s CapacitySeries) Final() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// RoundCapacity rounds an observed peak up to the next installable size. The
// two-decimal pre-rounding keeps accumulation noise just above a clean
// multiple (300.0000001 kWh) from buying a whole extra increment. Validation,
// warnings and costing all go through this one helper.
func RoundCapacity(capacityKWh float64, incrementKWh int) float64 {
	rounded := math.Round(capacityKWh*100) / 100
	return math.Ceil(rounded/float64(incrementKWh)) * float64(incrementKWh)
}
