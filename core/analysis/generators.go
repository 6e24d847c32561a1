package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DanielEliad/powerworld/core/battery"
	"github.com/DanielEliad/powerworld/core/budget"
	"github.com/DanielEliad/powerworld/core/model"
	"github.com/DanielEliad/powerworld/internal/tabular"
)

const datetimeLayout = "2006-01-02T15:04:05"

// BatteryTable is the editable slice of the generator export: Date, Time and
// the battery columns, with per-column bus metadata.
type BatteryTable struct {
	Columns  []string          `json:"columns"`
	Data     []map[string]any  `json:"data"`
	Metadata map[string]string `json:"metadata"`
}

// GeneratorsResult reports generator series, per-bus battery capacity with
// validation findings, costing, and the budget roll-up.
type GeneratorsResult struct {
	Columns          []string                     `json:"columns"`
	Rows             [][]any                      `json:"rows"`
	Data             []map[string]any             `json:"data"`
	Datetime         []string                     `json:"datetime"`
	Generators       map[string][]float64         `json:"generators"`
	GeneratorColumns []string                     `json:"generator_columns"`
	BatteryCapacity  map[string][]float64         `json:"battery_capacity"`
	BatteryByBus     map[string][]string          `json:"battery_by_bus"`
	BatteryTable     BatteryTable                 `json:"battery_table"`
	ValidationErrors []model.Issue                `json:"validation_errors"`
	BatteryCosts     map[string]model.BatteryCost `json:"battery_costs"`
	BudgetSummary    model.BudgetSummary          `json:"budget_summary"`
}

// Generators analyzes a generator export. The budget roll-up uses the stored
// redistribution cost of the load working state.
func (a *Analyzer) Generators(text string) (*GeneratorsResult, error) {
	return a.generatorsTimed(text, a.store.LoadCost())
}

func (a *Analyzer) generatorsTimed(text string, loadCost float64) (*GeneratorsResult, error) {
	start := time.Now()
	res, err := a.generators(text, loadCost)
	if err != nil {
		a.fail("generators", err)
		return nil, err
	}
	a.finish("generators", start, res.ValidationErrors)
	return res, nil
}

func (a *Analyzer) generators(text string, loadCost float64) (*GeneratorsResult, error) {
	f, err := tabular.Parse(text)
	if err != nil {
		return nil, err
	}
	datetimes, err := f.Datetimes()
	if err != nil {
		return nil, err
	}
	datetimes, err = extendToNextMidnight(datetimes)
	if err != nil {
		return nil, err
	}

	genCols := generatorColumns(f)
	var batteryCols []string
	for _, col := range genCols {
		if strings.Contains(strings.ToLower(col), "#bt") {
			batteryCols = append(batteryCols, col)
		}
	}
	byBus := tabular.BatteryColumnsByBus(batteryCols)

	capacities, issues, costs := a.batterySurvey(f, byBus)

	tableCols := append([]string{"Date", "Time"}, batteryCols...)
	table := f.Select(tableCols)
	metadata := map[string]string{}
	for bus, names := range byBus {
		for _, name := range names {
			metadata[name] = strconv.Itoa(bus)
		}
	}

	generators := make(map[string][]float64, len(genCols))
	for _, col := range genCols {
		vals, _ := f.Column(col)
		generators[col] = append([]float64(nil), vals...)
	}

	byBusOut := make(map[string][]string, len(byBus))
	for bus, names := range byBus {
		byBusOut[strconv.Itoa(bus)] = names
	}

	return &GeneratorsResult{
		Columns:          append([]string(nil), f.Columns...),
		Rows:             f.Rows(),
		Data:             f.Records(),
		Datetime:         datetimes,
		Generators:       generators,
		GeneratorColumns: genCols,
		BatteryCapacity:  capacities,
		BatteryByBus:     byBusOut,
		BatteryTable: BatteryTable{
			Columns:  tableCols,
			Data:     table.Records(),
			Metadata: metadata,
		},
		ValidationErrors: issues,
		BatteryCosts:     costs,
		BudgetSummary:    budget.Summarize(costs, loadCost, a.budget.Limit),
	}, nil
}

// batterySurvey aggregates battery generation per bus and runs the capacity,
// validation, warning and costing pipeline for every classified bus. Buses
// without a battery class still get a capacity series but no findings and no
// cost.
func (a *Analyzer) batterySurvey(f *tabular.Frame, byBus map[int][]string) (map[string][]float64, []model.Issue, map[string]model.BatteryCost) {
	capacities := map[string][]float64{}
	issues := []model.Issue{}
	costs := map[string]model.BatteryCost{}

	for _, bus := range tabular.SortedBuses(byBus) {
		mw := sumColumns(f, byBus[bus])
		series := battery.CapacityTimeseries(mw)
		capacities[strconv.Itoa(bus)] = series

		class, ok := a.registry.Classify(bus)
		if !ok {
			continue
		}
		constraints, ok := a.batteries.ForClass(class)
		if !ok {
			a.log.Warnf("bus %d: no constraints configured for class %q", bus, class)
			continue
		}

		errs := battery.ValidateCapacity(bus, series, mw, constraints)
		issues = append(issues, errs...)
		// Warnings would drown in real findings, so they only surface on an
		// otherwise clean bus.
		if len(errs) == 0 {
			issues = append(issues, battery.CheckWarnings(bus, series, constraints)...)
		}
		costs[strconv.Itoa(bus)] = battery.Cost(series.Peak(), constraints, class)
	}
	return capacities, issues, costs
}

// generatorColumns lists the generator MW columns, excluding the slack
// machine "Gen 1 #1" whose constant output is not a battery.
func generatorColumns(f *tabular.Frame) []string {
	cols := []string{}
	for _, col := range f.Columns {
		lower := strings.ToLower(col)
		if strings.HasPrefix(lower, "gen") && strings.Contains(lower, "mw") &&
			!strings.Contains(lower, "gen 1 #1") {
			cols = append(cols, col)
		}
	}
	return cols
}

// sumColumns adds the named numeric columns row-wise.
func sumColumns(f *tabular.Frame, names []string) []float64 {
	out := make([]float64, f.NumRows())
	for _, name := range names {
		vals, ok := f.Column(name)
		if !ok {
			continue
		}
		for i, v := range vals {
			out[i] += v
		}
	}
	return out
}

// extendToNextMidnight appends the midnight following the last timestamp, so
// the capacity series (one point longer than the power series) keeps an axis
// entry for its final value.
func extendToNextMidnight(datetimes []string) ([]string, error) {
	if len(datetimes) == 0 || datetimes[len(datetimes)-1] == "" {
		return datetimes, nil
	}
	last, err := time.Parse(datetimeLayout, datetimes[len(datetimes)-1])
	if err != nil {
		return nil, fmt.Errorf("invalid datetime %q: %w", datetimes[len(datetimes)-1], err)
	}
	midnight := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	if !midnight.After(last) {
		midnight = midnight.Add(24 * time.Hour)
	}
	return append(datetimes, midnight.Format(datetimeLayout)), nil
}
