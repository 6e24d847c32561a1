package analysis

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/DanielEliad/powerworld/core/loads"
	"github.com/DanielEliad/powerworld/core/model"
	"github.com/DanielEliad/powerworld/internal/tabular"
)

// ErrNoLoadData means a loads analysis carried neither an MW nor an MVar
// series.
var ErrNoLoadData = errors.New("at least one of the MW or MVar load series must be provided")

// LoadColumnPair names the columns one bus contributed. A name is empty when
// the bus appeared in only one kind of submission.
type LoadColumnPair struct {
	MWCol   string `json:"mw_col"`
	MVarCol string `json:"mvar_col"`
}

// SeriesDiff holds a bus's per-timestep deviation from its baseline, one
// slice per kind. A kind that was not submitted, or did not validate clean,
// stays empty.
type SeriesDiff struct {
	MW   []float64 `json:"mw"`
	MVar []float64 `json:"mvar"`
}

// LoadsResult reports a load submission: the parsed table, per-bus series,
// conservation findings against the stored baseline, and the redistribution
// cost derived from the deviations. IsFirstPaste marks the submission that
// became (part of) the baseline; such a submission has nothing to compare
// against and carries empty differences.
type LoadsResult struct {
	Columns          []string                  `json:"columns"`
	Rows             [][]any                   `json:"rows"`
	Data             []map[string]any          `json:"data"`
	Datetime         []string                  `json:"datetime"`
	LoadColumns      []string                  `json:"load_columns"`
	LoadByBus        map[string]LoadColumnPair `json:"load_by_bus"`
	MWData           map[string][]float64      `json:"mw_data"`
	MVarData         map[string][]float64      `json:"mvar_data"`
	OriginalMWData   map[string][]float64      `json:"original_mw_data"`
	Differences      map[string]*SeriesDiff    `json:"differences"`
	EnergyMovedKWh   map[string]float64        `json:"energy_moved_kwh"`
	LoadCost         float64                   `json:"load_cost"`
	ValidationErrors []model.Issue             `json:"validation_errors"`
	IsFirstPaste     bool                      `json:"is_first_paste"`
}

// loadSubmission is one parsed paste of one kind.
type loadSubmission struct {
	frame     *tabular.Frame
	byBus     map[int]tabular.LoadColumns
	data      map[string][]float64
	datetimes []string
}

func parseLoadSubmission(text string, kind loads.Kind) (*loadSubmission, error) {
	f, err := tabular.Parse(text)
	if err != nil {
		return nil, err
	}
	datetimes, err := f.Datetimes()
	if err != nil {
		return nil, err
	}
	byBus := tabular.LoadColumnsByBus(f)
	return &loadSubmission{
		frame:     f,
		byBus:     byBus,
		data:      loads.BusSeries(f, byBus, kind),
		datetimes: datetimes,
	}, nil
}

// Loads analyzes a load submission. The first non-empty submission of each
// kind becomes the immutable baseline; later submissions are validated for
// energy conservation against it and priced by total deviation.
func (a *Analyzer) Loads(mwText, mvarText string) (*LoadsResult, error) {
	start := time.Now()
	res, err := a.analyzeLoads(mwText, mvarText)
	if err != nil {
		a.fail("loads", err)
		return nil, err
	}
	a.finish("loads", start, res.ValidationErrors)
	return res, nil
}

func (a *Analyzer) analyzeLoads(mwText, mvarText string) (*LoadsResult, error) {
	hasMW := strings.TrimSpace(mwText) != ""
	hasMVar := strings.TrimSpace(mvarText) != ""
	if !hasMW && !hasMVar {
		return nil, ErrNoLoadData
	}

	issues := []model.Issue{}

	var mwSub, mvarSub *loadSubmission
	var err error
	if hasMW {
		if mwSub, err = parseLoadSubmission(mwText, loads.KindMW); err != nil {
			return nil, err
		}
	}
	if hasMVar {
		if mvarSub, err = parseLoadSubmission(mvarText, loads.KindMVar); err != nil {
			return nil, err
		}
	}

	// PQ-sync only applies when both kinds arrived in one submission; a
	// single-kind paste has nothing to be out of sync with.
	if hasMW && hasMVar {
		issues = append(issues, loads.ValidatePQSync(mwSub.byBus, mvarSub.byBus)...)
	}

	primary := mwSub
	if primary == nil {
		primary = mvarSub
	}

	res := &LoadsResult{
		Columns:          append([]string(nil), primary.frame.Columns...),
		Rows:             primary.frame.Rows(),
		Data:             primary.frame.Records(),
		Datetime:         primary.datetimes,
		LoadColumns:      primary.frame.DataColumns(),
		LoadByBus:        combineLoadByBus(mwSub, mvarSub),
		Differences:      map[string]*SeriesDiff{},
		EnergyMovedKWh:   map[string]float64{},
		ValidationErrors: issues,
	}

	if a.store.FirstPaste() {
		if hasMW {
			a.store.SetDefaultIfEmpty(loads.KindMW, mwSub.frame)
		}
		if hasMVar {
			a.store.SetDefaultIfEmpty(loads.KindMVar, mvarSub.frame)
		}
		res.MWData = submissionData(mwSub)
		res.MVarData = submissionData(mvarSub)
		// The submission itself is the baseline, so current equals original.
		res.OriginalMWData = submissionData(mwSub)
		res.IsFirstPaste = true
		a.log.Infof("load baseline fixed: mw=%t mvar=%t", hasMW, hasMVar)
		return res, nil
	}

	defaultMW := a.defaultSeries(loads.KindMW)
	defaultMVar := a.defaultSeries(loads.KindMVar)

	if hasMW {
		a.compareSubmission(mwSub, defaultMW, loads.KindMW, res)
	}
	if hasMVar {
		a.compareSubmission(mvarSub, defaultMVar, loads.KindMVar, res)
	}

	totalKWh := 0.0
	for _, kwh := range res.EnergyMovedKWh {
		totalKWh += kwh
	}
	res.LoadCost = totalKWh * a.budget.LoadCostPerKWh
	a.store.SetLoadCost(res.LoadCost)
	ObserveLoadCost(res.LoadCost)

	if hasMW {
		res.MWData = mwSub.data
	} else {
		res.MWData = copySeries(defaultMW)
	}
	if hasMVar {
		res.MVarData = mvarSub.data
	} else {
		res.MVarData = copySeries(defaultMVar)
	}
	res.OriginalMWData = defaultMW
	return res, nil
}

// compareSubmission validates one kind against its baseline and records the
// per-timestep deltas of every bus that validated clean.
func (a *Analyzer) compareSubmission(sub *loadSubmission, defaults map[string][]float64, kind loads.Kind, res *LoadsResult) {
	for _, bus := range tabular.SortedBuses(sub.byBus) {
		busStr := strconv.Itoa(bus)
		newVals, ok := sub.data[busStr]
		if !ok {
			continue
		}
		defVals, ok := defaults[busStr]
		if !ok {
			// A bus absent from the baseline has nothing to conserve.
			continue
		}
		errs := loads.ValidateConservation(bus, newVals, defVals, kind)
		res.ValidationErrors = append(res.ValidationErrors, errs...)
		if len(errs) > 0 {
			continue
		}
		diff := res.Differences[busStr]
		if diff == nil {
			diff = &SeriesDiff{MW: []float64{}, MVar: []float64{}}
			res.Differences[busStr] = diff
		}
		deltas := make([]float64, len(newVals))
		for i := range newVals {
			deltas[i] = newVals[i] - defVals[i]
		}
		if kind == loads.KindMVar {
			diff.MVar = deltas
			continue
		}
		diff.MW = deltas
		if len(deltas) > 0 {
			res.EnergyMovedKWh[busStr] = loads.EnergyMovedKWh(newVals, defVals)
		}
	}
}

// defaultSeries extracts the per-bus baseline of one kind, empty when no
// baseline of that kind was fixed yet.
func (a *Analyzer) defaultSeries(kind loads.Kind) map[string][]float64 {
	def, ok := a.store.Default(kind)
	if !ok {
		return map[string][]float64{}
	}
	return loads.BusSeries(def, tabular.LoadColumnsByBus(def), kind)
}

// submissionData yields the per-bus series of a submission, or an empty map
// when that kind was not submitted. Responses always carry {} over null.
func submissionData(sub *loadSubmission) map[string][]float64 {
	if sub == nil {
		return map[string][]float64{}
	}
	return sub.data
}

func copySeries(src map[string][]float64) map[string][]float64 {
	out := make(map[string][]float64, len(src))
	for k, v := range src {
		out[k] = append([]float64(nil), v...)
	}
	return out
}

// combineLoadByBus merges the column names of both submissions per bus. The
// MW name comes only from the MW submission and the MVar name only from the
// MVar one, so a column pasted into the wrong slot never counts as present.
func combineLoadByBus(mwSub, mvarSub *loadSubmission) map[string]LoadColumnPair {
	combined := map[string]LoadColumnPair{}
	if mwSub != nil {
		for bus, cols := range mwSub.byBus {
			combined[strconv.Itoa(bus)] = LoadColumnPair{MWCol: cols.MWCol}
		}
	}
	if mvarSub != nil {
		for bus, cols := range mvarSub.byBus {
			key := strconv.Itoa(bus)
			pair := combined[key]
			pair.MVarCol = cols.MVarCol
			combined[key] = pair
		}
	}
	return combined
}
