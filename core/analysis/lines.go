package analysis

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/DanielEliad/powerworld/core/model"
	"github.com/DanielEliad/powerworld/internal/tabular"
)

// ErrNoBranchColumns means the paste carried no "% of MVA Limit" columns.
var ErrNoBranchColumns = errors.New("no branch columns found in data")

// BranchStats summarizes one branch's loading series.
type BranchStats struct {
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Avg     float64 `json:"avg"`
	Current float64 `json:"current"`
}

// LinesSeries is the plottable loading data.
type LinesSeries struct {
	Datetime []string             `json:"datetime"`
	Branches map[string][]float64 `json:"branches"`
}

// LinesResult reports branch loading, main-line health and reverse-flow
// findings. MainLineFlatness is nil when no main line was identified and
// MainTransformerReverseFlow is nil when the paste carried no "MW From"
// columns to judge direction from.
type LinesResult struct {
	Data                       LinesSeries            `json:"data"`
	Statistics                 map[string]BranchStats `json:"statistics"`
	BranchNames                []string               `json:"branch_names"`
	MainLineBelow90            bool                   `json:"main_line_below_90"`
	MainLineFlatness           *float64               `json:"main_line_flatness"`
	MainTransformerReverseFlow *bool                  `json:"main_transformer_reverse_flow"`
	ReverseFlowErrors          []model.Issue          `json:"reverse_flow_errors"`
}

// Lines analyzes a branch loading export.
func (a *Analyzer) Lines(text string) (*LinesResult, error) {
	start := time.Now()
	res, err := a.lines(text)
	if err != nil {
		a.fail("lines", err)
		return nil, err
	}
	a.finish("lines", start, res.ReverseFlowErrors)
	return res, nil
}

func (a *Analyzer) lines(text string) (*LinesResult, error) {
	f, err := tabular.Parse(text)
	if err != nil {
		return nil, err
	}
	mva, mwFrom := tabular.SplitBranchFrames(f)

	datetimes, err := mva.Datetimes()
	if err != nil {
		return nil, err
	}

	branchCols := tabular.BranchColumns(mva)
	if len(branchCols) == 0 {
		return nil, ErrNoBranchColumns
	}

	// Two columns can normalize to the same branch name; the first keeps its
	// position, the last one's values win.
	branches := make(map[string][]float64, len(branchCols))
	var names []string
	for _, col := range branchCols {
		name := tabular.BranchName(col)
		if _, seen := branches[name]; !seen {
			names = append(names, name)
		}
		vals, _ := mva.Column(col)
		branches[name] = append([]float64(nil), vals...)
	}

	stats := make(map[string]BranchStats, len(names))
	for _, name := range names {
		series := branches[name]
		if len(series) == 0 {
			continue
		}
		stats[name] = BranchStats{
			Max:     floats.Max(series),
			Min:     floats.Min(series),
			Avg:     stat.Mean(series, nil),
			Current: series[len(series)-1],
		}
	}

	below90, flatness := mainLineHealth(mva, branchCols)
	reverseFlow, reverseErrors := transformerReverseFlow(mwFrom)

	return &LinesResult{
		Data:                       LinesSeries{Datetime: datetimes, Branches: branches},
		Statistics:                 stats,
		BranchNames:                names,
		MainLineBelow90:            below90,
		MainLineFlatness:           flatness,
		MainTransformerReverseFlow: reverseFlow,
		ReverseFlowErrors:          reverseErrors,
	}, nil
}

// mainLineHealth inspects the feeder between bus 1 and bus 2: whether it
// stayed under 90% loading throughout and how flat its profile is
// (population coefficient of variation, percent).
func mainLineHealth(f *tabular.Frame, branchCols []string) (bool, *float64) {
	var mainCol string
	for _, col := range branchCols {
		norm := strings.Join(strings.Fields(strings.ToUpper(col)), " ")
		if (strings.HasPrefix(norm, "1 ") && strings.Contains(norm, " TO 2 ")) ||
			(strings.HasPrefix(norm, "1 (1) ") && strings.Contains(norm, " TO 2 (2) ")) {
			mainCol = col
			break
		}
	}
	if mainCol == "" {
		return false, nil
	}
	vals, ok := f.Column(mainCol)
	if !ok || len(vals) == 0 {
		return false, nil
	}

	below90 := true
	for _, v := range vals {
		if v >= 90 {
			below90 = false
			break
		}
	}

	var flatness *float64
	if mean := stat.Mean(vals, nil); mean > 0 {
		cv := stat.PopStdDev(vals, nil) / mean * 100
		flatness = &cv
	}
	return below90, flatness
}

// transformerReverseFlow checks the 1-2 branch's "MW From" series for
// negative values. The first return is nil when the paste has no directional
// columns at all.
func transformerReverseFlow(mwFrom *tabular.Frame) (*bool, []model.Issue) {
	issues := []model.Issue{}
	cols := tabular.NonBaseColumns(mwFrom)
	if len(cols) == 0 {
		return nil, issues
	}
	detected := false
	for _, col := range cols {
		if tabular.BranchName(col) != "1-2" {
			continue
		}
		vals, _ := mwFrom.Column(col)
		if issue := detectReverseFlow(vals, "1-2"); issue != nil {
			issues = append(issues, *issue)
			detected = true
		}
		break
	}
	return &detected, issues
}

func detectReverseFlow(values []float64, branch string) *model.Issue {
	found := false
	minMW := 0.0
	for _, v := range values {
		if v < 0 {
			if !found || v < minMW {
				minMW = v
			}
			found = true
		}
	}
	if !found {
		return nil
	}
	return &model.Issue{
		Kind:    model.ReversePowerFlow,
		Branch:  branch,
		MinMW:   model.FloatPtr(minMW),
		Message: fmt.Sprintf("Branch %s: Reverse power flow detected (min: %.3f MW)", branch, minMW),
	}
}
