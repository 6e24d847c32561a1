package analysis

import "github.com/DanielEliad/powerworld/core/model"

// Request carries the raw pasted exports of a combined analysis. Sections
// left empty are skipped.
type Request struct {
	LinesData      string `json:"lines_data"`
	GeneratorsData string `json:"generators_data"`
	BusesData      string `json:"buses_data"`
	LoadsMWData    string `json:"loads_mw_data"`
	LoadsMVarData  string `json:"loads_mvar_data"`
}

// CombinedResult aggregates the per-section results. Sections without input
// stay null, as does the budget roll-up when no generator data was given.
type CombinedResult struct {
	Lines         *LinesResult         `json:"lines"`
	Generators    *GeneratorsResult    `json:"generators"`
	Buses         *BusesResult         `json:"buses"`
	Loads         *LoadsResult         `json:"loads"`
	BudgetSummary *model.BudgetSummary `json:"budget_summary"`
}

// All runs every analysis whose input is present. Loads run before
// generators so the freshly priced redistribution feeds the budget roll-up;
// without load data the roll-up prices load movement at zero. The first
// rejected section aborts the whole request.
func (a *Analyzer) All(req Request) (*CombinedResult, error) {
	res := &CombinedResult{}

	if req.LinesData != "" {
		lines, err := a.Lines(req.LinesData)
		if err != nil {
			return nil, err
		}
		res.Lines = lines
	}

	loadCost := 0.0
	if req.LoadsMWData != "" || req.LoadsMVarData != "" {
		loadsRes, err := a.Loads(req.LoadsMWData, req.LoadsMVarData)
		if err != nil {
			return nil, err
		}
		res.Loads = loadsRes
		loadCost = loadsRes.LoadCost
	}

	if req.GeneratorsData != "" {
		gens, err := a.generatorsTimed(req.GeneratorsData, loadCost)
		if err != nil {
			return nil, err
		}
		res.Generators = gens
		res.BudgetSummary = &gens.BudgetSummary
	}

	if req.BusesData != "" {
		buses, err := a.Buses(req.BusesData)
		if err != nil {
			return nil, err
		}
		res.Buses = buses
	}

	return res, nil
}
