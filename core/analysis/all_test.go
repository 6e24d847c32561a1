package analysis

import (
	"math"
	"testing"
)

func TestAllEmptyRequest(t *testing.T) {
	a := newTestAnalyzer(t)
	res, err := a.All(Request{})
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if res.Lines != nil || res.Generators != nil || res.Buses != nil || res.Loads != nil {
		t.Fatalf("empty request must skip every section: %+v", res)
	}
	if res.BudgetSummary != nil {
		t.Fatalf("no generator data, budget must stay nil: %+v", res.BudgetSummary)
	}
}

func TestAllRunsOnlyRequestedSections(t *testing.T) {
	a := newTestAnalyzer(t)
	res, err := a.All(Request{BusesData: busesPaste})
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if res.Buses == nil {
		t.Fatalf("buses section missing")
	}
	if res.Lines != nil || res.Generators != nil || res.Loads != nil || res.BudgetSummary != nil {
		t.Fatalf("unrequested sections ran: %+v", res)
	}
	if res.Buses.BusesWithViolationsCount != 1 {
		t.Fatalf("buses section: %+v", res.Buses)
	}
}

func TestAllLoadCostFeedsBudget(t *testing.T) {
	a := seededAnalyzer(t)
	res, err := a.All(Request{
		GeneratorsData: generatorsPaste,
		LoadsMWData:    movedMWPaste,
	})
	if err != nil {
		t.Fatalf("all: %v", err)
	}

	if res.Loads == nil || res.Generators == nil {
		t.Fatalf("sections missing: %+v", res)
	}
	if math.Abs(res.Loads.LoadCost-10000) > 1e-9 {
		t.Fatalf("load cost: got %v, want 10000", res.Loads.LoadCost)
	}
	if res.BudgetSummary == nil {
		t.Fatalf("budget summary missing")
	}
	if math.Abs(res.BudgetSummary.LoadCost-10000) > 1e-9 {
		t.Fatalf("budget load cost: got %v, want 10000", res.BudgetSummary.LoadCost)
	}
	if math.Abs(res.BudgetSummary.TotalCost-30000) > 1e-9 {
		t.Fatalf("budget total: got %v, want 30000", res.BudgetSummary.TotalCost)
	}
	if got, want := *res.BudgetSummary, res.Generators.BudgetSummary; got != want {
		t.Fatalf("top-level budget diverged from generators: %+v vs %+v", got, want)
	}
}

func TestAllFullRequest(t *testing.T) {
	a := newTestAnalyzer(t)
	res, err := a.All(Request{
		LinesData:      linesPaste,
		GeneratorsData: generatorsPaste,
		BusesData:      busesPaste,
		LoadsMWData:    loadsMWPaste,
		LoadsMVarData:  loadsMVarPaste,
	})
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if res.Lines == nil || res.Generators == nil || res.Buses == nil || res.Loads == nil {
		t.Fatalf("sections missing: %+v", res)
	}
	if !res.Loads.IsFirstPaste {
		t.Fatalf("fresh store must baseline the load submission")
	}
	// First paste moves nothing, so the roll-up prices only batteries.
	if res.BudgetSummary.LoadCost != 0 || res.BudgetSummary.TotalCost != 20000 {
		t.Fatalf("budget summary: %+v", res.BudgetSummary)
	}
}

func TestAllPropagatesSectionError(t *testing.T) {
	a := newTestAnalyzer(t)
	if _, err := a.All(Request{LinesData: "not a table"}); err == nil {
		t.Fatalf("expected error from rejected section")
	}
}
