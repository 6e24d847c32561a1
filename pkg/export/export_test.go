package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/DanielEliad/powerworld/core/analysis"
	"github.com/DanielEliad/powerworld/core/model"
)

func sampleResult() *analysis.CombinedResult {
	return &analysis.CombinedResult{
		Generators: &analysis.GeneratorsResult{
			ValidationErrors: []model.Issue{
				{
					Kind:     model.NegativeCapacity,
					Bus:      "3",
					Timestep: model.IntPtr(2),
					Message:  "Battery capacity goes negative",
				},
			},
			BudgetSummary: model.BudgetSummary{TotalCost: 17500, BudgetLimit: 150000},
		},
		Buses: &analysis.BusesResult{
			VoltageErrors: []model.Issue{
				{Kind: model.VoltageViolation, Bus: "2", Message: "Voltage out of range"},
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "section" || rows[0][1] != "kind" {
		t.Fatalf("header %v", rows[0])
	}
	if rows[1][0] != "generators" || rows[1][1] != "negative_capacity" || rows[1][2] != "3" || rows[1][4] != "2" {
		t.Fatalf("generators row %v", rows[1])
	}
	if rows[2][0] != "buses" || rows[2][1] != "voltage_violation" || rows[2][2] != "2" || rows[2][4] != "" {
		t.Fatalf("buses row %v", rows[2])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var out analysis.CombinedResult
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Generators == nil || out.Generators.BudgetSummary.TotalCost != 17500 {
		t.Fatalf("round trip %+v", out.Generators)
	}
	if out.Lines != nil {
		t.Fatalf("absent section should stay nil")
	}
}
