// Package export serializes combined analysis results for the CLI.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/DanielEliad/powerworld/core/analysis"
	"github.com/DanielEliad/powerworld/core/model"
)

// WriteJSON writes the combined result to w in JSON format.
func WriteJSON(w io.Writer, res *analysis.CombinedResult) error {
	enc := json.NewEncoder(w)
	return enc.Encode(res)
}

// WriteCSV writes the findings of the combined result to w, one row per
// issue, tagged with the section that produced it. Sections appear in the
// order they run.
func WriteCSV(w io.Writer, res *analysis.CombinedResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"section", "kind", "bus", "branch", "timestep", "message"}); err != nil {
		return err
	}
	write := func(section string, issues []model.Issue) error {
		for _, is := range issues {
			ts := ""
			if is.Timestep != nil {
				ts = strconv.Itoa(*is.Timestep)
			}
			rec := []string{section, string(is.Kind), is.Bus, is.Branch, ts, is.Message}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}
	if res.Lines != nil {
		if err := write("lines", res.Lines.ReverseFlowErrors); err != nil {
			return err
		}
	}
	if res.Loads != nil {
		if err := write("loads", res.Loads.ValidationErrors); err != nil {
			return err
		}
	}
	if res.Generators != nil {
		if err := write("generators", res.Generators.ValidationErrors); err != nil {
			return err
		}
	}
	if res.Buses != nil {
		if err := write("buses", res.Buses.VoltageErrors); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
