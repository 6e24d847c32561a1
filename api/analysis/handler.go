package analysis

import (
	"encoding/json"
	"net/http"

	coreanalysis "github.com/DanielEliad/powerworld/core/analysis"
	"github.com/DanielEliad/powerworld/core/monitoring"
	"github.com/DanielEliad/powerworld/internal/tabular"
)

// PasteRequest carries one pasted simulation table.
type PasteRequest struct {
	Data string `json:"data"`
}

// LoadsRequest carries the load pastes; either kind may be empty.
type LoadsRequest struct {
	LoadsMWData   string `json:"loads_mw_data"`
	LoadsMVarData string `json:"loads_mvar_data"`
}

// UpdateBatteryRequest carries edited battery sub-table rows. The datetime
// axis is echoed by the UI; the computation derives its own from the rows.
type UpdateBatteryRequest struct {
	BatteryTableData []map[string]any `json:"battery_table_data"`
	Datetime         []string         `json:"datetime"`
}

// ReconstructTableRequest merges edited battery rows back into the originally
// pasted table.
type ReconstructTableRequest struct {
	BatteryTableData []map[string]any `json:"battery_table_data"`
	OriginalColumns  []string         `json:"original_columns"`
	OriginalData     []map[string]any `json:"original_data"`
}

// NewLinesHandler returns the POST /api/analyze/lines handler.
func NewLinesHandler(a *coreanalysis.Analyzer) http.Handler {
	return pasteHandler("lines", func(data string) (any, error) {
		return a.Lines(data)
	})
}

// NewGeneratorsHandler returns the POST /api/analyze/generators handler.
func NewGeneratorsHandler(a *coreanalysis.Analyzer) http.Handler {
	return pasteHandler("generators", func(data string) (any, error) {
		return a.Generators(data)
	})
}

// NewBusesHandler returns the POST /api/analyze/buses handler.
func NewBusesHandler(a *coreanalysis.Analyzer) http.Handler {
	return pasteHandler("buses", func(data string) (any, error) {
		return a.Buses(data)
	})
}

// NewLoadsHandler returns the POST /api/analyze/loads handler.
func NewLoadsHandler(a *coreanalysis.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req LoadsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		res, err := a.Loads(req.LoadsMWData, req.LoadsMVarData)
		if err != nil {
			monitoring.CaptureException(err, map[string]string{"analysis": "loads"})
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, res)
	})
}

// NewCombinedHandler returns the POST /api/analyze handler running every
// section whose input is present.
func NewCombinedHandler(a *coreanalysis.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req coreanalysis.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		res, err := a.All(req)
		if err != nil {
			monitoring.CaptureException(err, map[string]string{"analysis": "all"})
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, res)
	})
}

// NewUpdateBatteryHandler returns the POST /api/generators/update-battery
// handler re-running the battery pipeline over edited rows.
func NewUpdateBatteryHandler(a *coreanalysis.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req UpdateBatteryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		res, err := a.UpdateBatteryTable(req.BatteryTableData)
		if err != nil {
			monitoring.CaptureException(err, map[string]string{"analysis": "update_battery"})
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, res)
	})
}

// NewReconstructHandler returns the POST /api/generators/reconstruct handler
// serializing the merged table back to paste form.
func NewReconstructHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req ReconstructTableRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		paste := tabular.Reconstruct(req.BatteryTableData, req.OriginalData, req.OriginalColumns)
		writeJSON(w, map[string]string{"data": paste})
	})
}

func pasteHandler(kind string, run func(data string) (any, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req PasteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		res, err := run(req.Data)
		if err != nil {
			monitoring.CaptureException(err, map[string]string{"analysis": kind})
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, res)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
