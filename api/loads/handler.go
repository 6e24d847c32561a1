package loads

import (
	"encoding/json"
	"net/http"

	"github.com/DanielEliad/powerworld/core/analysis"
	coreloads "github.com/DanielEliad/powerworld/core/loads"
	"github.com/DanielEliad/powerworld/core/monitoring"
)

// MoveRequest is a batch of redistribution operations applied in order.
type MoveRequest struct {
	Operations []coreloads.MoveOperation `json:"operations"`
}

// NewMoveHandler returns the POST /api/loads/move handler. A failed batch
// leaves the working state untouched and maps to 400.
func NewMoveHandler(engine *coreloads.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req MoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		res, err := engine.Apply(req.Operations)
		if err != nil {
			monitoring.CaptureException(err, map[string]string{"operation": "move_loads"})
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		analysis.ObserveLoadCost(res.LoadCost)
		writeJSON(w, res)
	})
}

// NewResetHandler returns the POST /api/loads/reset handler restoring the
// working state to the fixed defaults.
func NewResetHandler(engine *coreloads.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		res, err := engine.Reset()
		if err != nil {
			monitoring.CaptureException(err, map[string]string{"operation": "reset_loads"})
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		analysis.ObserveLoadCost(0)
		writeJSON(w, res)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
