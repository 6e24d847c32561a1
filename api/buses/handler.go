package buses

import (
	"encoding/json"
	"net/http"

	"github.com/DanielEliad/powerworld/core/busconfig"
	"github.com/DanielEliad/powerworld/core/model"
)

// ConfigResponse wraps the registry table.
type ConfigResponse struct {
	Buses []model.BusConfig `json:"buses"`
}

// NewConfigHandler returns the /api/buses/config handler. GET reads the
// table, PUT replaces it wholesale; an explicit empty table is honored.
func NewConfigHandler(registry *busconfig.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, ConfigResponse{Buses: registry.All()})
		case http.MethodPut:
			var req ConfigResponse
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}
			cfg := busconfig.Config{Buses: req.Buses}
			if err := cfg.Validate(); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			registry.Update(req.Buses)
			writeJSON(w, ConfigResponse{Buses: registry.All()})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
