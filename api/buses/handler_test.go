package buses

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DanielEliad/powerworld/core/busconfig"
	"github.com/DanielEliad/powerworld/core/model"
)

func seededRegistry() *busconfig.Registry {
	var cfg busconfig.Config
	cfg.SetDefaults()
	reg := busconfig.NewRegistry(cfg.Buses)
	reg.EnsureSeeded()
	return reg
}

func TestConfigHandler_Get(t *testing.T) {
	h := NewConfigHandler(seededRegistry())
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/buses/config", nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out ConfigResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Buses) != 6 {
		t.Fatalf("expected 6 buses, got %d", len(out.Buses))
	}
	if out.Buses[0].BusNumber != 1 || out.Buses[0].Category != model.CategoryGridConnection {
		t.Fatalf("unexpected first bus %+v", out.Buses[0])
	}
}

func TestConfigHandler_Put(t *testing.T) {
	reg := seededRegistry()
	h := NewConfigHandler(reg)
	body := ConfigResponse{Buses: []model.BusConfig{
		{BusNumber: 1, Category: model.CategoryGridConnection},
		{BusNumber: 2, Category: model.CategoryResidential, HouseCount: 10},
	}}
	raw, _ := json.Marshal(body)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/buses/config", bytes.NewReader(raw))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	got := reg.All()
	if len(got) != 2 {
		t.Fatalf("registry has %d buses", len(got))
	}
	if cls, ok := reg.Classify(2); !ok || cls != model.BatteryHome {
		t.Fatalf("classification after update: %v %v", cls, ok)
	}
}

func TestConfigHandler_PutEmptyTableSticks(t *testing.T) {
	reg := seededRegistry()
	h := NewConfigHandler(reg)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/buses/config", bytes.NewReader([]byte(`{"buses":[]}`)))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	reg.EnsureSeeded()
	if len(reg.All()) != 0 {
		t.Fatalf("empty table was reseeded")
	}
}

func TestConfigHandler_PutInvalidCategory(t *testing.T) {
	h := NewConfigHandler(seededRegistry())
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/buses/config", bytes.NewReader([]byte(`{"buses":[{"bus_number":1,"category":"Windmill"}]}`)))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestConfigHandler_MethodNotAllowed(t *testing.T) {
	h := NewConfigHandler(seededRegistry())
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/buses/config", nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rr.Code)
	}
}
