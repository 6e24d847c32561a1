package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `server:
  addr: ":9000"
metrics:
  prometheus_enabled: true
budget:
  limit: 200000
batteries:
  home:
    cost_per_kwh: 450
    min_size_kwh: 5
    max_size_kwh: 50
    rounding_increment_kwh: 10
    allowed_categories: ["Residential"]
analysis:
  voltage_min_pu: 0.9
  voltage_max_pu: 1.1
sentry:
  dsn: "https://key@sentry.example/1"
  environment: "staging"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server.addr", cfg.Server.Addr, ":9000"},
		{"metrics.prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"metrics.prometheus_port default", cfg.Metrics.PrometheusPort, ":9091"},
		{"budget.limit", cfg.Budget.Limit, 200000.0},
		{"budget.load_cost_per_kwh default", cfg.Budget.LoadCostPerKWh, 5.0},
		{"batteries.home.cost_per_kwh", cfg.Batteries.Home.CostPerKWh, 450},
		{"batteries.home.rounding_increment_kwh", cfg.Batteries.Home.RoundingIncrementKWh, 10},
		{"batteries.neighborhood default", cfg.Batteries.Neighborhood.CostPerKWh, 350},
		{"analysis.voltage_min_pu", cfg.Analysis.VoltageMinPU, 0.9},
		{"analysis.voltage_max_pu", cfg.Analysis.VoltageMaxPU, 1.1},
		{"sentry.dsn", cfg.Sentry.DSN, "https://key@sentry.example/1"},
		{"sentry.environment", cfg.Sentry.Environment, "staging"},
		{"buses seeded", len(cfg.Buses.Buses), 6},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("server addr: got %q", cfg.Server.Addr)
	}
	if cfg.Budget.Limit != 150000 {
		t.Errorf("budget limit: got %v", cfg.Budget.Limit)
	}
	if cfg.Batteries.Home.MaxSizeKWh != 45 || cfg.Batteries.Neighborhood.MaxSizeKWh != 250 {
		t.Errorf("battery defaults: %+v", cfg.Batteries)
	}
	if cfg.Analysis.VoltageMinPU != 0.95 || cfg.Analysis.VoltageMaxPU != 1.05 {
		t.Errorf("voltage band defaults: %+v", cfg.Analysis)
	}
	if len(cfg.Buses.Buses) != 6 {
		t.Errorf("bus table: got %d entries", len(cfg.Buses.Buses))
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PW_SERVER__ADDR", ":7070")
	t.Setenv("PW_SENTRY__ENVIRONMENT", "prod")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("env override addr: got %q", cfg.Server.Addr)
	}
	if cfg.Sentry.Environment != "prod" {
		t.Errorf("env override sentry env: got %q", cfg.Sentry.Environment)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("addr = ':1'"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoadInvalidBand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "analysis:\n  voltage_min_pu: 1.1\n  voltage_max_pu: 0.9\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for inverted band")
	}
}
