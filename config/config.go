package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/DanielEliad/powerworld/core/analysis"
	"github.com/DanielEliad/powerworld/core/battery"
	"github.com/DanielEliad/powerworld/core/budget"
	"github.com/DanielEliad/powerworld/core/busconfig"
)

// Config is the root configuration of the service.
type Config struct {
	Server    ServerConfig     `json:"server"`
	Metrics   MetricsConfig    `json:"metrics"`
	Sentry    SentryConfig     `json:"sentry"`
	Buses     busconfig.Config `json:"buses"`
	Batteries battery.Config   `json:"batteries"`
	Budget    budget.Config    `json:"budget"`
	Analysis  analysis.Config  `json:"analysis"`
}

// Load reads a yaml or json configuration file, applies PW_-prefixed
// environment overrides (PW_SERVER__ADDR=:9000 sets server.addr), fills
// defaults and validates. An empty path skips the file and yields the
// default configuration, still subject to env overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PW_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "pw_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Buses.SetDefaults()
	cfg.Batteries.SetDefaults()
	cfg.Budget.SetDefaults()
	cfg.Analysis.SetDefaults()
	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Buses.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Batteries.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Budget.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Analysis.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
