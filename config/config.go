// Package config loads the service configuration from JSON or YAML with
// optional environment overrides.
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

	"github.com/hoistlab/liftcore/core/dispatch"
	"github.com/hoistlab/liftcore/core/metrics"
	"github.com/hoistlab/liftcore/infra/telemetry"
	"github.com/hoistlab/liftcore/simulator"
)

// Config is the root configuration of the service.
type Config struct {
	Building  BuildingConfig     `json:"building"`
	Dispatch  dispatch.Config    `json:"dispatch"`
	Metrics   metrics.Config     `json:"metrics"`
	Telemetry telemetry.Config   `json:"telemetry"`
	Scenario  simulator.Scenario `json:"scenario"`
}

// BuildingConfig describes the serviced building and fleet.
type BuildingConfig struct {
	Cars     int `json:"cars"`
	Floors   int `json:"floors"`
	Capacity int `json:"capacity"`
}

// SetDefaults fills unset fields with sensible values.
func (c *BuildingConfig) SetDefaults() {
	if c.Cars == 0 {
		c.Cars = 2
	}
	if c.Floors == 0 {
		c.Floors = 10
	}
	if c.Capacity == 0 {
		c.Capacity = dispatch.DefaultCapacity
	}
}

// Validate surfaces configuration errors once, before any event is
// processed.
func (c BuildingConfig) Validate() error {
	if c.Cars <= 0 {
		return fmt.Errorf("building: at least one car is required")
	}
	if c.Floors < 2 {
		return fmt.Errorf("building: at least two floors are required")
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("building: car capacity must be positive")
	}
	return nil
}

// Load reads the configuration file at path. Environment variables
// prefixed with LIFT_ override file values, with "__" separating nesting
// levels (LIFT_BUILDING__CARS=4).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
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
	if err := k.Load(env.Provider("LIFT_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "lift_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Building.SetDefaults()
	cfg.Dispatch.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Telemetry.SetDefaults()
	cfg.Scenario.SetDefaults()
	if err := cfg.Building.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Dispatch.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Telemetry.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Scenario.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
