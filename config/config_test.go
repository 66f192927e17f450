package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `building:
  cars: 3
  floors: 12
  capacity: 8
dispatch:
  sweep: "farthest"
  zone_overlap: 0.1
metrics:
  prometheus_enabled: true
  prometheus_port: ":9100"
telemetry:
  enabled: false
  topic: "building/a/state"
scenario:
  ticks: 200
  arrival_rate: 0.2
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
		{"cars", cfg.Building.Cars, 3},
		{"floors", cfg.Building.Floors, 12},
		{"capacity", cfg.Building.Capacity, 8},
		{"sweep", string(cfg.Dispatch.Sweep), "farthest"},
		{"zone_overlap", cfg.Dispatch.ZoneOverlap, 0.1},
		{"idle_base_default", cfg.Dispatch.IdleBase, 100.0},
		{"prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prometheus_port", cfg.Metrics.PrometheusPort, ":9100"},
		{"telemetry_enabled", cfg.Telemetry.Enabled, false},
		{"telemetry_topic", cfg.Telemetry.Topic, "building/a/state"},
		{"ticks", cfg.Scenario.Ticks, 200},
		{"arrival_rate", cfg.Scenario.ArrivalRate, 0.2},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"building": {"cars": 2, "floors": 10}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LIFT_BUILDING__CARS", "4")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Building.Cars != 4 {
		t.Errorf("env override: got %d want 4", cfg.Building.Cars)
	}
	if cfg.Building.Floors != 10 {
		t.Errorf("floors: got %d want 10", cfg.Building.Floors)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		data string
	}{
		{"one_floor", `{"building": {"cars": 1, "floors": 1}}`},
		{"bad_sweep", `{"dispatch": {"sweep": "zigzag"}}`},
		{"telemetry_no_broker", `{"telemetry": {"enabled": true}}`},
		{"bad_rate", `{"scenario": {"arrival_rate": 2}}`},
	}
	for _, c := range cases {
		path := filepath.Join(dir, c.name+".json")
		if err := os.WriteFile(path, []byte(c.data), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
