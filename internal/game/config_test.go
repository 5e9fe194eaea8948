package game

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Width != 10 || cfg.Height != 10 || cfg.Agents != 3 || cfg.MinPathLength != 5 || cfg.TimeLimit != 2*time.Minute {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -2 }},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }},
		{"negative agents", func(c *Config) { c.Agents = -1 }},
		{"zero speed", func(c *Config) { c.AgentSpeed = 0 }},
		{"zero path length", func(c *Config) { c.MinPathLength = 0 }},
		{"zero attempts", func(c *Config) { c.MaxAttemptsPerAgent = 0 }},
		{"zero starts", func(c *Config) { c.MaxObjectiveStarts = 0 }},
		{"negative time limit", func(c *Config) { c.TimeLimit = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if _, err := NewSession(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewSession() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigApplyEnv(t *testing.T) {
	env := map[string]string{
		"TILEROADS_WIDTH":       "24",
		"TILEROADS_AGENTS":      "7",
		"TILEROADS_AGENT_SPEED": "2.5",
		"TILEROADS_SEED":        "-99",
		"TILEROADS_TIME_LIMIT":  "45s",
		"TILEROADS_CATALOG":     "tiles.json",
		"TILEROADS_HEIGHT":      "",
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv() = %v", err)
	}

	if cfg.Width != 24 || cfg.Height != 10 {
		t.Errorf("size = %dx%d, want 24x10", cfg.Width, cfg.Height)
	}
	if cfg.Agents != 7 || cfg.AgentSpeed != 2.5 {
		t.Errorf("agents = %d at %g, want 7 at 2.5", cfg.Agents, cfg.AgentSpeed)
	}
	if cfg.Seed != -99 || cfg.TimeLimit != 45*time.Second || cfg.CatalogPath != "tiles.json" {
		t.Errorf("seed %d, limit %s, catalog %q", cfg.Seed, cfg.TimeLimit, cfg.CatalogPath)
	}
}

func TestConfigApplyEnvRejectsGarbage(t *testing.T) {
	for _, kv := range [][2]string{
		{"TILEROADS_WIDTH", "wide"},
		{"TILEROADS_TILE_SIZE", "big"},
		{"TILEROADS_SEED", "0x"},
		{"TILEROADS_TIME_LIMIT", "soon"},
	} {
		cfg := DefaultConfig()
		err := cfg.ApplyEnv(func(k string) string {
			if k == kv[0] {
				return kv[1]
			}
			return ""
		})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s=%q: error = %v, want ErrInvalidConfig", kv[0], kv[1], err)
		}
	}
}

func TestConfigRouteConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAttemptsPerAgent = 12
	cfg.MaxObjectiveStarts = 4

	rc := cfg.RouteConfig()
	if rc.MaxAttemptsPerAgent != 12 || rc.GoalResampleAttempts != 12 || rc.MaxObjectiveStarts != 4 {
		t.Errorf("RouteConfig() = %+v", rc)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateNew, "new"},
		{StateGenerating, "generating"},
		{StatePlanning, "planning"},
		{StateReady, "ready"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}
