package flock

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if cfg.Omnidirectional() {
		t.Error("default config should use the 270 degree cone, not omnidirectional vision")
	}
	if cfg.WorldWidth != 800 || cfg.WorldHeight != 600 || cfg.NumBoids != 50 {
		t.Errorf("default world = %gx%g/%d; want 800x600/50", cfg.WorldWidth, cfg.WorldHeight, cfg.NumBoids)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Negative population", func(c *Config) { c.NumBoids = -1 }},
		{"Zero width", func(c *Config) { c.WorldWidth = 0 }},
		{"Negative height", func(c *Config) { c.WorldHeight = -600 }},
		{"Zero max speed", func(c *Config) { c.MaxSpeed = 0 }},
		{"Negative view radius", func(c *Config) { c.ViewRadius = -50 }},
		{"Zero tick rate", func(c *Config) { c.TPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfig_Omnidirectional(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FOVDegrees = OmniFOV
	if !cfg.Omnidirectional() {
		t.Error("FOVDegrees = -1 must mean omnidirectional")
	}
}

const testSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"worldWidth": {"type": "number", "exclusiveMinimum": 0},
		"worldHeight": {"type": "number", "exclusiveMinimum": 0},
		"numBoids": {"type": "integer", "minimum": 0},
		"maxSpeed": {"type": "number", "exclusiveMinimum": 0}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", testSchema)

	t.Run("Valid file with partial overrides", func(t *testing.T) {
		cfgPath := writeFile(t, dir, "ok.json", `{"numBoids": 120, "maxSpeed": 6.5}`)
		cfg, err := LoadConfig(cfgPath, schemaPath)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.NumBoids != 120 || cfg.MaxSpeed != 6.5 {
			t.Errorf("overrides not applied: %+v", cfg)
		}
		// Unspecified fields keep the defaults.
		if cfg.WorldWidth != 800 || cfg.ViewRadius != 50 {
			t.Errorf("defaults not preserved: %+v", cfg)
		}
	})

	t.Run("Schema rejects bad value", func(t *testing.T) {
		cfgPath := writeFile(t, dir, "bad_schema.json", `{"maxSpeed": -1}`)
		if _, err := LoadConfig(cfgPath, schemaPath); err == nil {
			t.Error("expected schema validation error for negative maxSpeed")
		}
	})

	t.Run("Malformed JSON rejected", func(t *testing.T) {
		cfgPath := writeFile(t, dir, "garbage.json", `{not json`)
		if _, err := LoadConfig(cfgPath, schemaPath); err == nil {
			t.Error("expected decode error for malformed JSON")
		}
	})

	t.Run("Missing file rejected", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(dir, "nope.json"), schemaPath); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
