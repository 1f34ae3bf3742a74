package flock

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// OmniFOV is the field-of-view sentinel meaning "sees in every direction".
const OmniFOV = -1

// Config holds the immutable simulation constants. The engine never mutates
// it; callers that want live tuning pass a fresh value into Step.
type Config struct {
	// World dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	NumBoids int `json:"numBoids"`

	// Perception
	ViewRadius float64 `json:"viewRadius"`
	// FOVDegrees is the full width of the vision cone centered on the
	// heading. Any negative value (OmniFOV) means omnidirectional vision.
	FOVDegrees float64 `json:"fovDegrees"`

	// Physics
	MaxSpeed float64 `json:"maxSpeed"`

	// Rule weights
	SeparationWeight float64 `json:"separationWeight"`
	AlignmentWeight  float64 `json:"alignmentWeight"`
	CohesionWeight   float64 `json:"cohesionWeight"`

	// Wind is the constant external force added every tick, after the rule
	// forces, regardless of the active rule order.
	Wind geometry.Vector2D `json:"wind"`

	// TPS is the target tick rate of the driving loop.
	TPS int `json:"tps"`
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:       800,
		WorldHeight:      600,
		NumBoids:         50,
		ViewRadius:       50,
		FOVDegrees:       270,
		MaxSpeed:         4.0,
		SeparationWeight: 0.05,
		AlignmentWeight:  0.05,
		CohesionWeight:   0.01,
		Wind:             geometry.Vector2D{X: 0.1, Y: 0.05},
		TPS:              60,
	}
}

// Omnidirectional reports whether the FOV cone is disabled.
func (c *Config) Omnidirectional() bool {
	return c.FOVDegrees < 0
}

// Validate fails fast on constants the simulation cannot run with. A config
// that fails here must not be used to build any flock or engine state.
func (c *Config) Validate() error {
	if c.NumBoids < 0 {
		return fmt.Errorf("numBoids must not be negative, got %d", c.NumBoids)
	}
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("world bounds must be positive, got %gx%g", c.WorldWidth, c.WorldHeight)
	}
	if c.MaxSpeed <= 0 {
		return fmt.Errorf("maxSpeed must be positive, got %g", c.MaxSpeed)
	}
	if c.ViewRadius <= 0 {
		return fmt.Errorf("viewRadius must be positive, got %g", c.ViewRadius)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file, validates it against the
// JSON-Schema and then against Validate.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
