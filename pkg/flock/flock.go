package flock

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
)

// Flock is the ordered population of agents. The order is stable identity
// used for iteration only; neighbor relations never depend on it. The size
// is fixed at construction: agents are never created or destroyed mid-run.
type Flock []*Agent

// New creates n agents with uniform random positions inside the world bounds
// and a random unit heading scaled to cfg.MaxSpeed. The rng is the single
// source of randomness, so a fixed seed reproduces the flock exactly.
func New(n int, cfg *Config, rng *rand.Rand) (Flock, error) {
	if n < 0 {
		return nil, fmt.Errorf("flock size must not be negative, got %d", n)
	}
	if cfg.WorldWidth <= 0 || cfg.WorldHeight <= 0 {
		return nil, fmt.Errorf("degenerate world bounds %gx%g", cfg.WorldWidth, cfg.WorldHeight)
	}

	f := make(Flock, n)
	for i := range f {
		theta := rng.Float64() * 2 * math.Pi
		f[i] = &Agent{
			Pos: geometry.Vector2D{
				X: rng.Float64() * cfg.WorldWidth,
				Y: rng.Float64() * cfg.WorldHeight,
			},
			Vel: geometry.NewVectorPolar(cfg.MaxSpeed, theta),
		}
	}
	return f, nil
}
