package flock

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
)

// agentState is the frozen pre-tick view of one agent. Every read during a
// step goes through the snapshot, never through the live flock, so the order
// in which agents are updated cannot influence the result.
type agentState struct {
	pos geometry.Vector2D
	vel geometry.Vector2D
}

// forceFunc computes one rule's contribution for a single agent against the
// pre-tick snapshot. The neighbor list is never empty when these run.
type forceFunc func(me agentState, neighbors []int, snap []agentState, cfg *Config) geometry.Vector2D

// forceTable dispatches a Rule to its force computation.
var forceTable = [numRules]forceFunc{
	Separation: separationForce,
	Alignment:  alignmentForce,
	Cohesion:   cohesionForce,
}

// Engine advances a flock one tick at a time. It holds no simulation state
// of its own beyond a reusable snapshot buffer, so the same engine can step
// different flocks and configs interchangeably.
type Engine struct {
	snapshot []agentState
	workers  int
}

// NewEngine creates an engine sized to the machine.
func NewEngine() *Engine {
	return &Engine{workers: runtime.NumCPU()}
}

// Step advances every agent by exactly one tick. A malformed rule order is
// rejected before any agent state changes; there is no partial application.
//
// The per-agent work reads only the pre-tick snapshot and writes only its own
// agent, which makes the fan-out across workers safe without locks and keeps
// the result identical to a sequential pass.
func (e *Engine) Step(f Flock, order Order, cfg *Config) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("invalid rule order: %w", err)
	}

	if cap(e.snapshot) < len(f) {
		e.snapshot = make([]agentState, len(f))
	}
	e.snapshot = e.snapshot[:len(f)]
	for i, a := range f {
		e.snapshot[i] = agentState{pos: a.Pos, vel: a.Vel}
	}

	workers := e.workers
	if workers < 1 {
		workers = 1
	}
	chunk := (len(f) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	var g errgroup.Group
	for start := 0; start < len(f); start += chunk {
		end := start + chunk
		if end > len(f) {
			end = len(f)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				e.stepAgent(f[i], i, order, cfg)
			}
			return nil
		})
	}
	return g.Wait()
}

// stepAgent runs the full per-agent update: neighbor discovery, rule force
// accumulation in order, wind, speed clamp, Euler integration and edge wrap.
func (e *Engine) stepAgent(a *Agent, self int, order Order, cfg *Config) {
	me := e.snapshot[self]
	neighbors := e.findNeighbors(self, cfg)

	vel := me.vel
	if len(neighbors) > 0 {
		for _, r := range order {
			vel = vel.Add(forceTable[r](me, neighbors, e.snapshot, cfg))
		}
	}
	vel = vel.Add(cfg.Wind)

	a.Vel = vel
	a.ClampSpeed(cfg.MaxSpeed)
	a.Pos = me.pos.Add(a.Vel)
	a.WrapEdges(cfg.WorldWidth, cfg.WorldHeight)
}

// findNeighbors returns the snapshot indices of every other agent strictly
// inside the view radius and inside the vision cone. Brute force over the
// whole flock; the population is small enough that a spatial index would not
// pay for itself.
func (e *Engine) findNeighbors(self int, cfg *Config) []int {
	me := e.snapshot[self]
	radiusSq := cfg.ViewRadius * cfg.ViewRadius
	halfFOV := cfg.FOVDegrees * math.Pi / 360

	var neighbors []int
	for j := range e.snapshot {
		if j == self {
			continue
		}
		if me.pos.DistanceSquaredTo(e.snapshot[j].pos) >= radiusSq {
			continue
		}
		if !cfg.Omnidirectional() {
			toOther := e.snapshot[j].pos.Sub(me.pos)
			// Boundary inclusive: an agent exactly on the cone edge is seen.
			// The epsilon absorbs the rounding of the degree conversion.
			if math.Abs(me.vel.SignedAngleTo(toOther)) > halfFOV+geometry.Epsilon {
				continue
			}
		}
		neighbors = append(neighbors, j)
	}
	return neighbors
}

// separationForce pushes away from neighbors crowding inside ViewRadius/2.
// The tighter sub-radius is intentional: neighbors between ViewRadius/2 and
// ViewRadius stay in the neighbor set for the other rules but do not repel.
func separationForce(me agentState, neighbors []int, snap []agentState, cfg *Config) geometry.Vector2D {
	closeSq := (cfg.ViewRadius / 2) * (cfg.ViewRadius / 2)
	var steer geometry.Vector2D
	for _, j := range neighbors {
		if me.pos.DistanceSquaredTo(snap[j].pos) < closeSq {
			steer = steer.Sub(snap[j].pos.Sub(me.pos))
		}
	}
	return steer.Mul(cfg.SeparationWeight)
}

// alignmentForce matches the average velocity of all visible neighbors.
func alignmentForce(me agentState, neighbors []int, snap []agentState, cfg *Config) geometry.Vector2D {
	var sum geometry.Vector2D
	for _, j := range neighbors {
		sum = sum.Add(snap[j].vel)
	}
	return sum.Mul(cfg.AlignmentWeight / float64(len(neighbors)))
}

// cohesionForce steers toward the centroid of all visible neighbors.
func cohesionForce(me agentState, neighbors []int, snap []agentState, cfg *Config) geometry.Vector2D {
	var sum geometry.Vector2D
	for _, j := range neighbors {
		sum = sum.Add(snap[j].pos)
	}
	centroid := sum.Mul(1 / float64(len(neighbors)))
	return centroid.Sub(me.pos).Mul(cfg.CohesionWeight)
}
