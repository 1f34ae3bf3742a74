package flock

import (
	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
)

// Agent is a single boid: a position and a velocity in the plane.
// Both are mutated in place by the engine once per tick; the invariant
// |Vel| <= MaxSpeed holds after every completed step.
type Agent struct {
	Pos geometry.Vector2D `json:"pos"`
	Vel geometry.Vector2D `json:"vel"`
}

// Heading returns the agent's heading angle in radians, derived from its
// velocity via atan2. A stationary agent reports heading 0.
func (a *Agent) Heading() float64 {
	return a.Vel.Angle()
}

// WrapEdges relocates an out-of-range agent to the opposite edge.
// This is a one-sided reset, not a modulo wrap: an agent that overshoots the
// right bound lands exactly at x=0 no matter how far it overshot, and one
// below 0 lands exactly at x=width. The x and y axes are handled
// independently. Interior positions are untouched.
func (a *Agent) WrapEdges(width, height float64) {
	if a.Pos.X > width {
		a.Pos.X = 0
	} else if a.Pos.X < 0 {
		a.Pos.X = width
	}
	if a.Pos.Y > height {
		a.Pos.Y = 0
	} else if a.Pos.Y < 0 {
		a.Pos.Y = height
	}
}

// ClampSpeed rescales the velocity to exactly maxSpeed when it is faster,
// preserving direction. Slower velocities, including the zero vector, are
// left untouched; there is no divide-by-zero path.
func (a *Agent) ClampSpeed(maxSpeed float64) {
	speed := a.Vel.Len()
	if speed > maxSpeed && speed > 0 {
		a.Vel = a.Vel.Mul(maxSpeed / speed)
	}
}
