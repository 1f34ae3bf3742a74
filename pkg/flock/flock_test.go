package flock

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestNew(t *testing.T) {
	cfg := DefaultConfig()
	f, err := New(50, cfg, newTestRand(1))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if len(f) != 50 {
		t.Fatalf("len(flock) = %d; want 50", len(f))
	}

	for i, a := range f {
		if a.Pos.X < 0 || a.Pos.X >= cfg.WorldWidth || a.Pos.Y < 0 || a.Pos.Y >= cfg.WorldHeight {
			t.Errorf("agent %d spawned out of bounds at %v", i, a.Pos)
		}
		if got := a.Vel.Len(); math.Abs(got-cfg.MaxSpeed) > geometry.Epsilon {
			t.Errorf("agent %d spawn speed = %v; want %v", i, got, cfg.MaxSpeed)
		}
	}
}

func TestNew_InvalidInput(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("Negative size", func(t *testing.T) {
		if _, err := New(-1, cfg, newTestRand(1)); err == nil {
			t.Error("expected error for negative flock size")
		}
	})

	t.Run("Degenerate bounds", func(t *testing.T) {
		bad := *cfg
		bad.WorldWidth = 0
		if _, err := New(10, &bad, newTestRand(1)); err == nil {
			t.Error("expected error for zero-width world")
		}
	})

	t.Run("Empty flock is fine", func(t *testing.T) {
		f, err := New(0, cfg, newTestRand(1))
		if err != nil {
			t.Errorf("New(0) returned error: %v", err)
		}
		if len(f) != 0 {
			t.Errorf("len(flock) = %d; want 0", len(f))
		}
	})
}

func TestNew_SeedDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	f1, err := New(30, cfg, newTestRand(42))
	if err != nil {
		t.Fatal(err)
	}
	f2, err := New(30, cfg, newTestRand(42))
	if err != nil {
		t.Fatal(err)
	}

	for i := range f1 {
		if f1[i].Pos != f2[i].Pos || f1[i].Vel != f2[i].Vel {
			t.Fatalf("agent %d differs between identically seeded flocks: %v/%v vs %v/%v",
				i, f1[i].Pos, f1[i].Vel, f2[i].Pos, f2[i].Vel)
		}
	}
}
