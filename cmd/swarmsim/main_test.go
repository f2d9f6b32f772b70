package main

import (
	"testing"

	"github.com/flocksim/swarmcore/collision"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
)

func TestSeededSourceIsDeterministic(t *testing.T) {
	a := newSeededSource(42)
	b := newSeededSource(42)
	for i := 0; i < 10; i++ {
		if got, want := a.next(), b.next(); got != want {
			t.Fatalf("draw %d: got %v, want %v", i, got, want)
		}
	}
}

func TestRandomPointInArenaStaysInsideDisc(t *testing.T) {
	p := config.DefaultParams()
	arena := collision.NewArena(p.Flocking)
	rng := newSeededSource(7)

	for i := 0; i < 200; i++ {
		pt := randomPointInArena(arena, p.Flocking.Dim, rng)
		if !arena.Contains(pt) {
			t.Fatalf("point %v outside arena of radius %v", pt, arena.Radius)
		}
		if pt[2] != 0 {
			t.Fatalf("2D mode should pin z to 0, got %v", pt[2])
		}
	}
}

func TestRandomPointInArenaStaysInsideSquare(t *testing.T) {
	p := config.DefaultParams()
	p.Flocking.ArenaShape = config.ArenaSquare
	arena := collision.NewArena(p.Flocking)
	rng := newSeededSource(9)

	for i := 0; i < 200; i++ {
		pt := randomPointInArena(arena, p.Flocking.Dim, rng)
		if !arena.Contains(pt) {
			t.Fatalf("point %v outside square arena", pt)
		}
	}
}

func TestCoverageWaypointsDefaultsToArenaSquare(t *testing.T) {
	p := config.DefaultParams()
	waypoints, err := coverageWaypoints("", p.Flocking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waypoints) != 4 {
		t.Fatalf("got %d waypoints, want 4", len(waypoints))
	}
	arena := collision.NewArena(p.Flocking)
	for _, w := range waypoints {
		if !arena.Contains(w) {
			t.Errorf("default waypoint %v falls outside the arena", w)
		}
	}
}

func TestCoverageWaypointsParsesExplicitList(t *testing.T) {
	waypoints, err := coverageWaypoints("10,20 -5,30", config.DefaultParams().Flocking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []geom.Vec3{{10, 20, 0}, {-5, 30, 0}}
	if len(waypoints) != len(want) {
		t.Fatalf("got %d waypoints, want %d", len(waypoints), len(want))
	}
	for i := range want {
		if waypoints[i] != want[i] {
			t.Errorf("waypoint %d = %v, want %v", i, waypoints[i], want[i])
		}
	}
}

func TestCoverageWaypointsRejectsMalformedPair(t *testing.T) {
	if _, err := coverageWaypoints("10,20 bad", config.DefaultParams().Flocking); err == nil {
		t.Fatal("expected an error for a malformed waypoint")
	}
}

func TestRandomInitialPhaseMatchesAgentCount(t *testing.T) {
	p := config.DefaultParams()
	p.Situation.NumberOfAgents = 5
	init := randomInitialPhase(p, 1)
	if init.NumberOfAgents != 5 {
		t.Errorf("NumberOfAgents = %d, want 5", init.NumberOfAgents)
	}
	for _, v := range init.Velocities {
		if v != (geom.Vec3{}) {
			t.Errorf("initial velocity should be zero, got %v", v)
		}
	}
}
