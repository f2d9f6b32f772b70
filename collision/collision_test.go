package collision_test

import (
	"testing"

	"github.com/flocksim/swarmcore/collision"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
)

func TestArenaDiscContains(t *testing.T) {
	a := collision.NewArena(config.FlockingParams{ArenaShape: config.ArenaDisc, ArenaRadius: 1000})
	if !a.Contains(geom.Vec3{500, 0, 0}) {
		t.Error("point inside disc should be contained")
	}
	if a.Contains(geom.Vec3{1500, 0, 0}) {
		t.Error("point outside disc should not be contained")
	}
}

func TestArenaSquareContains(t *testing.T) {
	a := collision.NewArena(config.FlockingParams{ArenaShape: config.ArenaSquare, ArenaRadius: 1000})
	if !a.Contains(geom.Vec3{900, 900, 0}) {
		t.Error("point inside square should be contained")
	}
	if a.Contains(geom.Vec3{1100, 0, 0}) {
		t.Error("point outside square should not be contained")
	}
}

func TestCounterObstacleCrossingCountsOnce(t *testing.T) {
	square := geom.NewPolygon([]geom.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}})
	obstacles := []collision.Obstacle{collision.NewObstacle(square)}
	c := collision.NewCounters()

	positions := []geom.Vec3{{10, 0, 0}, {5, 0, 0}, {0.5, 0, 0}, {0, 0, 0}, {-0.5, 0, 0}, {-10, 0, 0}}
	for _, p := range positions {
		c.UpdateObstacleState(0, p, obstacles)
	}
	if c.Obstacle.Load() != 1 {
		t.Errorf("Obstacle = %d, want 1 (single crossing, no double-count while inside)", c.Obstacle.Load())
	}
}

func TestCounterPairwise(t *testing.T) {
	c := collision.NewCounters()
	coords := []geom.Vec3{{0, 0, 0}, {5, 0, 0}, {1000, 0, 0}}
	c.CountPairwise(coords, 10)
	if c.Pairwise.Load() != 1 {
		t.Errorf("Pairwise = %d, want 1", c.Pairwise.Load())
	}
}

func TestCounterReset(t *testing.T) {
	c := collision.NewCounters()
	c.Pairwise.Inc()
	c.Obstacle.Inc()
	c.Reset()
	if c.Pairwise.Load() != 0 || c.Obstacle.Load() != 0 {
		t.Error("Reset should zero both counters")
	}
}
