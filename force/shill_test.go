package force_test

import (
	"testing"

	"github.com/flocksim/swarmcore/collision"
	"github.com/flocksim/swarmcore/force"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
)

func TestShillWallPushesBackWhenOutside(t *testing.T) {
	p := config.DefaultParams().Flocking
	p.ArenaRadius = 1000
	arena := collision.NewArena(p)
	f := force.ShillWallLinSqrt(geom.Vec3{2000, 0, 0}, arena, p)
	if f[0] >= 0 {
		t.Errorf("outside the disc, shill force should point back toward the centre, got %v", f)
	}
}

func TestShillWallZeroFarFromBoundaryInside(t *testing.T) {
	p := config.DefaultParams().Flocking
	p.ArenaRadius = 10000
	p.R0Shill = 100
	arena := collision.NewArena(p)
	f := force.ShillWallLinSqrt(geom.Vec3{0, 0, 0}, arena, p)
	if f != geom.Zero {
		t.Errorf("far inside the arena, shill force should be zero, got %v", f)
	}
}

func TestShillObstaclePushesTowardExitWhenInside(t *testing.T) {
	p := config.DefaultParams().Flocking
	square := geom.NewPolygon([]geom.Vec3{{-10, -10, 0}, {10, -10, 0}, {10, 10, 0}, {-10, 10, 0}})
	obstacles := []collision.Obstacle{collision.NewObstacle(square)}

	// self sits near the obstacle's right edge, inside it; the nearest
	// exit point is further along +x, so the shill force should push
	// further in +x, toward the exit, not back toward the centre.
	f := force.ShillObstacleLinSqrt(geom.Vec3{9, 0, 0}, 0, obstacles, p, nil)
	if f[0] <= 0 {
		t.Errorf("inside the obstacle, shill force should point toward the nearest exit, got %v", f)
	}
}

func TestShillObstaclePushesAwayWhenOutside(t *testing.T) {
	p := config.DefaultParams().Flocking
	square := geom.NewPolygon([]geom.Vec3{{-10, -10, 0}, {10, -10, 0}, {10, 10, 0}, {-10, 10, 0}})
	obstacles := []collision.Obstacle{collision.NewObstacle(square)}

	f := force.ShillObstacleLinSqrt(geom.Vec3{500, 0, 0}, 0, obstacles, p, nil)
	if f[0] <= 0 {
		t.Errorf("outside the obstacle, shill force should point away from it, got %v", f)
	}
}

func TestShillObstacleCountsCrossing(t *testing.T) {
	p := config.DefaultParams().Flocking
	square := geom.NewPolygon([]geom.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}})
	obstacles := []collision.Obstacle{collision.NewObstacle(square)}
	counters := collision.NewCounters()

	force.ShillObstacleLinSqrt(geom.Vec3{10, 0, 0}, 0, obstacles, p, counters)
	if counters.Obstacle.Load() != 0 {
		t.Fatal("should not count before entering the obstacle")
	}
	force.ShillObstacleLinSqrt(geom.Vec3{0, 0, 0}, 0, obstacles, p, counters)
	if counters.Obstacle.Load() != 1 {
		t.Fatalf("Obstacle = %d, want 1 after crossing in", counters.Obstacle.Load())
	}
	force.ShillObstacleLinSqrt(geom.Vec3{0.5, 0, 0}, 0, obstacles, p, counters)
	if counters.Obstacle.Load() != 1 {
		t.Fatalf("Obstacle = %d, want 1, should not double-count while still inside", counters.Obstacle.Load())
	}
}
