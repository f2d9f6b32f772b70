package scheduler_test

import (
	"math"
	"testing"

	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/phase"
	"github.com/flocksim/swarmcore/scheduler"
)

func ringInit(n int, radius float64) phase.Phase {
	p := phase.New(n, phase.NumInnerStates)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		p.Coordinates[i] = geom.Vec3{radius * math.Cos(theta), radius * math.Sin(theta), 0}
	}
	return p
}

func TestTickProducesFiniteState(t *testing.T) {
	cfg := config.DefaultParams()
	cfg.Situation.NumberOfAgents = 4
	cfg.Unit.FlockingType = 0
	init := ringInit(4, cfg.Flocking.R0*2)

	sched, err := scheduler.New(cfg, init, nil, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := sched.Tick(); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
	}

	if err := sched.Truth().Validate(); err != nil {
		t.Errorf("state became invalid after ticking: %v", err)
	}
}

func TestTickParallelProducesFiniteState(t *testing.T) {
	cfg := config.DefaultParams()
	cfg.Situation.NumberOfAgents = 6
	cfg.Unit.FlockingType = 4
	init := ringInit(6, cfg.Flocking.R0*2)

	sched, err := scheduler.New(cfg, init, nil, 7)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := sched.TickParallel(); err != nil {
			t.Fatalf("TickParallel %d: %v", i, err)
		}
	}
	if err := sched.Truth().Validate(); err != nil {
		t.Errorf("state became invalid after parallel ticking: %v", err)
	}
}

func TestSingleAgentNeverErrors(t *testing.T) {
	cfg := config.DefaultParams()
	cfg.Situation.NumberOfAgents = 1
	init := phase.New(1, phase.NumInnerStates)

	sched, err := scheduler.New(cfg, init, nil, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := sched.Tick(); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
	}
}

func TestRunawayAgentGetsReset(t *testing.T) {
	cfg := config.DefaultParams()
	cfg.Situation.NumberOfAgents = 2
	cfg.Flocking.ArenaRadius = 1000
	init := phase.New(2, phase.NumInnerStates)
	init.Coordinates[0] = geom.Vec3{0, 0, 0}
	init.Coordinates[1] = geom.Vec3{10000, 0, 0}

	sched, err := scheduler.New(cfg, init, nil, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := sched.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	pos := sched.Truth().Coordinates[1]
	if geom.Dist(pos, geom.Zero) > cfg.Flocking.ArenaRadius*2 {
		t.Errorf("runaway agent should have been reset inside the arena, got %v", pos)
	}
}
