package strategy_test

import (
	"math"
	"testing"

	"github.com/flocksim/swarmcore/collision"
	"github.com/flocksim/swarmcore/force"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/phase"
	"github.com/flocksim/swarmcore/strategy"
)

func singleAgentEgo(pos geom.Vec3) phase.Phase {
	p := phase.New(1, phase.NumInnerStates)
	p.Coordinates[0] = pos
	return p
}

func baseContext(cfg config.Params) strategy.Context {
	return strategy.Context{
		Arena:          collision.NewArena(cfg.Flocking),
		Counters:       collision.NewCounters(),
		FiedlerIdxOf:   func(int) int { return -1 },
		Connectivity:   force.ConnectivityParams{KC0: 1, Sigma0: 1, LambdaStar: cfg.Flocking.Lambda2, Theta: 1, RL: cfg.Flocking.R0 * 2},
		Potential:      force.PotentialParams{R: cfg.Flocking.R0 * 3, R1: cfg.Flocking.R0, R2: cfg.Flocking.R0 * 2, Mu1: 1, Mu2: 1},
		RSense:         cfg.Flocking.R0 * 2,
		GradientRSense: (math.Sqrt2 + 1) * cfg.Flocking.R0,
	}
}

func TestSingleAgentNoTargetSaturatesAtVFlock(t *testing.T) {
	cfg := config.DefaultParams()
	cfg.Unit.FlockingType = 0
	ego := singleAgentEgo(geom.Vec3{0, 0, 0})
	ctx := baseContext(cfg)

	v := strategy.Evaluate(ego, cfg.Flocking, cfg.Unit, ctx)
	if got := v.Norm(); got > cfg.Flocking.VFlock+1e-6 {
		t.Errorf("preferred velocity magnitude = %v, want <= VFlock = %v", got, cfg.Flocking.VFlock)
	}
}

func TestStrategy0TwoAgentsConverge(t *testing.T) {
	cfg := config.DefaultParams()
	cfg.Unit.FlockingType = 0
	ego := phase.New(2, phase.NumInnerStates)
	ego.RealIDs[0], ego.RealIDs[1] = 0, 1
	ego.Coordinates[0] = geom.Vec3{0, 0, 0}
	ego.Coordinates[1] = geom.Vec3{cfg.Flocking.R0 * 3, 0, 0}
	ctx := baseContext(cfg)

	v := strategy.Evaluate(ego, cfg.Flocking, cfg.Unit, ctx)
	if v[0] <= 0 {
		t.Errorf("a distant non-mutual neighbour should pull self toward +x, got %v", v)
	}
}

func TestLeaderWithTargetUsesTargetTracking(t *testing.T) {
	cfg := config.DefaultParams()
	cfg.Unit.FlockingType = 0
	ego := singleAgentEgo(geom.Vec3{0, 0, 0})
	ctx := baseContext(cfg)
	ctx.IsLeader = true
	ctx.HasTarget = true
	ctx.Target = geom.Vec3{cfg.Flocking.R0 * 10, 0, 0}

	v := strategy.Evaluate(ego, cfg.Flocking, cfg.Unit, ctx)
	if v[0] <= 0 {
		t.Errorf("a leader with a target ahead on +x should move toward it, got %v", v)
	}
}

func TestAllFlockingTypesProduceFiniteResult(t *testing.T) {
	cfg := config.DefaultParams()
	ego := phase.New(2, phase.NumInnerStates)
	ego.RealIDs[0], ego.RealIDs[1] = 0, 1
	ego.Coordinates[0] = geom.Vec3{0, 0, 0}
	ego.Coordinates[1] = geom.Vec3{cfg.Flocking.R0, 0, 0}
	ego.SecondEigenvector = []float64{0.1, -0.1}

	for ft := 0; ft <= 6; ft++ {
		cfg.Unit.FlockingType = ft
		ctx := baseContext(cfg)
		ctx.FiedlerIdxOf = func(slot int) int { return slot }
		v := strategy.Evaluate(ego, cfg.Flocking, cfg.Unit, ctx)
		for _, c := range v {
			if c != c { // NaN check
				t.Errorf("flocking type %d produced NaN: %v", ft, v)
			}
		}
	}
}

func TestCoverageStateInflatesAndAdvances(t *testing.T) {
	targets := []geom.Vec3{{0, 0, 0}, {1000, 0, 0}}
	cs := strategy.NewCoverageState(targets, 2, 50, 4000, 15000, 2)

	truth := phase.New(2, phase.NumInnerStates)
	truth.Coordinates[0] = geom.Vec3{10, 0, 0}
	truth.Coordinates[1] = geom.Vec3{20, 0, 0}

	if r0 := cs.Tick(truth); r0 != 15000 {
		t.Errorf("both agents near target should inflate R0, got %v", r0)
	}
	if r0 := cs.Tick(truth); r0 != 4000 {
		t.Errorf("after TicksPerTarget ticks inflated, R0 should reset and advance, got %v", r0)
	}
	if got := cs.CurrentTarget(); got != targets[1] {
		t.Errorf("should have advanced to the next target, got %v", got)
	}
}

func TestCoverageStateStaysOnTargetWhenFewAgentsNear(t *testing.T) {
	targets := []geom.Vec3{{0, 0, 0}, {1000, 0, 0}}
	cs := strategy.NewCoverageState(targets, 2, 50, 4000, 15000, 2)

	truth := phase.New(2, phase.NumInnerStates)
	truth.Coordinates[0] = geom.Vec3{10, 0, 0}
	truth.Coordinates[1] = geom.Vec3{5000, 0, 0}

	if r0 := cs.Tick(truth); r0 != 4000 {
		t.Errorf("only one agent near target should not inflate R0, got %v", r0)
	}
	if got := cs.CurrentTarget(); got != targets[0] {
		t.Errorf("should not have advanced target, got %v", got)
	}
}
