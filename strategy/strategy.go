// Package strategy selects and sums the interaction terms from force
// according to the configured flocking type, producing one agent's
// preferred velocity for the tick.
package strategy

import (
	"github.com/flocksim/swarmcore/collision"
	"github.com/flocksim/swarmcore/force"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/phase"
)

// Context carries everything a strategy term needs beyond the ego-view
// and the flat parameter block: the arena/obstacles for shilling, a
// target point (if any), and a lookup from neighbour slot to that
// neighbour's index into the cached Fiedler eigenvector.
type Context struct {
	Arena        collision.Arena
	Obstacles    []collision.Obstacle
	Counters     *collision.Counters
	Target       geom.Vec3
	HasTarget    bool
	IsLeader     bool
	FiedlerIdx   int
	FiedlerIdxOf func(slot int) int
	Connectivity force.ConnectivityParams
	Potential    force.PotentialParams
	RSense       float64
	// GradientRSense is the bump-saturation radius GradientBased uses,
	// independent of RSense (AlignmentOlfati's own sensing radius) and of
	// R0 (GradientBased's action-function zero-crossing).
	GradientRSense float64
	CutoffMode     bool // when true, saturate to VMax instead of VFlock
}

// Evaluate computes the preferred velocity for the agent whose ego-view is
// ego, under the configured flocking type (unit.FlockingType). It always
// adds the wall and obstacle shill terms, then saturates the result to
// VFlock (or VMax in cutoff mode) and zeroes z in 2D mode.
func Evaluate(ego phase.Phase, flocking config.FlockingParams, unit config.UnitParams, ctx Context) geom.Vec3 {
	sum := dispatch(ego, flocking, unit, ctx)

	sum = sum.Add(force.ShillWallLinSqrt(ego.Coordinates[0], ctx.Arena, flocking))
	sum = sum.Add(force.ShillObstacleLinSqrt(ego.Coordinates[0], ego.RealIDs[0], ctx.Obstacles, flocking, ctx.Counters))

	vCap := flocking.VFlock
	if ctx.CutoffMode {
		vCap = flocking.VMax
	}
	sum = saturate(sum, vCap)

	if flocking.Dim == 2 {
		sum = sum.Flatten()
	}
	return sum
}

func saturate(v geom.Vec3, vCap float64) geom.Vec3 {
	n := v.Norm()
	if n < 1e-12 {
		return geom.Zero
	}
	mag := geom.Clip(n, 0, vCap)
	return v.Unit().Scale(mag)
}

func dispatch(ego phase.Phase, p config.FlockingParams, u config.UnitParams, ctx Context) geom.Vec3 {
	hasTargetLeader := ctx.IsLeader && ctx.HasTarget
	switch u.FlockingType {
	case 0:
		return strategy0(ego, p, u, ctx, hasTargetLeader)
	case 1:
		return strategy1(ego, p, u, ctx, hasTargetLeader)
	case 2:
		return strategy2(ego, p, u, ctx, hasTargetLeader)
	case 3:
		return strategy3(ego, p, u, ctx)
	case 4:
		return strategy4(ego, p, u, ctx)
	case 5:
		return strategy5(ego, p, u, ctx, hasTargetLeader)
	case 6:
		return strategy6(ego, p, ctx)
	default:
		return geom.Zero
	}
}
