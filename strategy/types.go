package strategy

import (
	"github.com/flocksim/swarmcore/force"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/phase"
)

// strategy0 is the Jaccard-weighted pressure flock: pressure repulsion,
// Jaccard-boosted attraction, friction and leader-follow for an ordinary
// agent; a leader with a target switches to self-propulsion, pressure and
// direct target tracking.
func strategy0(ego phase.Phase, p config.FlockingParams, u config.UnitParams, ctx Context, hasTargetLeader bool) geom.Vec3 {
	if hasTargetLeader {
		sum := force.SelfPropulsion(ego.Velocities[0], p.VFlock)
		sum = sum.Add(force.PressureRepulsion(ego, p))
		sum = sum.Add(force.TargetTracking(ego.Coordinates[0], ctx.Target, p.VFlock, p.R0))
		return sum
	}
	sum := force.PressureRepulsion(ego, p)
	sum = sum.Add(force.AttractionLin(ego, p))
	sum = sum.Add(force.FrictionLinSqrt(ego, p, u))
	sum = sum.Add(force.LeaderFollow(ego, p.VFlock))
	return sum
}

// strategy1 is the velocity-alignment flock: an adjacency potential
// repulsion, VAT-style attraction (no Jaccard gate), friction and
// leader-follow; a leader with a target switches to self-propulsion,
// plain repulsion and direct target tracking.
func strategy1(ego phase.Phase, p config.FlockingParams, u config.UnitParams, ctx Context, hasTargetLeader bool) geom.Vec3 {
	if hasTargetLeader {
		sum := force.SelfPropulsion(ego.Velocities[0], p.VFlock)
		sum = sum.Add(force.RepulsionLin(ego, p))
		sum = sum.Add(force.TargetTracking(ego.Coordinates[0], ctx.Target, p.VFlock, p.R0))
		return sum
	}
	sum := force.PotentialBased(ego, ctx.Potential)
	sum = sum.Add(force.AttractionVAT(ego, p))
	sum = sum.Add(force.FrictionLinSqrt(ego, p, u))
	sum = sum.Add(force.LeaderFollow(ego, p.VFlock))
	return sum
}

// strategy2 is the Olfati-Saber smooth-potential flock: a lightly scaled
// gradient-based term plus velocity alignment and leader-follow; a leader
// with a target drops alignment and switches to self-propulsion plus
// direct target tracking.
func strategy2(ego phase.Phase, p config.FlockingParams, u config.UnitParams, ctx Context, hasTargetLeader bool) geom.Vec3 {
	const gradientScale = 0.01
	if hasTargetLeader {
		sum := force.SelfPropulsion(ego.Velocities[0], p.VFlock)
		sum = sum.Add(force.GradientBased(ego, p, ctx.GradientRSense))
		sum = sum.Scale(gradientScale)
		sum = sum.Add(force.TargetTracking(ego.Coordinates[0], ctx.Target, p.VFlock, p.R0))
		return sum
	}
	sum := force.GradientBased(ego, p, ctx.GradientRSense).Add(force.AlignmentOlfati(ego, p, ctx.RSense)).Scale(gradientScale)
	sum = sum.Add(force.LeaderFollow(ego, p.VFlock))
	return sum
}

// strategy3 is the spatial-coverage flock: plain repulsion, direct target
// tracking and friction toward whichever target CoverageState currently
// holds, regardless of leader/target role (every agent tracks the same
// current waypoint).
func strategy3(ego phase.Phase, p config.FlockingParams, u config.UnitParams, ctx Context) geom.Vec3 {
	sum := force.RepulsionLin(ego, p)
	sum = sum.Add(force.TargetTracking(ego.Coordinates[0], ctx.Target, p.VFlock, p.R0))
	sum = sum.Add(force.FrictionLinSqrt(ego, p, u))
	return sum
}

// strategy4 is the plain pressure flock, identical whether or not self is
// a leader with a target: pressure repulsion, attraction, friction and
// leader-follow.
func strategy4(ego phase.Phase, p config.FlockingParams, u config.UnitParams, ctx Context) geom.Vec3 {
	sum := force.PressureRepulsion(ego, p)
	sum = sum.Add(force.AttractionLin(ego, p))
	sum = sum.Add(force.FrictionLinSqrt(ego, p, u))
	sum = sum.Add(force.LeaderFollow(ego, p.VFlock))
	return sum
}

// strategy5 is the Jaccard-weighted repulsion flock: plain repulsion,
// Jaccard-boosted attraction, friction and leader-follow for an ordinary
// agent; a leader with a target switches to self-propulsion, plain
// repulsion and direct target tracking.
func strategy5(ego phase.Phase, p config.FlockingParams, u config.UnitParams, ctx Context, hasTargetLeader bool) geom.Vec3 {
	if hasTargetLeader {
		sum := force.SelfPropulsion(ego.Velocities[0], p.VFlock)
		sum = sum.Add(force.RepulsionLin(ego, p))
		sum = sum.Add(force.TargetTracking(ego.Coordinates[0], ctx.Target, p.VFlock, p.R0))
		return sum
	}
	sum := force.RepulsionLin(ego, p)
	sum = sum.Add(force.AttractionLin(ego, p))
	sum = sum.Add(force.FrictionLinSqrt(ego, p, u))
	sum = sum.Add(force.LeaderFollow(ego, p.VFlock))
	return sum
}

// strategy6 is the connectivity-preserving flock: the adjacency potential,
// the global connectivity controller driven by the cached Fiedler pair,
// and direct target tracking, identical for leaders and followers.
func strategy6(ego phase.Phase, p config.FlockingParams, ctx Context) geom.Vec3 {
	sum := force.PotentialBased(ego, ctx.Potential)
	sum = sum.Add(force.GlobalConnectivityController(ego, ctx.Connectivity, ctx.FiedlerIdx, ctx.FiedlerIdxOf))
	sum = sum.Add(force.TargetTracking(ego.Coordinates[0], ctx.Target, p.VFlock, p.R0))
	return sum
}
