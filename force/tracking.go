package force

import (
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/phase"
)

// TargetTracking implements C6.h: a pursuit term toward target whose
// magnitude ramps up linearly with distance within r0 and saturates at
// vFlock beyond it.
func TargetTracking(self, target geom.Vec3, vFlock, r0 float64) geom.Vec3 {
	d := geom.Dist(self, target)
	if d < 1e-9 {
		return geom.Zero
	}
	mag := vFlock
	if r0 > 1e-9 {
		mag = geom.Clip(vFlock*d/r0, 0, vFlock)
	}
	return target.Sub(self).Unit().Scale(mag)
}

// TargetTrackingSimple pursues target directly at speed vFlock, without
// distance shaping, useful for strategies that want a
// constant-speed approach.
func TargetTrackingSimple(self, target geom.Vec3, vFlock float64) geom.Vec3 {
	dir := target.Sub(self)
	if dir.Norm() < 1e-9 {
		return geom.Zero
	}
	return dir.Unit().Scale(vFlock)
}

// TrackingOlfati pursues a target mediated by the swarm centre of mass:
// self is pulled toward (target - centreOfMass + self), i.e. it tracks
// the target while preserving its offset from the flock's centroid.
func TrackingOlfati(self, target, centreOfMass geom.Vec3, vFlock float64) geom.Vec3 {
	virtualTarget := target.Sub(centreOfMass).Add(self)
	return TargetTrackingSimple(self, virtualTarget, vFlock)
}

// ChooseLeader implements the leader-follow tie-break: the neighbour (or
// self) with the highest InnerStates[.][IdxLeaderRank] is the leader,
// ties broken by lowest agent ID. Returns the leader's local slot index,
// or 0 (self) if no neighbour outranks self's own rank.
func ChooseLeader(ego phase.Phase) int {
	best := 0
	bestRank := ego.InnerStates[0][phase.IdxLeaderRank]
	bestID := ego.RealIDs[0]
	neighbours(ego, func(slot int) {
		rank := ego.InnerStates[slot][phase.IdxLeaderRank]
		id := ego.RealIDs[slot]
		if rank > bestRank || (rank == bestRank && id < bestID) {
			best = slot
			bestRank = rank
			bestID = id
		}
	})
	return best
}

// LeaderFollow implements the ILF term: a target tracker pointed at the
// chosen leader's position, saturated at vFlock. If self is its own
// leader the term is zero (nothing to follow).
func LeaderFollow(ego phase.Phase, vFlock float64) geom.Vec3 {
	leaderSlot := ChooseLeader(ego)
	if leaderSlot == 0 {
		return geom.Zero
	}
	return TargetTrackingSimple(ego.Coordinates[0], ego.Coordinates[leaderSlot], vFlock)
}

// CentreOfMass returns the centroid of self and all selected neighbours in
// the ego-view, a cheap local proxy for the swarm centroid.
func CentreOfMass(ego phase.Phase) geom.Vec3 {
	sum := ego.Coordinates[0]
	n := 1.0
	neighbours(ego, func(slot int) {
		sum = sum.Add(ego.Coordinates[slot])
		n++
	})
	return sum.Scale(1 / n)
}
