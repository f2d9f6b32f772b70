package force

import "github.com/flocksim/swarmcore/geom"

// SelfPropulsion implements the constant-speed self-propulsion term used
// by the leader branches of several strategies: it holds self's current
// heading and pushes it at vFlock, so a leader with no other term keeps
// moving rather than coasting to a stop between target updates. If self
// is nearly stationary, heading defaults to the +X axis.
func SelfPropulsion(velocity geom.Vec3, vFlock float64) geom.Vec3 {
	if velocity.Norm() < 1e-9 {
		return geom.Vec3{1, 0, 0}.Scale(vFlock)
	}
	return velocity.Unit().Scale(vFlock)
}
