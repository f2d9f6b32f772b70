// Package integrator drives real agent velocity toward a preferred
// velocity with a first-order filter, clamps acceleration, injects outer
// diffusive noise, and integrates position.
package integrator

import "github.com/flocksim/swarmcore/geom"

// Workspace holds the per-tick scratch state for one agent's integration
// step: the preferred velocity computed at the last GPS tick, and the
// previous tick's actual velocity. Callers own one Workspace per agent;
// the scheduler keeps one per agent in both its sequential and parallel
// variants, so no locking is needed across agents.
type Workspace struct {
	PreferredVelocity geom.Vec3
	PreviousVelocity  geom.Vec3
	elapsedSinceGPS   float64
}

// NewWorkspace creates a zeroed Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// ShouldRecomputePreferred reports whether enough simulated time has
// passed since the last GPS tick to recompute the preferred velocity, and
// resets the internal timer if so.
func (w *Workspace) ShouldRecomputePreferred(dt, tGPS float64) bool {
	w.elapsedSinceGPS += dt
	if tGPS <= 0 || w.elapsedSinceGPS+1e-12 >= tGPS {
		w.elapsedSinceGPS = 0
		return true
	}
	return false
}
