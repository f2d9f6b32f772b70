package strategy

import (
	"sync"

	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/phase"
)

// CoverageState is the shared state machine behind strategy 3: a rotating
// list of waypoints the whole flock tracks together, inflating the
// repulsion radius once enough agents have converged on the current one
// so the flock spreads out to cover it before moving on. Callers update it
// once per tick against the global truth phase, ahead of calling Evaluate
// for each agent, and substitute the returned R0 into FlockingParams.
type CoverageState struct {
	mu             sync.Mutex
	targets        []geom.Vec3
	currentIdx     int
	ticksNear      int
	TicksPerTarget int
	NearThreshold  float64
	BaseR0         float64
	InflatedR0     float64
	MinNearCount   int
}

// NewCoverageState builds a CoverageState cycling through targets, using
// the defaults observed for spatial-coverage scenarios: an agent counts
// as near once within nearThreshold of the current target, the radius
// inflates to inflatedR0 once minNearCount agents are near, and the flock
// advances to the next target after ticksPerTarget ticks spent inflated.
func NewCoverageState(targets []geom.Vec3, ticksPerTarget int, nearThreshold, baseR0, inflatedR0 float64, minNearCount int) *CoverageState {
	return &CoverageState{
		targets:        targets,
		TicksPerTarget: ticksPerTarget,
		NearThreshold:  nearThreshold,
		BaseR0:         baseR0,
		InflatedR0:     inflatedR0,
		MinNearCount:   minNearCount,
	}
}

// CurrentTarget returns the waypoint all agents currently track.
func (cs *CoverageState) CurrentTarget() geom.Vec3 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.targets[cs.currentIdx]
}

// Tick records each agent's near-target flag in
// InnerStates[.][IdxAttractionRatio] of truth, inflates R0 once
// MinNearCount agents are near, advances to the next target once
// TicksPerTarget ticks have been spent inflated, and returns the R0
// value strategy 3 should use this tick.
func (cs *CoverageState) Tick(truth phase.Phase) float64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	target := cs.targets[cs.currentIdx]
	nearCount := 0
	for i, pos := range truth.Coordinates {
		if geom.Dist(pos, target) <= cs.NearThreshold {
			truth.InnerStates[i][phase.IdxAttractionRatio] = 1
			nearCount++
		} else {
			truth.InnerStates[i][phase.IdxAttractionRatio] = 0
		}
	}

	r0 := cs.BaseR0
	if nearCount >= cs.MinNearCount {
		r0 = cs.InflatedR0
		cs.ticksNear++
	} else {
		cs.ticksNear = 0
	}

	if cs.ticksNear >= cs.TicksPerTarget {
		cs.currentIdx = (cs.currentIdx + 1) % len(cs.targets)
		cs.ticksNear = 0
		r0 = cs.BaseR0
		for i := range truth.InnerStates {
			truth.InnerStates[i][phase.IdxAttractionRatio] = 0
		}
	}

	return r0
}
