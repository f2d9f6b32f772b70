// Package phase holds the global simulation snapshot and the
// delayed-observation ring buffer built on top of it.
package phase

import (
	"fmt"
	"math"

	"github.com/flocksim/swarmcore/geom"
)

// NumInnerStates is K, the width of the per-agent inner-state vector.
const NumInnerStates = 17

// Inner-state slot indices.
const (
	IdxAttractionRatio = 0
	IdxReserved        = 1
	IdxLeaderRank      = 2
	IdxDiagRepulsion   = 3
	IdxDiagAttraction  = 4
	IdxDiagAlignment   = 5
	IdxDiagObstacle    = 6
	// 7..10 reserved sub-velocity diagnostics, mirrored per axis pair.
	IdxSPPX      = 11
	IdxSPPY      = 12
	IdxAdjPotX   = 13
	IdxAdjPotY   = 14
	IdxConnCtrlX = 15
	IdxConnCtrlY = 16
)

// Sentinel values for padded neighbour slots.
const SentinelID = -1

var SentinelPower = math.Inf(-1)

// Phase is the global true state at one discrete simulation tick, or (when
// produced by the ego-view builder) an agent's local projection of it.
// Slice lengths always equal NumberOfAgents; RealIDs[0] identifies self in
// an ego-view and unused trailing slots carry SentinelID.
type Phase struct {
	NumberOfAgents      int
	NumberOfInnerStates int

	Coordinates []geom.Vec3
	Velocities  []geom.Vec3
	InnerStates [][]float64 // N x K

	RealIDs []int // local slot -> canonical agent ID; RealIDs[0] is self in an ego-view

	Pressure      []float64
	ReceivedPower [][]float64 // N x N, dBm, diagonal 0
	NeighSet      [][]int     // N x (<=SizeNeighbourhood), sentinel -1

	Laplacian         [][]float64
	SecondEigenvalue  float64
	SecondEigenvector []float64
}

// New allocates a Phase for n agents with k inner states, all slots zeroed
// and RealIDs set to the identity permutation.
func New(n, k int) Phase {
	p := Phase{
		NumberOfAgents:      n,
		NumberOfInnerStates: k,
		Coordinates:         make([]geom.Vec3, n),
		Velocities:          make([]geom.Vec3, n),
		InnerStates:         make([][]float64, n),
		RealIDs:             make([]int, n),
		Pressure:            make([]float64, n),
		ReceivedPower:       make([][]float64, n),
		NeighSet:            make([][]int, n),
		Laplacian:           make([][]float64, n),
		SecondEigenvector:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		p.InnerStates[i] = make([]float64, k)
		p.RealIDs[i] = i
		p.ReceivedPower[i] = make([]float64, n)
		p.NeighSet[i] = make([]int, 0)
		p.Laplacian[i] = make([]float64, n)
	}
	return p
}

// Clone returns a deep copy of p. The integrator mutates a clone of the
// previous phase to produce the next one, keeping the ring buffer's stored
// snapshots immutable once written.
func (p Phase) Clone() Phase {
	out := New(p.NumberOfAgents, p.NumberOfInnerStates)
	copy(out.Coordinates, p.Coordinates)
	copy(out.Velocities, p.Velocities)
	copy(out.RealIDs, p.RealIDs)
	copy(out.Pressure, p.Pressure)
	copy(out.SecondEigenvector, p.SecondEigenvector)
	out.SecondEigenvalue = p.SecondEigenvalue
	for i := range p.InnerStates {
		out.InnerStates[i] = append([]float64(nil), p.InnerStates[i]...)
	}
	for i := range p.ReceivedPower {
		out.ReceivedPower[i] = append([]float64(nil), p.ReceivedPower[i]...)
	}
	for i := range p.NeighSet {
		out.NeighSet[i] = append([]int(nil), p.NeighSet[i]...)
	}
	for i := range p.Laplacian {
		out.Laplacian[i] = append([]float64(nil), p.Laplacian[i]...)
	}
	return out
}

// Flatten2D zeroes the Z component of every coordinate and velocity.
func (p Phase) Flatten2D() {
	for i := range p.Coordinates {
		p.Coordinates[i] = p.Coordinates[i].Flatten()
		p.Velocities[i] = p.Velocities[i].Flatten()
	}
}

// Validate checks the structural invariants that must hold for any Phase
// regardless of how it was produced.
func (p Phase) Validate() error {
	n := p.NumberOfAgents
	if n < 1 {
		return fmt.Errorf("phase: NumberOfAgents must be >= 1, got %d", n)
	}
	if len(p.Coordinates) != n || len(p.Velocities) != n || len(p.InnerStates) != n || len(p.RealIDs) != n {
		return fmt.Errorf("phase: slice lengths inconsistent with NumberOfAgents=%d", n)
	}
	for i, v := range p.Coordinates {
		for _, c := range v {
			if math.IsNaN(c) {
				return fmt.Errorf("phase: NaN coordinate for agent %d", i)
			}
		}
	}
	for i, v := range p.Velocities {
		for _, c := range v {
			if math.IsNaN(c) {
				return fmt.Errorf("phase: NaN velocity for agent %d", i)
			}
		}
	}
	return nil
}
