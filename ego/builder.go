// Package ego builds, for one agent, a Phase-shaped local view of the
// swarm from the global true state: delayed and noise-perturbed neighbour
// positions, a selected neighbour set, self pressure and Jaccard
// similarity to each neighbour.
package ego

import (
	"fmt"
	"math"

	"github.com/flocksim/swarmcore/cosim"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/internal/randstream"
	"github.com/flocksim/swarmcore/phase"
	"github.com/flocksim/swarmcore/radio"
)

// GPSState is one agent's pair of AR(1) noise filters.
type GPSState struct {
	XY *AR1Filter
	Z  *AR1Filter
}

// NewGPSState creates a fresh pair of filters from the unit parameters.
func NewGPSState(u config.UnitParams) *GPSState {
	return &GPSState{
		XY: NewAR1Filter(u.SigmaGPSXY, u.TGPS),
		Z:  NewAR1Filter(u.SigmaGPSZ, u.TGPS),
	}
}

// Builder holds the long-lived per-agent state (GPS filters) needed across
// ticks; a new ego.Phase is produced fresh every tick by Build.
type Builder struct {
	gps map[int]*GPSState
}

// NewBuilder creates a Builder for a swarm of n agents.
func NewBuilder(n int, u config.UnitParams) *Builder {
	b := &Builder{gps: make(map[int]*GPSState, n)}
	for i := 0; i < n; i++ {
		b.gps[i] = NewGPSState(u)
	}
	return b
}

// ComputeGlobalNeighborSets computes the ground-truth (noiseless,
// undelayed) link powers and neighbour selection for every agent from the
// current true Phase, using obstacle occlusion. This is the "true"
// NeighSet cache stored on Phase, and is also what Jaccard
// similarity is computed against, since mutual-neighbour topology is a
// structural property of the swarm, not of any one agent's noisy
// perception of it.
func ComputeGlobalNeighborSets(truth phase.Phase, cfg config.Params, obstacles []geom.Polygon) [][]int {
	n := truth.NumberOfAgents
	hull := geom.ConvexHull(truth.Coordinates)
	candidates := obstaclesNearHull(hull, obstacles)

	out := make([][]int, n)
	for i := 0; i < n; i++ {
		powers := make(map[int]float64, n-1)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := geom.Dist(truth.Coordinates[i], truth.Coordinates[j])
			dObst := obstructionDepth(truth.Coordinates[i], truth.Coordinates[j], candidates)
			powers[j] = radio.ComputeReceivedPower(
				radio.CommunicationType(cfg.Unit.CommunicationType),
				d, dObst, cfg.Unit.RefDistance, cfg.Unit.TransmitPower,
				cfg.Unit.Gamma, cfg.Unit.GammaObst, cfg.Unit.Freq,
			)
		}
		out[i] = radio.DefineNeighborhood(i, powers, cfg.Unit.SensitivityThresh, cfg.Flocking.SizeNeighbourhood)
	}
	return out
}

func obstaclesNearHull(hull []geom.Vec3, obstacles []geom.Polygon) []geom.Polygon {
	if len(hull) < 3 {
		return obstacles
	}
	hullPoly := geom.NewPolygon(hull)
	var out []geom.Polygon
	for _, o := range obstacles {
		if geom.PointInPolygon(o.Center, hullPoly) {
			out = append(out, o)
			continue
		}
		for _, v := range o.Vertices {
			if geom.PointInPolygon(v, hullPoly) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// obstructionDepth returns the radio model's d_obst for line-of-sight
// segment [a,b]: half the segment's length for each candidate obstacle it
// intersects, a proxy rather than the exact length lying inside obstacles.
func obstructionDepth(a, b geom.Vec3, obstacles []geom.Polygon) float64 {
	depth := 0.0
	for _, o := range obstacles {
		if geom.SegmentIntersectsPolygon(a, b, o) {
			depth += geom.Dist(a, b) * 0.5 // half the segment as a simple, bounded attenuation proxy
		}
	}
	return depth
}

// Build produces agent selfID's ego-view at tick, given the true history
// ring, the ground-truth neighbour-set cache for this tick (from
// ComputeGlobalNeighborSets), the obstacle set, and this agent's private
// random stream. If oracle is non-nil, co-simulation mode is used: GPS
// noise, local link-power computation and neighbour selection are skipped
// in favour of the oracle's values.
func (b *Builder) Build(
	selfID int,
	truth phase.Phase,
	hist interface {
		ReadBack(stepsBack int) (phase.Phase, bool)
	},
	globalNeighSets [][]int,
	obstacles []geom.Polygon,
	cfg config.Params,
	stream *randstream.Stream,
	oracle cosim.RadioOracle,
) (phase.Phase, error) {
	n := truth.NumberOfAgents
	delaySteps := int(math.Round(cfg.Unit.TDelay / cfg.Situation.DeltaT))
	delayed, ok := hist.ReadBack(delaySteps)
	if !ok {
		delayed = truth
	}

	out := phase.New(n, truth.NumberOfInnerStates)

	// Slot 0 is always self.
	out.RealIDs[0] = selfID
	out.Coordinates[0] = truth.Coordinates[selfID]
	out.Velocities[0] = truth.Velocities[selfID]
	copy(out.InnerStates[0], truth.InnerStates[selfID])

	gps, ok := b.gps[selfID]
	if !ok {
		gps = NewGPSState(cfg.Unit)
		b.gps[selfID] = gps
	}
	var noise geom.Vec3
	if oracle == nil {
		biasXY := gps.XY.Advance(cfg.Situation.DeltaT, stream)
		biasZ := gps.Z.Advance(cfg.Situation.DeltaT, stream)
		noise = geom.Vec3{biasXY, biasXY, biasZ}
	}

	slot := 1
	others := make([]int, 0, n-1)
	for id := 0; id < n; id++ {
		if id == selfID {
			continue
		}
		others = append(others, id)
	}

	var neighbours []int
	var err error
	if oracle != nil {
		neighbours, err = oracle.NeighborsFor(selfID)
		if err != nil {
			return phase.Phase{}, fmt.Errorf("ego: oracle neighbours: %w", err)
		}
		if len(neighbours) > cfg.Flocking.SizeNeighbourhood {
			neighbours = neighbours[:cfg.Flocking.SizeNeighbourhood]
		}
	} else {
		hull := geom.ConvexHull(truth.Coordinates)
		candidates := obstaclesNearHull(hull, obstacles)
		powers := make(map[int]float64, len(others))
		for _, id := range others {
			pos := delayed.Coordinates[id]
			d := geom.Dist(truth.Coordinates[selfID], pos)
			dObst := obstructionDepth(truth.Coordinates[selfID], pos, candidates)
			powers[id] = radio.ComputeReceivedPower(
				radio.CommunicationType(cfg.Unit.CommunicationType),
				d, dObst, cfg.Unit.RefDistance, cfg.Unit.TransmitPower,
				cfg.Unit.Gamma, cfg.Unit.GammaObst, cfg.Unit.Freq,
			)
		}
		neighbours = radio.DefineNeighborhood(selfID, powers, cfg.Unit.SensitivityThresh, cfg.Flocking.SizeNeighbourhood)
	}

	neighborPositions := make([]geom.Vec3, 0, len(neighbours))
	for _, id := range neighbours {
		if id < 0 {
			continue
		}
		out.RealIDs[slot] = id
		out.Coordinates[slot] = delayed.Coordinates[id].Add(noise)
		out.Velocities[slot] = delayed.Velocities[id]
		copy(out.InnerStates[slot], delayed.InnerStates[id])
		if id < len(delayed.Pressure) {
			out.Pressure[slot] = delayed.Pressure[id]
		}
		neighborPositions = append(neighborPositions, out.Coordinates[slot])
		slot++
	}
	// Trailing unused slots keep RealIDs at the sentinel.
	for ; slot < n; slot++ {
		out.RealIDs[slot] = phase.SentinelID
	}

	out.NeighSet[0] = append([]int(nil), neighbours...)
	out.Pressure[0] = ComputePressure(out.Coordinates[0], neighborPositions, cfg.Flocking.R0)

	lookup := func(id int) []int {
		if id < 0 || id >= len(globalNeighSets) {
			return nil
		}
		return globalNeighSets[id]
	}
	for i, id := range neighbours {
		if id < 0 {
			continue
		}
		j := JaccardSimilarity(selfID, id, lookup)
		// Store signed Jaccard against neighbour i in the ego-view's
		// diagnostic slot for that slot index, reusing InnerStates'
		// reserved column so force terms can read it without a parallel
		// array threaded through every function signature.
		out.InnerStates[i+1][phase.IdxReserved] = j
	}

	if cfg.Flocking.Dim == 2 {
		out.Flatten2D()
	}

	return out, nil
}
