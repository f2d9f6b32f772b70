// Package force implements the catalogue of pairwise interaction terms
// summed by the strategy dispatcher into a preferred velocity. Each term
// is a pure function of one agent's ego-view and the flocking parameter
// block.
package force

import (
	"math"

	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/phase"
)

// neighbours iterates the non-sentinel neighbour slots of an ego-view,
// calling fn with the neighbour's local slot index.
func neighbours(ego phase.Phase, fn func(slot int)) {
	for slot := 1; slot < len(ego.RealIDs); slot++ {
		if ego.RealIDs[slot] == phase.SentinelID {
			continue
		}
		fn(slot)
	}
}

// jaccardOf returns the signed Jaccard value stashed for neighbour slot by
// the ego-view builder.
func jaccardOf(ego phase.Phase, slot int) float64 {
	return ego.InnerStates[slot][phase.IdxReserved]
}

// RepulsionLin implements C6.a: for each neighbour closer than R0, push
// self away along the line from the neighbour to self, scaled by the
// clipped-linear shaping function.
func RepulsionLin(ego phase.Phase, p config.FlockingParams) geom.Vec3 {
	self := ego.Coordinates[0]
	sum := geom.Zero
	count := 0
	neighbours(ego, func(slot int) {
		n := ego.Coordinates[slot]
		d := geom.Dist(self, n)
		if d >= p.R0 || d < 1e-9 {
			return
		}
		mag := geom.SigmoidLin(d, p.SlopeRep, p.VRep, p.R0)
		sum = sum.Add(self.Sub(n).Unit().Scale(mag))
		count++
	})
	if count > 1 {
		sum = sum.Scale(1 / float64(count))
	}
	return sum
}

// AttractionLin implements C6.b: attract to neighbours farther than R0
// that are not already mutual (Jaccard <= 0), scaled by the
// d*ln(d) argument and boosted by (1+J).
func AttractionLin(ego phase.Phase, p config.FlockingParams) geom.Vec3 {
	self := ego.Coordinates[0]
	sum := geom.Zero
	neighbours(ego, func(slot int) {
		n := ego.Coordinates[slot]
		d := geom.Dist(self, n)
		j := jaccardOf(ego, slot)
		if d <= p.R0 || j > 0 {
			return
		}
		arg := d
		if d > 1 {
			arg = d * math.Log(d)
		}
		// Mirrored kernel: clip(slope*(arg-R0), 0, VRep) grows with distance.
		mag := geom.SigmoidLin(-arg, p.SlopeAtt, p.VRep, -p.R0) * (1 + j)
		sum = sum.Add(n.Sub(self).Unit().Scale(mag))
	})
	return sum
}

// AttractionVAT implements C6.c: like AttractionLin but without the
// Jaccard gate, using a linear (not d*ln(d)) argument.
func AttractionVAT(ego phase.Phase, p config.FlockingParams) geom.Vec3 {
	self := ego.Coordinates[0]
	sum := geom.Zero
	neighbours(ego, func(slot int) {
		n := ego.Coordinates[slot]
		d := geom.Dist(self, n)
		if d <= p.R0 {
			return
		}
		mag := geom.SigmoidLin(-d, p.SlopeAtt, p.VRep, -p.R0)
		sum = sum.Add(n.Sub(self).Unit().Scale(mag))
	})
	return sum
}

// FrictionLinSqrt implements C6.d: damps relative velocity beyond the
// linear-then-sqrt allowed difference, toward the neighbour.
func FrictionLinSqrt(ego phase.Phase, p config.FlockingParams, u config.UnitParams) geom.Vec3 {
	self := ego.Coordinates[0]
	selfV := ego.Velocities[0]
	sum := geom.Zero
	neighbours(ego, func(slot int) {
		n := ego.Coordinates[slot]
		d := geom.Dist(self, n)
		dv := selfV.Sub(ego.Velocities[slot])
		dvMax := math.Max(p.VFrict, geom.VelDecayLinSqrt(d, p.SlopeFrict, u.AMax, p.R0+p.R0OffsetFrict))
		dvNorm := dv.Norm()
		if dvNorm <= dvMax {
			return
		}
		sum = sum.Add(n.Sub(self).Unit().Scale(p.CFrict * (dvNorm - dvMax)))
	})
	return sum
}

// PressureRepulsion implements C6.e: push away from neighbours within
// 2*R0 scaled by the neighbour's accumulated pressure and self speed.
func PressureRepulsion(ego phase.Phase, p config.FlockingParams) geom.Vec3 {
	self := ego.Coordinates[0]
	selfSpeed := ego.Velocities[0].Norm()
	sum := geom.Zero
	neighbours(ego, func(slot int) {
		n := ego.Coordinates[slot]
		d := geom.Dist(self, n)
		if d >= 2*p.R0 || d < 1e-9 {
			return
		}
		pressure := ego.Pressure[slot]
		mag := geom.Clip(p.KPress*pressure*selfSpeed, 0, p.VRep)
		sum = sum.Add(self.Sub(n).Unit().Scale(mag))
	})
	return sum
}
