package force

import (
	"math"

	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/phase"
)

// PotentialParams holds the adjacency-potential shaping parameters
// (R, r1, r2, mu1, mu2) producing a zero-force well between r1 and r2.
type PotentialParams struct {
	R, R1, R2, Mu1, Mu2 float64
}

// PotentialBased implements the first half of C6.k: an adjacency
// potential with a zero-force equilibrium band between R1 and R2,
// repulsive below R1 (scaled by Mu1) and attractive above R2 (scaled by
// Mu2), weighted by the smooth edge weight over [R1,R].
func PotentialBased(ego phase.Phase, pp PotentialParams) geom.Vec3 {
	self := ego.Coordinates[0]
	sum := geom.Zero
	neighbours(ego, func(slot int) {
		n := ego.Coordinates[slot]
		d := geom.Dist(self, n)
		if d < 1e-9 || d >= pp.R {
			return
		}
		w := adjacencyWeight(d, pp.R1, pp.R)
		dir := self.Sub(n).Unit() // points away from neighbour, repulsive convention
		switch {
		case d < pp.R1:
			sum = sum.Add(dir.Scale(w * pp.Mu1 * (pp.R1 - d)))
		case d > pp.R2:
			sum = sum.Add(dir.Scale(-w * pp.Mu2 * (d - pp.R2)))
		}
		// Between R1 and R2 the potential is flat: zero force.
	})
	return sum
}

// ConnectivityParams holds the gains for GlobalConnectivityController.
type ConnectivityParams struct {
	KC0, Sigma0, LambdaStar, Theta, RL float64
}

// GlobalConnectivityController implements the second half of C6.k: uses
// the cached Fiedler pair (lambda2, v2) to pull self toward neighbours
// whose Fiedler-vector entries differ most from self's, weighted so the
// controller backs off once connectivity already exceeds the target.
func GlobalConnectivityController(ego phase.Phase, cp ConnectivityParams, selfFiedlerIdx int, fiedlerIdxOf func(slot int) int) geom.Vec3 {
	lambda2 := ego.SecondEigenvalue
	v2 := ego.SecondEigenvector
	if selfFiedlerIdx < 0 || selfFiedlerIdx >= len(v2) {
		return geom.Zero
	}
	kc := cp.KC0 * geom.Sat(cp.LambdaStar-lambda2, 0.2)
	sigma := cp.Sigma0 * geom.Sat(lambda2-cp.LambdaStar, 0.2)
	if sigma < 1e-9 {
		sigma = 1e-9
	}

	self := ego.Coordinates[0]
	sum := geom.Zero
	neighbours(ego, func(slot int) {
		fIdx := fiedlerIdxOf(slot)
		if fIdx < 0 || fIdx >= len(v2) {
			return
		}
		n := ego.Coordinates[slot]
		d := geom.Dist(self, n)
		if d >= cp.RL {
			return
		}
		aij := adjacencyWeight(d, cp.RL*0.5, cp.RL)
		dv2 := v2[selfFiedlerIdx] - v2[fIdx]
		mag := kc * aij * dv2 * dv2 * math.Exp((lambda2-cp.LambdaStar)/sigma) / (cp.Theta * cp.Theta)
		sum = sum.Add(n.Sub(self).Unit().Scale(mag))
	})
	return sum
}
