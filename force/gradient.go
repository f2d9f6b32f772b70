package force

import (
	"math"

	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/phase"
)

// GradientBased implements C6.f: the Olfati-Saber smooth potential
// gradient between self and each neighbour, built from the sigma-norm and
// the action function evaluated at sigma(d) - sigma(R0). rSense is the
// (larger) sensing radius the bump function saturates over; it is a
// parameter independent of R0, not a copy of it (the active call site
// passes R0 as the action-function zero-crossing and (sqrt(2)+1)*R0 as
// rSense).
func GradientBased(ego phase.Phase, p config.FlockingParams, rSense float64) geom.Vec3 {
	self := ego.Coordinates[0]
	sigmaR0 := geom.SigmaNorm(geom.Vec3{p.R0, 0, 0}, p.Epsilon)
	sigmaSense := geom.SigmaNorm(geom.Vec3{rSense, 0, 0}, p.Epsilon)
	sum := geom.Zero
	neighbours(ego, func(slot int) {
		diff := ego.Coordinates[slot].Sub(self)
		sigmaD := geom.SigmaNorm(diff, p.Epsilon)
		phi := geom.BumpFunction(sigmaD/sigmaSense, p.HBump) * geom.ActionFunction(sigmaD-sigmaR0, p.AActionFunction, p.BActionFunction)
		dir := geom.SigmaGrad(diff, p.Epsilon)
		sum = sum.Add(dir.Scale(phi))
	})
	return sum
}

// AlignmentOlfati implements C6.g: weight neighbour velocity differences
// by the bump function of sigma(d)/sigma(r_sense), pulling self velocity
// toward the bump-weighted neighbour average.
func AlignmentOlfati(ego phase.Phase, p config.FlockingParams, rSense float64) geom.Vec3 {
	self := ego.Coordinates[0]
	selfV := ego.Velocities[0]
	sigmaSense := geom.SigmaNorm(geom.Vec3{rSense, 0, 0}, p.Epsilon)
	if sigmaSense < 1e-12 {
		return geom.Zero
	}
	sum := geom.Zero
	neighbours(ego, func(slot int) {
		diff := ego.Coordinates[slot].Sub(self)
		sigmaD := geom.SigmaNorm(diff, p.Epsilon)
		w := geom.BumpFunction(sigmaD/sigmaSense, p.HBump)
		if w <= 0 {
			return
		}
		dv := ego.Velocities[slot].Sub(selfV)
		sum = sum.Add(dv.Scale(w))
	})
	return sum
}

// adjacencyWeight is the smooth edge weight a_ij used by PotentialBased
// and the connectivity controller: 1 within r1, a cosine taper between r1
// and r2, 0 beyond r2.
func adjacencyWeight(d, r1, r2 float64) float64 {
	switch {
	case d <= r1:
		return 1
	case d >= r2:
		return 0
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(d-r1)/(r2-r1)))
	}
}
