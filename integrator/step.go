package integrator

import (
	"math"

	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/internal/randstream"
)

// Result is the outcome of one agent's integration step.
type Result struct {
	Velocity geom.Vec3
	Position geom.Vec3
}

// Step advances one agent's velocity toward ws.PreferredVelocity with a
// first-order filter (separate time constants for XY and Z), clamps the
// resulting acceleration to aMax, adds axis-separable Gaussian outer
// noise, and integrates position forward by dt.
func Step(ws *Workspace, position, velocity geom.Vec3, dt float64, u config.UnitParams, stream *randstream.Stream, dim int) Result {
	vNext := geom.Vec3{
		velocity[0] + (dt/u.TauPIDXY)*(ws.PreferredVelocity[0]-ws.PreviousVelocity[0]),
		velocity[1] + (dt/u.TauPIDXY)*(ws.PreferredVelocity[1]-ws.PreviousVelocity[1]),
		velocity[2] + (dt/u.TauPIDZ)*(ws.PreferredVelocity[2]-ws.PreviousVelocity[2]),
	}

	dv := vNext.Sub(velocity)
	a := dv.Norm() / dt
	if a > u.AMax && dv.Norm() > 1e-12 {
		vNext = velocity.Add(dv.Unit().Scale(u.AMax * dt))
	}

	noiseXY := math.Sqrt(2*u.SigmaOuterXY*dt) * stream.Gaussian(0, 1)
	noiseXY2 := math.Sqrt(2*u.SigmaOuterXY*dt) * stream.Gaussian(0, 1)
	noiseZ := math.Sqrt(2*u.SigmaOuterZ*dt) * stream.Gaussian(0, 1)
	vNext = vNext.Add(geom.Vec3{noiseXY, noiseXY2, noiseZ})

	if dim == 2 {
		vNext = vNext.Flatten()
	}

	position = position.Add(vNext.Scale(dt))
	if dim == 2 {
		position = position.Flatten()
	}

	ws.PreviousVelocity = vNext
	return Result{Velocity: vNext, Position: position}
}

// ClampSpeed enforces the hard velocity ceiling vMax, returning v scaled
// down to magnitude vMax if it exceeds it.
func ClampSpeed(v geom.Vec3, vMax float64) geom.Vec3 {
	n := v.Norm()
	if n <= vMax || n < 1e-12 {
		return v
	}
	return v.Scale(vMax / n)
}
