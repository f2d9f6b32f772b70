package integrator_test

import (
	"testing"

	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/integrator"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/internal/randstream"
)

func TestStepClampsAcceleration(t *testing.T) {
	u := config.DefaultParams().Unit
	u.AMax = 1
	u.SigmaOuterXY, u.SigmaOuterZ = 0, 0
	ws := integrator.NewWorkspace()
	ws.PreferredVelocity = geom.Vec3{10000, 0, 0}
	stream := randstream.New(1, 0)

	res := integrator.Step(ws, geom.Zero, geom.Zero, 0.1, u, stream, 2)
	dv := res.Velocity.Sub(geom.Zero)
	a := dv.Norm() / 0.1
	if a > u.AMax+1e-6 {
		t.Errorf("acceleration = %v, want <= %v", a, u.AMax)
	}
}

func TestStepZerosZIn2D(t *testing.T) {
	u := config.DefaultParams().Unit
	ws := integrator.NewWorkspace()
	ws.PreferredVelocity = geom.Vec3{0, 0, 500}
	stream := randstream.New(2, 0)
	res := integrator.Step(ws, geom.Zero, geom.Zero, 0.1, u, stream, 2)
	if res.Velocity[2] != 0 || res.Position[2] != 0 {
		t.Errorf("2D mode should zero the z component, got velocity=%v position=%v", res.Velocity, res.Position)
	}
}

func TestClampSpeedEnforcesCeiling(t *testing.T) {
	v := geom.Vec3{1000, 0, 0}
	clamped := integrator.ClampSpeed(v, 500)
	if clamped.Norm() > 500+1e-9 {
		t.Errorf("ClampSpeed should enforce the ceiling, got %v", clamped.Norm())
	}
}

func TestClampSpeedNoOpBelowCeiling(t *testing.T) {
	v := geom.Vec3{10, 0, 0}
	if clamped := integrator.ClampSpeed(v, 500); clamped != v {
		t.Errorf("below the ceiling, ClampSpeed should not modify v, got %v", clamped)
	}
}

func TestWorkspaceGPSRecomputeCadence(t *testing.T) {
	ws := integrator.NewWorkspace()
	if ws.ShouldRecomputePreferred(0.05, 0.1) {
		t.Error("should not recompute before tGPS elapses")
	}
	if !ws.ShouldRecomputePreferred(0.05, 0.1) {
		t.Error("should recompute once tGPS has elapsed")
	}
}
