package geom_test

import (
	"math"
	"testing"

	"github.com/flocksim/swarmcore/geom"
)

func TestSigmoidLin(t *testing.T) {
	tests := []struct {
		d, slope, vMax, r, want float64
	}{
		{0, 1, 10, 5, 5},    // clipped by r-d, within vMax
		{10, 1, 10, 5, 0},   // beyond r, clipped to 0
		{-100, 1, 10, 5, 10}, // would be huge, clipped to vMax
	}
	for _, tt := range tests {
		if got := geom.SigmoidLin(tt.d, tt.slope, tt.vMax, tt.r); got != tt.want {
			t.Errorf("SigmoidLin(%v,%v,%v,%v) = %v, want %v", tt.d, tt.slope, tt.vMax, tt.r, got, tt.want)
		}
	}
}

func TestVelDecayLinSqrtMonotone(t *testing.T) {
	prev := 0.0
	for d := 0.0; d <= 20; d += 0.5 {
		v := geom.VelDecayLinSqrt(d, 1.0, 2.0, 5.0)
		if v < prev-1e-9 {
			t.Fatalf("VelDecayLinSqrt not monotone at d=%v: %v < %v", d, v, prev)
		}
		prev = v
	}
	if v := geom.VelDecayLinSqrt(3, 1, 2, 5); v != 0 {
		t.Errorf("below reference distance should be 0, got %v", v)
	}
}

func TestSigmaNormAtOrigin(t *testing.T) {
	if got := geom.SigmaNorm(geom.Zero, 0.1); math.Abs(got) > 1e-9 {
		t.Errorf("SigmaNorm(0) = %v, want 0", got)
	}
}

func TestBumpFunction(t *testing.T) {
	if got := geom.BumpFunction(0.1, 0.2); got != 1 {
		t.Errorf("BumpFunction below h = %v, want 1", got)
	}
	if got := geom.BumpFunction(1.5, 0.2); got != 0 {
		t.Errorf("BumpFunction above 1 = %v, want 0", got)
	}
	mid := geom.BumpFunction(0.6, 0.2)
	if mid <= 0 || mid >= 1 {
		t.Errorf("BumpFunction in taper region out of (0,1): %v", mid)
	}
}
