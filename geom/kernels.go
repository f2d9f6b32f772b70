package geom

import "math"

// SigmoidLin is the clipped-linear shaping function shared by the
// repulsion and attraction force terms:
//
//	SigmoidLin(d, slope, vMax, r) = clip(slope*(r-d), 0, vMax)
func SigmoidLin(d, slope, vMax, r float64) float64 {
	return Clip(slope*(r-d), 0, vMax)
}

// VelDecayLinSqrt evaluates the linear-then-square-root braking curve used
// by the friction and shill terms to compute the maximum velocity
// difference allowed at distance d given a braking deceleration aMax, a
// shaping slope and a reference distance r. Below the reference distance
// the allowed difference is zero; it then rises linearly with slope until
// the deceleration budget aMax is reached, and continues as a square root
// beyond that so the curve stays C1-continuous (it is the maximum speed at
// which a linear deceleration of aMax still avoids overshoot by distance
// d-r).
func VelDecayLinSqrt(d, slope, aMax, r float64) float64 {
	x := d - r
	if x <= 0 {
		return 0
	}
	knee := aMax / slope
	if slope*x < knee {
		return slope * x
	}
	v2 := 2*aMax*x - knee*knee
	if v2 < 0 {
		return 0
	}
	return math.Sqrt(v2)
}

// SigmaNorm is the Olfati-Saber sigma-norm, a smooth surrogate for the
// Euclidean norm with bounded gradient everywhere, including at the
// origin: sigmaNorm(x) = (sqrt(1+eps*|x|^2) - 1) / eps.
func SigmaNorm(x Vec3, eps float64) float64 {
	return (math.Sqrt(1+eps*x.Dot(x)) - 1) / eps
}

// SigmaGrad is the gradient of SigmaNorm with respect to x, i.e. x scaled
// by 1/sqrt(1+eps|x|^2). It doubles as a smoothly-vanishing unit vector:
// SigmaGrad(x, eps) -> x/|x| as |x| grows, and -> 0 as x -> 0.
func SigmaGrad(x Vec3, eps float64) Vec3 {
	return x.Scale(1 / math.Sqrt(1+eps*x.Dot(x)))
}

// BumpFunction is the Olfati-Saber bump function: 1 on [0,h], a raised
// cosine taper on (h,1), and 0 beyond 1. z < 0 is treated as 0 to keep the
// function total.
func BumpFunction(z, h float64) float64 {
	switch {
	case z < 0:
		return 0
	case z < h:
		return 1
	case z < 1:
		return 0.5 * (1 + math.Cos(math.Pi*(z-h)/(1-h)))
	default:
		return 0
	}
}

// ActionFunction is the gradient-based action function used by the
// adjacency/Olfati-Saber potential: a sigmoid-shaped function of z
// with slope/saturation parameters a and b,
// phi(z) = ((a+b)*sigma1(z+c) + (a-b)) / 2 with sigma1(x) = x/sqrt(1+x^2)
// and c = |a-b|/sqrt(4*a*b).
func ActionFunction(z, a, b float64) float64 {
	c := math.Abs(a-b) / math.Sqrt(4*a*b)
	return ((a+b)*sigma1(z+c) + (a - b)) / 2
}

func sigma1(x float64) float64 {
	return x / math.Sqrt(1+x*x)
}
