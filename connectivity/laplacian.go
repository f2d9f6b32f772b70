// Package connectivity builds the weighted communication-graph Laplacian
// each tick, extracts its Fiedler pair (second eigenvalue/eigenvector,
// the graph's algebraic connectivity), and tracks that value's trend.
package connectivity

import (
	"math"

	"github.com/flocksim/swarmcore/geom"
)

// edgeWeight is the smooth distance-based edge weight used to build the
// Laplacian: exponential decay inside the cutoff, zero beyond it.
func edgeWeight(d, cutoff float64) float64 {
	if d >= cutoff || cutoff <= 0 {
		return 0
	}
	return math.Exp(-d / cutoff)
}

// BuildLaplacian constructs L = D - W for the given positions, with edge
// weight w(d) cut off at rL: pairs farther than rL apart carry zero
// weight. The result is symmetric since edgeWeight only depends on the
// (symmetric) pairwise distance.
func BuildLaplacian(coordinates []geom.Vec3, rL float64) [][]float64 {
	n := len(coordinates)
	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := geom.Dist(coordinates[i], coordinates[j])
			wij := edgeWeight(d, rL)
			w[i][j] = wij
			w[j][i] = wij
		}
	}

	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
		degree := 0.0
		for j := 0; j < n; j++ {
			l[i][j] = -w[i][j]
			degree += w[i][j]
		}
		l[i][i] = degree
	}
	return l
}
