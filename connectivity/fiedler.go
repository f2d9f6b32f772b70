package connectivity

import (
	"sort"

	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/phase"
)

// eigenPair pairs an eigenvalue with its eigenvector for sorting.
type eigenPair struct {
	value  float64
	vector []float64
}

// FiedlerPair builds the weighted Laplacian from coordinates (cutoff rL),
// solves it, and returns the second-smallest eigenvalue and its
// eigenvector alongside the Laplacian itself. For a single agent there is
// no second eigenvalue; it returns (0, zero vector, L, nil).
func FiedlerPair(coordinates []geom.Vec3, rL float64) (lambda2 float64, v2 []float64, laplacian [][]float64, err error) {
	n := len(coordinates)
	laplacian = BuildLaplacian(coordinates, rL)
	if n < 2 {
		return 0, make([]float64, n), laplacian, nil
	}

	values, vectors, err := jacobiEigen(laplacian)
	if err != nil {
		return 0, nil, laplacian, err
	}

	pairs := make([]eigenPair, n)
	for i := range values {
		pairs[i] = eigenPair{value: values[i], vector: vectors[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })

	return pairs[1].value, pairs[1].vector, laplacian, nil
}

// ApplyTo writes the Fiedler pair and Laplacian onto a Phase snapshot.
func ApplyTo(p *phase.Phase, lambda2 float64, v2 []float64, laplacian [][]float64) {
	p.SecondEigenvalue = lambda2
	p.SecondEigenvector = v2
	p.Laplacian = laplacian
}
