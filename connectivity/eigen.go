package connectivity

import (
	"errors"
	"math"
)

// ErrEigenFailure is returned when the Jacobi eigensolver fails to
// converge within its iteration budget.
var ErrEigenFailure = errors.New("connectivity: eigensolver did not converge")

const (
	jacobiMaxSweeps = 100
	jacobiTol       = 1e-12
)

// jacobiEigen computes all eigenvalues and eigenvectors of the symmetric
// matrix a using the classical cyclic Jacobi rotation method. It mutates a
// working copy, never the caller's matrix. eigenvectors[k] is the
// eigenvector for eigenvalues[k], both unsorted on return.
func jacobiEigen(a [][]float64) (eigenvalues []float64, eigenvectors [][]float64, err error) {
	n := len(a)
	m := make([][]float64, n)
	for i := range a {
		m[i] = append([]float64(nil), a[i]...)
	}

	v := make([][]float64, n)
	for i := range v {
		v[i] = make([]float64, n)
		v[i][i] = 1
	}

	offDiagNorm := func() float64 {
		sum := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				sum += m[i][j] * m[i][j]
			}
		}
		return sum
	}

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		if offDiagNorm() < jacobiTol {
			break
		}
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(m[p][q]) < jacobiTol {
					continue
				}
				theta := (m[q][q] - m[p][p]) / (2 * m[p][q])
				t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta == 0 {
					t = 1
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				mpp, mqq, mpq := m[p][p], m[q][q], m[p][q]
				m[p][p] = mpp - t*mpq
				m[q][q] = mqq + t*mpq
				m[p][q] = 0
				m[q][p] = 0
				for i := 0; i < n; i++ {
					if i == p || i == q {
						continue
					}
					mip, miq := m[i][p], m[i][q]
					m[i][p] = c*mip - s*miq
					m[p][i] = m[i][p]
					m[i][q] = s*mip + c*miq
					m[q][i] = m[i][q]
				}
				for i := 0; i < n; i++ {
					vip, viq := v[i][p], v[i][q]
					v[i][p] = c*vip - s*viq
					v[i][q] = s*vip + c*viq
				}
			}
		}
		if sweep == jacobiMaxSweeps-1 && offDiagNorm() >= jacobiTol {
			return nil, nil, ErrEigenFailure
		}
	}

	eigenvalues = make([]float64, n)
	for i := 0; i < n; i++ {
		eigenvalues[i] = m[i][i]
	}
	eigenvectors = make([][]float64, n)
	for k := 0; k < n; k++ {
		eigenvectors[k] = make([]float64, n)
		for i := 0; i < n; i++ {
			eigenvectors[k][i] = v[i][k]
		}
	}
	return eigenvalues, eigenvectors, nil
}
