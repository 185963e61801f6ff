package bode

import (
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Roots returns the roots of the polynomial with coefficients given in
// descending powers, computed as the eigenvalues of its companion matrix.
// Leading zeros are dropped; trailing zeros contribute roots at the origin.
// A constant polynomial has no roots.
func Roots(coeffs []float64) ([]complex128, error) {
	start := 0
	for start < len(coeffs) && coeffs[start] == 0 {
		start++
	}
	c := coeffs[start:]

	zeros := 0
	for len(c) > 0 && c[len(c)-1] == 0 {
		c = c[:len(c)-1]
		zeros++
	}

	roots := make([]complex128, 0, len(c)+zeros)
	if n := len(c) - 1; n > 0 {
		data := make([]float64, n*n)
		for j := 0; j < n; j++ {
			v := -c[j+1] / c[0]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, ErrNoConvergence
			}
			data[j] = v
		}
		for i := 1; i < n; i++ {
			data[i*n+i-1] = 1
		}

		var eig mat.Eigen
		if ok := eig.Factorize(mat.NewDense(n, n, data), mat.EigenNone); !ok {
			return nil, ErrNoConvergence
		}
		roots = append(roots, eig.Values(nil)...)
	}
	for i := 0; i < zeros; i++ {
		roots = append(roots, 0)
	}

	sortRoots(roots)
	return roots, nil
}

// SecondOrderPoles returns the roots of τ²x² + 2τζx + 1.
func SecondOrderPoles(tau, zeta float64) ([]complex128, error) {
	return Roots([]float64{tau * tau, 2 * tau * zeta, 1})
}

func sortRoots(r []complex128) {
	sort.SliceStable(r, func(i, j int) bool {
		if real(r[i]) != real(r[j]) {
			return real(r[i]) < real(r[j])
		}
		return imag(r[i]) < imag(r[j])
	})
}

// Damping classifies a pole pair the way the scatter legend reports it.
func Damping(poles []complex128) string {
	if len(poles) == 0 {
		return "none"
	}
	for _, p := range poles {
		if cmplx.IsNaN(p) || cmplx.IsInf(p) {
			return "degenerate"
		}
	}
	if len(poles) == 2 {
		const tol = 1e-6
		a, b := poles[0], poles[1]
		switch {
		case cmplx.Abs(a-b) < tol*math.Max(1, cmplx.Abs(a)):
			return "critically damped"
		case math.Abs(imag(a)) > tol:
			if math.Abs(real(a)) < tol {
				return "undamped"
			}
			return "underdamped"
		}
		return "overdamped"
	}
	return "real"
}
