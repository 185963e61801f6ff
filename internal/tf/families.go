package tf

import "math/cmplx"

// RealPole is G(s) = K / (τs + 1)^N. Negative N places |N| zeros at -1/τ.
type RealPole struct {
	K   float64
	Tau float64
	N   int
}

func (RealPole) Kind() Kind { return KindRealPole }

func (r RealPole) At(omega float64) complex128 {
	if r.N == 0 {
		return complex(r.K, 0)
	}
	base := complex(1, r.Tau*omega)
	return complex(r.K, 0) / powInt(base, r.N)
}

// SecondOrder is G(s) = K / (τ²s² + 2τζs + 1).
type SecondOrder struct {
	K    float64
	Tau  float64
	Zeta float64
}

func (SecondOrder) Kind() Kind { return KindSecondOrder }

func (so SecondOrder) At(omega float64) complex128 {
	s := complex(0, omega)
	tau := complex(so.Tau, 0)
	den := tau*tau*s*s + 2*tau*complex(so.Zeta, 0)*s + 1
	return complex(so.K, 0) / den
}

// Characteristic returns the denominator coefficients in descending powers.
func (so SecondOrder) Characteristic() []float64 {
	return []float64{so.Tau * so.Tau, 2 * so.Tau * so.Zeta, 1}
}

// DeadTime is G(s) = exp(-D s).
type DeadTime struct {
	Delay float64
}

func (DeadTime) Kind() Kind { return KindDeadTime }

func (d DeadTime) At(omega float64) complex128 {
	return cmplx.Exp(complex(0, -d.Delay*omega))
}

// powInt raises z to an integer power by repeated squaring; negative n
// inverts the result.
func powInt(z complex128, n int) complex128 {
	if n < 0 {
		return 1 / powInt(z, -n)
	}
	result := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			result *= z
		}
		z *= z
		n >>= 1
	}
	return result
}
