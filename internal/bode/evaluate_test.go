package bode_test

import (
	"math"
	"math/cmplx"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bodelab/internal/bode"
	"github.com/san-kum/bodelab/internal/freq"
	"github.com/san-kum/bodelab/internal/tf"
)

func realPole(k, tau float64, n int) tf.Params {
	return tf.Params{Kind: tf.KindRealPole, K: k, Tau: tau, N: n}
}

func secondOrder(k, tau, zeta float64) tf.Params {
	return tf.Params{Kind: tf.KindSecondOrder, K: k, Tau: tau, Zeta: zeta}
}

var _ = Describe("Evaluate", func() {
	Describe("real-pole family", func() {
		It("is the constant K when n = 0", func() {
			for _, k := range []float64{1.5, -0.75} {
				res, err := bode.Evaluate(realPole(k, 1, 0), freq.Default())
				Expect(err).NotTo(HaveOccurred())

				wantPhase := 0.0
				if k < 0 {
					wantPhase = math.Pi
				}
				for i := range res.Omega {
					Expect(res.Response[i]).To(Equal(complex(k, 0)))
					Expect(res.Magnitude[i]).To(BeNumerically("~", math.Abs(k), 1e-15))
					Expect(res.Phase[i]).To(Equal(wantPhase))
				}
			}
		})

		DescribeTable("has magnitude K/2^(n/2) at the corner",
			func(k, tau float64, n int, grid freq.Grid) {
				res, err := bode.Evaluate(realPole(k, tau, n), grid)
				Expect(err).NotTo(HaveOccurred())

				idx := freq.Nearest(res.Omega, 1/tau)
				Expect(res.Omega[idx] * tau).To(BeNumerically("~", 1, 1e-12))
				Expect(res.Magnitude[idx]).To(BeNumerically("~", k/math.Pow(2, float64(n)/2), 1e-12))
			},
			Entry("first order", 1.0, 1.0, 1, freq.Grid{LowerExp: -1, UpperExp: 1, Points: 3}),
			Entry("double pole", 2.0, 1.0, 2, freq.Grid{LowerExp: -1, UpperExp: 1, Points: 3}),
			Entry("triple pole, slow", 0.5, 10.0, 3, freq.Grid{LowerExp: -2, UpperExp: 0, Points: 3}),
			Entry("single zero", 1.0, 1.0, -1, freq.Grid{LowerExp: -1, UpperExp: 1, Points: 3}),
		)

		DescribeTable("converges to the high-frequency asymptote",
			func(n int) {
				res, err := bode.Evaluate(realPole(1, 1, n), freq.Grid{LowerExp: 0, UpperExp: 4, Points: 50})
				Expect(err).NotTo(HaveOccurred())
				a := res.Asymptotes
				Expect(a).NotTo(BeNil())

				last := len(res.Omega) - 1
				first := math.Abs(res.Magnitude[0]/a.HighGain[0] - 1)
				final := math.Abs(res.Magnitude[last]/a.HighGain[last] - 1)
				Expect(final).To(BeNumerically("<", 1e-7))
				Expect(final).To(BeNumerically("<", first))
			},
			Entry("n = 1", 1),
			Entry("n = 3", 3),
			Entry("n = -2", -2),
		)

		DescribeTable("approaches its phase asymptotes",
			func(n int) {
				res, err := bode.Evaluate(realPole(1, 1, n), freq.Grid{LowerExp: -4, UpperExp: 4, Points: 2000})
				Expect(err).NotTo(HaveOccurred())
				a := res.Asymptotes

				Expect(a.LowPhase).To(Equal(0.0))
				Expect(a.HighPhase).To(Equal(-float64(n) * math.Pi / 2))
				Expect(res.Phase[0]).To(BeNumerically("~", a.LowPhase, 1e-3))
				Expect(res.Phase[len(res.Phase)-1]).To(BeNumerically("~", a.HighPhase, 1e-3))
			},
			Entry("n = 1", 1),
			Entry("n = 2", 2),
			Entry("n = 3", 3),
			Entry("n = -1", -1),
			Entry("n = -2", -2),
		)

		It("reports the corner and low gain", func() {
			res, err := bode.Evaluate(realPole(3, 0.25, 2), freq.Default())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Asymptotes.Corner).To(Equal(4.0))
			Expect(res.Asymptotes.LowGain).To(Equal(3.0))
			Expect(res.Asymptotes.Order).To(Equal(2))
			Expect(res.Asymptotes.HighGain).To(HaveLen(len(res.Omega)))
			Expect(res.Poles).To(BeEmpty())
		})

		It("matches the textbook first-order values at 1 rad/s", func() {
			res, err := bode.Evaluate(realPole(1, 1, 1), freq.Default())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Omega).To(HaveLen(1000))

			idx := freq.Nearest(res.Omega, 1)
			Expect(res.Magnitude[idx]).To(BeNumerically("~", 1/math.Sqrt2, 5e-3))
			Expect(res.Phase[idx]).To(BeNumerically("~", -math.Pi/4, 5e-3))
		})

		It("lets τ = 0 propagate as infinities", func() {
			res, err := bode.Evaluate(realPole(1, 0, 1), freq.Default())
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsInf(res.Asymptotes.Corner, 1)).To(BeTrue())
			Expect(math.IsInf(res.Asymptotes.HighGain[0], 1)).To(BeTrue())
			Expect(bode.CheckFinite(res)).To(MatchError(bode.ErrNonFinite))
		})
	})

	Describe("second-order family", func() {
		It("has a repeated real pole at -1/τ when ζ = 1", func() {
			for _, tau := range []float64{1, 2} {
				res, err := bode.Evaluate(secondOrder(1, tau, 1), freq.Default())
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Poles).To(HaveLen(2))
				for _, p := range res.Poles {
					Expect(real(p)).To(BeNumerically("~", -1/tau, 1e-6))
					Expect(imag(p)).To(BeNumerically("~", 0, 1e-6))
				}
				Expect(bode.Damping(res.Poles)).To(Equal("critically damped"))
			}
		})

		It("has two distinct negative real poles when ζ > 1", func() {
			res, err := bode.Evaluate(secondOrder(1, 1, 1.1), freq.Default())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Poles).To(HaveLen(2))

			a, b := res.Poles[0], res.Poles[1]
			Expect(imag(a)).To(BeNumerically("~", 0, 1e-12))
			Expect(imag(b)).To(BeNumerically("~", 0, 1e-12))
			Expect(real(a)).To(BeNumerically("<", 0))
			Expect(real(b)).To(BeNumerically("<", 0))
			Expect(math.Abs(real(a) - real(b))).To(BeNumerically(">", 0.1))
			Expect(real(a) * real(b)).To(BeNumerically("~", 1, 1e-9))
			Expect(bode.Damping(res.Poles)).To(Equal("overdamped"))
		})

		It("has a conjugate pair with real part -ζ/τ when ζ < 1", func() {
			tau, zeta := 2.0, 0.3
			res, err := bode.Evaluate(secondOrder(1, tau, zeta), freq.Default())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Poles).To(HaveLen(2))

			a, b := res.Poles[0], res.Poles[1]
			Expect(cmplx.Abs(a - cmplx.Conj(b))).To(BeNumerically("<", 1e-12))
			Expect(real(a)).To(BeNumerically("~", -zeta/tau, 1e-9))
			Expect(math.Abs(imag(a))).To(BeNumerically("~", math.Sqrt(1-zeta*zeta)/tau, 1e-9))
			Expect(bode.Damping(res.Poles)).To(Equal("underdamped"))
		})

		It("puts undamped poles on the imaginary axis", func() {
			res, err := bode.Evaluate(secondOrder(1, 1, 0), freq.Default())
			Expect(err).NotTo(HaveOccurred())
			for _, p := range res.Poles {
				Expect(real(p)).To(BeNumerically("~", 0, 1e-12))
				Expect(math.Abs(imag(p))).To(BeNumerically("~", 1, 1e-12))
			}
			Expect(bode.Damping(res.Poles)).To(Equal("undamped"))
		})

		It("uses second-order asymptotes", func() {
			res, err := bode.Evaluate(secondOrder(2, 0.5, 0.7), freq.Default())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Asymptotes.Order).To(Equal(2))
			Expect(res.Asymptotes.Corner).To(Equal(2.0))
			Expect(res.Asymptotes.HighPhase).To(BeNumerically("~", -math.Pi, 1e-15))
			Expect(res.Phase[len(res.Phase)-1]).To(BeNumerically("~", -math.Pi, 0.05))
		})

		It("has no poles when τ = 0", func() {
			res, err := bode.Evaluate(secondOrder(1, 0, 0.5), freq.Default())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Poles).To(BeEmpty())
		})
	})

	Describe("dead time", func() {
		It("has unit magnitude and phase -Dω", func() {
			delay := 2.0
			res, err := bode.Evaluate(tf.Params{Kind: tf.KindDeadTime, Delay: delay}, freq.Default())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Asymptotes).To(BeNil())
			Expect(res.Poles).To(BeEmpty())

			want := bode.DelayPhase(delay, res.Omega)
			for i := range res.Omega {
				Expect(res.Magnitude[i]).To(BeNumerically("~", 1, 1e-14))
				Expect(res.Phase[i]).To(BeNumerically("~", want[i], 1e-9))
			}
			Expect(res.Phase[len(res.Phase)-1]).To(BeNumerically("~", -200, 1e-9))
		})

		It("keeps decreasing at the top of the slider range", func() {
			res, err := bode.Evaluate(tf.Params{Kind: tf.KindDeadTime, Delay: 5}, freq.Default())
			Expect(err).NotTo(HaveOccurred())

			want := bode.DelayPhase(5, res.Omega)
			for i := range res.Omega {
				Expect(res.Phase[i]).To(BeNumerically("~", want[i], 1e-9))
				if i > 0 {
					Expect(res.Phase[i]).To(BeNumerically("<", res.Phase[i-1]))
				}
			}
			Expect(res.Phase[len(res.Phase)-1]).To(BeNumerically("~", -500, 1e-9))
		})

		It("is at -π modulo 2π for D = 1, ω = π", func() {
			g := tf.DeadTime{Delay: 1}.At(math.Pi)
			Expect(cmplx.Abs(g)).To(BeNumerically("~", 1, 1e-15))
			Expect(math.Abs(cmplx.Phase(g))).To(BeNumerically("~", math.Pi, 1e-12))
		})
	})

	It("is idempotent", func() {
		for _, p := range []tf.Params{realPole(1.2, 0.7, 3), secondOrder(-1, 1.5, 0.2), {Kind: tf.KindDeadTime, Delay: 0.8}} {
			a, err := bode.Evaluate(p, freq.Default())
			Expect(err).NotTo(HaveOccurred())
			b, err := bode.Evaluate(p, freq.Default())
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		}
	})

	It("rejects an unknown shape", func() {
		_, err := bode.Evaluate(tf.Params{Kind: tf.Kind(9)}, freq.Default())
		Expect(err).To(MatchError(tf.ErrUnknownShape))
	})

	It("passes CheckFinite for well-formed parameters", func() {
		res, err := bode.Evaluate(secondOrder(1, 1, 0.4), freq.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(bode.CheckFinite(res)).To(Succeed())
	})
})

var _ = Describe("phase", func() {
	It("stays continuous through -π for a triple pole", func() {
		res, err := bode.Evaluate(realPole(1, 1, 3), freq.Default())
		Expect(err).NotTo(HaveOccurred())
		for i := 1; i < len(res.Phase); i++ {
			Expect(math.Abs(res.Phase[i] - res.Phase[i-1])).To(BeNumerically("<", 0.1))
		}
		Expect(res.Phase[len(res.Phase)-1]).To(BeNumerically("<", -math.Pi))
	})

	It("starts at π for a negative gain", func() {
		res, err := bode.Evaluate(realPole(-1, 1, 1), freq.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Phase[0]).To(BeNumerically("~", math.Pi, 0.02))
		Expect(res.Phase[len(res.Phase)-1]).To(BeNumerically("~", math.Pi/2, 0.02))
	})
})

var _ = Describe("Roots", func() {
	It("solves a linear polynomial", func() {
		r, err := bode.Roots([]float64{2, -4})
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(HaveLen(1))
		Expect(real(r[0])).To(BeNumerically("~", 2, 1e-12))
	})

	It("strips leading zeros and keeps trailing zeros as roots at the origin", func() {
		r, err := bode.Roots([]float64{0, 1, -1, 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(HaveLen(2))
		Expect(r[0]).To(Equal(complex(0, 0)))
		Expect(real(r[1])).To(BeNumerically("~", 1, 1e-12))
	})

	It("returns nothing for a constant", func() {
		r, err := bode.Roots([]float64{0, 0, 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeEmpty())
	})

	It("finds the roots of a cubic", func() {
		// (x+1)(x+2)(x+3)
		r, err := bode.Roots([]float64{1, 6, 11, 6})
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(HaveLen(3))
		for i, want := range []float64{-3, -2, -1} {
			Expect(real(r[i])).To(BeNumerically("~", want, 1e-9))
			Expect(imag(r[i])).To(BeNumerically("~", 0, 1e-9))
		}
	})

	It("fails on non-finite coefficients", func() {
		_, err := bode.Roots([]float64{1, math.Inf(1), 1})
		Expect(err).To(MatchError(bode.ErrNoConvergence))
	})
})
