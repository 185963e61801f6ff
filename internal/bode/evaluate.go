package bode

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-dsp/dsp/spectrum"
	"github.com/cwbudde/algo-vecmath"
	"github.com/san-kum/bodelab/internal/freq"
	"github.com/san-kum/bodelab/internal/tf"
)

// Result is everything a renderer needs for one frame: the exact response,
// its magnitude and unwrapped phase, the asymptotic guides and, for the
// second-order family, the pole locations.
type Result struct {
	Params     tf.Params    `json:"params"`
	Omega      []float64    `json:"omega"`
	Response   []complex128 `json:"-"`
	Magnitude  []float64    `json:"magnitude"`
	Phase      []float64    `json:"phase"`
	Asymptotes *Asymptotes  `json:"asymptotes,omitempty"`
	Poles      []complex128 `json:"-"`
}

// Evaluate computes the frequency response of the shape selected by p over
// grid. Degenerate parameters are not rejected; they surface as Inf/NaN in
// the returned slices.
func Evaluate(p tf.Params, grid freq.Grid) (*Result, error) {
	shape, err := tf.New(p)
	if err != nil {
		return nil, err
	}
	omega := grid.Omega()
	resp := tf.Evaluate(shape, omega)

	res := &Result{
		Params:    p,
		Omega:     omega,
		Response:  resp,
		Magnitude: spectrum.Magnitude(resp),
		Phase:     spectrum.UnwrapPhase(spectrum.Phase(resp)),
	}

	switch s := shape.(type) {
	case tf.RealPole:
		a := Asymptote(s.K, s.Tau, s.N, omega)
		res.Asymptotes = &a
	case tf.SecondOrder:
		a := Asymptote(s.K, s.Tau, 2, omega)
		res.Asymptotes = &a
		poles, err := Roots(s.Characteristic())
		if err != nil {
			return nil, fmt.Errorf("second-order poles: %w", err)
		}
		res.Poles = poles
	case tf.DeadTime:
		// successive samples can be more than π apart at high ω, which
		// unwrapping cannot recover
		res.Phase = DelayPhase(s.Delay, omega)
	}

	return res, nil
}

// DelayPhase is the exact phase line -Dω of a pure dead time.
func DelayPhase(delay float64, omega []float64) []float64 {
	out := make([]float64, len(omega))
	vecmath.ScaleBlock(out, omega, -delay)
	return out
}

// DB converts a magnitude to decibels.
func DB(mag float64) float64 {
	return 20 * math.Log10(mag)
}

// CheckFinite reports the first NaN or Inf value in the numeric fields of r.
func CheckFinite(r *Result) error {
	check := func(field string, v []float64) error {
		for i, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return &FieldError{Field: field, Index: i, Wrapped: ErrNonFinite}
			}
		}
		return nil
	}
	if err := check("magnitude", r.Magnitude); err != nil {
		return err
	}
	if err := check("phase", r.Phase); err != nil {
		return err
	}
	if a := r.Asymptotes; a != nil {
		if err := check("high_gain", a.HighGain); err != nil {
			return err
		}
		if err := check("asymptotes", []float64{a.LowGain, a.Corner, a.HighPhase}); err != nil {
			return err
		}
	}
	for i, p := range r.Poles {
		if cmplx.IsNaN(p) || cmplx.IsInf(p) {
			return &FieldError{Field: "poles", Index: i, Wrapped: ErrNonFinite}
		}
	}
	return nil
}
