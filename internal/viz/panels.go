package viz

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/bodelab/internal/bode"
	"github.com/san-kum/bodelab/internal/config"
	"github.com/san-kum/bodelab/internal/tf"
)

func frequencyAxes(omega []float64, lim config.Range, logY bool) Axes {
	a := Axes{XMin: 0.01, XMax: 100, YMin: lim.Min, YMax: lim.Max, LogX: true, LogY: logY}
	if n := len(omega); n > 1 && omega[0] > 0 && omega[n-1] > omega[0] {
		a.XMin, a.XMax = omega[0], omega[n-1]
	}
	return a
}

// MagnitudePanel draws |G| on log-log axes with the gain asymptotes and the
// corner frequency as dotted guides.
func MagnitudePanel(res *bode.Result, lim config.Range, w, h int) *Canvas {
	c := NewCanvas(w, h)
	a := frequencyAxes(res.Omega, lim, true)

	if as := res.Asymptotes; as != nil {
		c.HLine(a, math.Abs(as.LowGain))
		high := make([]float64, len(as.HighGain))
		for i, v := range as.HighGain {
			high[i] = math.Abs(v)
		}
		dotted(c, a, res.Omega, high)
		c.VLine(a, as.Corner)
	}
	c.Polyline(a, res.Omega, res.Magnitude)
	return c
}

// PhasePanel draws the unwrapped phase on a log-x axis with the phase
// asymptotes, or the exact -Dω line for a dead time.
func PhasePanel(res *bode.Result, lim config.Range, w, h int) *Canvas {
	c := NewCanvas(w, h)
	a := frequencyAxes(res.Omega, lim, false)

	if as := res.Asymptotes; as != nil {
		c.HLine(a, as.LowPhase)
		c.HLine(a, as.HighPhase)
		c.VLine(a, as.Corner)
	}
	if res.Params.Kind == tf.KindDeadTime {
		dotted(c, a, res.Omega, bode.DelayPhase(res.Params.Delay, res.Omega))
	}
	c.Polyline(a, res.Omega, res.Phase)
	return c
}

// PolePanel draws the complex plane inside a square window of half-width
// window, with axis lines through the origin and a cross per pole.
func PolePanel(poles []complex128, window float64, w, h int) *Canvas {
	c := NewCanvas(w, h)
	a := Axes{XMin: -window, XMax: window, YMin: -window, YMax: window}

	c.HLine(a, 0)
	c.VLine(a, 0)
	for _, p := range poles {
		if cmplx.IsNaN(p) || cmplx.IsInf(p) {
			continue
		}
		c.Cross(a, real(p), imag(p))
	}
	return c
}

func dotted(c *Canvas, a Axes, xs, ys []float64) {
	for i := range xs {
		if i%4 != 0 || i >= len(ys) {
			continue
		}
		if x, y, ok := a.Pixel(c, xs[i], ys[i]); ok {
			c.Set(x, y)
		}
	}
}
