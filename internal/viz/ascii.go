package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bodelab/internal/bode"
	"github.com/san-kum/bodelab/internal/config"
	"github.com/san-kum/bodelab/internal/tf"
)

// ASCIIBode renders the magnitude (as log10|G|) and phase curves with
// asciigraph. Samples are equally spaced in log ω, so the horizontal index
// is already a logarithmic frequency axis. Values outside limits are left
// out, keeping the vertical range fixed.
func ASCIIBode(res *bode.Result, limits config.Limits, width, height int) string {
	if len(res.Omega) < 2 {
		return "empty frequency grid\n"
	}
	lo, hi := res.Omega[0], res.Omega[len(res.Omega)-1]

	magLo, magHi := math.Log10(limits.Magnitude.Min), math.Log10(limits.Magnitude.Max)
	mag := [][]float64{clip(log10(res.Magnitude), magLo, magHi)}
	legends := []string{"log10|G|"}
	if as := res.Asymptotes; as != nil {
		low := make([]float64, len(res.Omega))
		for i := range low {
			low[i] = math.Abs(as.LowGain)
		}
		high := make([]float64, len(as.HighGain))
		for i, v := range as.HighGain {
			high[i] = math.Abs(v)
		}
		mag = append(mag, clip(log10(low), magLo, magHi), clip(log10(high), magLo, magHi))
		legends = append(legends, "low", "high")
	}

	phase := [][]float64{clip(res.Phase, limits.Phase.Min, limits.Phase.Max)}
	phaseLegends := []string{"phase"}
	if as := res.Asymptotes; as != nil {
		phase = append(phase,
			clip(constant(len(res.Omega), as.LowPhase), limits.Phase.Min, limits.Phase.Max),
			clip(constant(len(res.Omega), as.HighPhase), limits.Phase.Min, limits.Phase.Max))
		phaseLegends = append(phaseLegends, "low", "high")
	}
	if res.Params.Kind == tf.KindDeadTime {
		phase = append(phase, clip(bode.DelayPhase(res.Params.Delay, res.Omega), limits.Phase.Min, limits.Phase.Max))
		phaseLegends = append(phaseLegends, "-Dω")
	}

	colors := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Yellow}
	var b strings.Builder
	b.WriteString(asciigraph.PlotMany(mag,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.LowerBound(magLo),
		asciigraph.UpperBound(magHi),
		asciigraph.SeriesColors(colors[:len(mag)]...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(fmt.Sprintf("magnitude, ω = %g … %g rad/s", lo, hi)),
	))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.PlotMany(phase,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.LowerBound(limits.Phase.Min),
		asciigraph.UpperBound(limits.Phase.Max),
		asciigraph.SeriesColors(colors[:len(phase)]...),
		asciigraph.SeriesLegends(phaseLegends...),
		asciigraph.Caption("phase (rad)"),
	))
	b.WriteString("\n")

	if as := res.Asymptotes; as != nil {
		fmt.Fprintf(&b, "\ncorner ω = %.4g rad/s, high-frequency phase = %.4g rad\n", as.Corner, as.HighPhase)
	}
	if res.Params.Kind == tf.KindSecondOrder {
		b.WriteString("\n" + PolePanel(res.Poles, limits.PoleWindow, 24, 8).String() + "\n")
		fmt.Fprintf(&b, "poles: %s (%s)\n", formatPoles(res.Poles), bode.Damping(res.Poles))
	}
	return b.String()
}

func log10(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Log10(x)
	}
	return out
}

// clip replaces values outside [lo, hi] and non-finite values with NaN,
// which asciigraph leaves undrawn.
func clip(v []float64, lo, hi float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < lo || x > hi {
			out[i] = math.NaN()
			continue
		}
		out[i] = x
	}
	return out
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func formatPoles(poles []complex128) string {
	if len(poles) == 0 {
		return "none"
	}
	parts := make([]string, len(poles))
	for i, p := range poles {
		parts[i] = formatComplex(p)
	}
	return strings.Join(parts, ", ")
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if im == 0 {
		return fmt.Sprintf("%.4g", re)
	}
	sign := "+"
	if im < 0 {
		sign, im = "-", -im
	}
	return fmt.Sprintf("%.4g%s%.4gj", re, sign, im)
}
