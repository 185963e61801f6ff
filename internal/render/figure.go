package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"math/cmplx"
	"sort"

	"github.com/san-kum/bodelab/internal/bode"
	"github.com/san-kum/bodelab/internal/config"
	"github.com/san-kum/bodelab/internal/tf"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

var ErrFormat = errors.New("render: unsupported figure format")

var (
	curveColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	asymptoteColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	cornerColor    = color.RGBA{R: 127, G: 127, B: 127, A: 255}
	poleColor      = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	axisColor      = color.Black
)

var contentTypes = map[string]string{
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
	"eps":  "application/postscript",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
}

type Options struct {
	Format string
	Width  vg.Length
	Height vg.Length
}

func DefaultOptions() Options {
	return Options{Format: "png", Width: 6 * vg.Inch, Height: 8 * vg.Inch}
}

// Formats lists the accepted output formats.
func Formats() []string {
	names := make([]string, 0, len(contentTypes))
	for name := range contentTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContentType returns the MIME type for a figure format.
func ContentType(format string) (string, error) {
	ct, ok := contentTypes[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return ct, nil
}

// Figure draws the Bode panels of res, one above the other, and writes the
// encoded image to w.
func Figure(w io.Writer, res *bode.Result, limits config.Limits, opts Options) error {
	if _, err := ContentType(opts.Format); err != nil {
		return err
	}
	plots, err := Plots(res, limits)
	if err != nil {
		return err
	}

	c, err := draw.NewFormattedCanvas(opts.Width, opts.Height, opts.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(8),
		PadY:      vg.Points(12),
	}
	canvases := plot.Align(rows, tiles, draw.New(c))
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("write %s figure: %w", opts.Format, err)
	}
	return nil
}

// Plots builds the magnitude and phase panels, plus the pole panel for the
// second-order family.
func Plots(res *bode.Result, limits config.Limits) ([]*plot.Plot, error) {
	mag, err := magnitudePlot(res, limits.Magnitude)
	if err != nil {
		return nil, fmt.Errorf("magnitude panel: %w", err)
	}
	ph, err := phasePlot(res, limits.Phase)
	if err != nil {
		return nil, fmt.Errorf("phase panel: %w", err)
	}
	plots := []*plot.Plot{mag, ph}

	if res.Params.Kind == tf.KindSecondOrder {
		pz, err := polePlot(res.Poles, limits.PoleWindow)
		if err != nil {
			return nil, fmt.Errorf("pole panel: %w", err)
		}
		plots = append(plots, pz)
	}
	return plots, nil
}

func magnitudePlot(res *bode.Result, lim config.Range) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title(res.Params)
	p.X.Label.Text = "ω (rad/s)"
	p.Y.Label.Text = "|G(jω)|"
	logAxes(p, true)

	if err := addSeries(p, res.Omega, res.Magnitude, true, curveColor, nil); err != nil {
		return nil, err
	}
	if a := res.Asymptotes; a != nil {
		dashed := []vg.Length{vg.Points(4), vg.Points(3)}
		low := constant(len(res.Omega), math.Abs(a.LowGain))
		if err := addSeries(p, res.Omega, low, true, asymptoteColor, dashed); err != nil {
			return nil, err
		}
		high := make([]float64, len(a.HighGain))
		for i, v := range a.HighGain {
			high[i] = math.Abs(v)
		}
		if err := addSeries(p, res.Omega, high, true, asymptoteColor, dashed); err != nil {
			return nil, err
		}
		if err := addCorner(p, a.Corner, lim); err != nil {
			return nil, err
		}
	}

	setLimits(p, res.Omega, lim)
	return p, nil
}

func phasePlot(res *bode.Result, lim config.Range) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "ω (rad/s)"
	p.Y.Label.Text = "phase (rad)"
	logAxes(p, false)

	if err := addSeries(p, res.Omega, res.Phase, false, curveColor, nil); err != nil {
		return nil, err
	}
	dashed := []vg.Length{vg.Points(4), vg.Points(3)}
	if a := res.Asymptotes; a != nil {
		for _, level := range []float64{a.LowPhase, a.HighPhase} {
			if err := addSeries(p, res.Omega, constant(len(res.Omega), level), false, asymptoteColor, dashed); err != nil {
				return nil, err
			}
		}
		if err := addCorner(p, a.Corner, lim); err != nil {
			return nil, err
		}
	}
	if res.Params.Kind == tf.KindDeadTime {
		ref := bode.DelayPhase(res.Params.Delay, res.Omega)
		if err := addSeries(p, res.Omega, ref, false, asymptoteColor, dashed); err != nil {
			return nil, err
		}
	}

	setLimits(p, res.Omega, lim)
	return p, nil
}

func polePlot(poles []complex128, window float64) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Re"
	p.Y.Label.Text = "Im"
	p.Add(plotter.NewGrid())

	axes := []plotter.XYs{
		{{X: -window, Y: 0}, {X: window, Y: 0}},
		{{X: 0, Y: -window}, {X: 0, Y: window}},
	}
	for _, pts := range axes {
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		l.Color = axisColor
		l.Width = vg.Points(0.5)
		p.Add(l)
	}

	pts := make(plotter.XYs, 0, len(poles))
	for _, x := range poles {
		if cmplx.IsNaN(x) || cmplx.IsInf(x) {
			continue
		}
		pts = append(pts, plotter.XY{X: real(x), Y: imag(x)})
	}
	if len(pts) > 0 {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.CrossGlyph{}
		s.GlyphStyle.Radius = vg.Points(5)
		s.GlyphStyle.Color = poleColor
		p.Add(s)
	}

	p.X.Min, p.X.Max = -window, window
	p.Y.Min, p.Y.Max = -window, window
	return p, nil
}

func title(params tf.Params) string {
	switch params.Kind {
	case tf.KindRealPole:
		return fmt.Sprintf("K/(τs+1)^n  K=%g τ=%g n=%d", params.K, params.Tau, params.N)
	case tf.KindSecondOrder:
		return fmt.Sprintf("K/(τ²s²+2τζs+1)  K=%g τ=%g ζ=%g", params.K, params.Tau, params.Zeta)
	case tf.KindDeadTime:
		return fmt.Sprintf("exp(-Ds)  D=%g", params.Delay)
	}
	return params.Kind.String()
}

func logAxes(p *plot.Plot, logY bool) {
	p.Add(plotter.NewGrid())
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	if logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
}

// setLimits fixes both axes. It must run after every p.Add, which widens
// the axis ranges to fit the data.
func setLimits(p *plot.Plot, omega []float64, lim config.Range) {
	lo, hi := 0.1, 10.0
	if n := len(omega); n > 0 && usable(omega[0], true) {
		lo, hi = omega[0], omega[n-1]
		if !usable(hi, true) || hi <= lo {
			lo, hi = omega[0]/10, omega[0]*10
		}
	}
	p.X.Min, p.X.Max = lo, hi
	p.Y.Min, p.Y.Max = lim.Min, lim.Max
}

func addCorner(p *plot.Plot, corner float64, lim config.Range) error {
	if !usable(corner, true) {
		return nil
	}
	l, err := plotter.NewLine(plotter.XYs{{X: corner, Y: lim.Min}, {X: corner, Y: lim.Max}})
	if err != nil {
		return err
	}
	l.Color = cornerColor
	l.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	p.Add(l)
	return nil
}

// addSeries adds ys against the (logarithmic) xs as one line per run of
// drawable samples, so NaN, Inf and non-positive values on log axes
// become gaps instead of errors.
func addSeries(p *plot.Plot, xs, ys []float64, logY bool, c color.Color, dashes []vg.Length) error {
	for _, seg := range segments(xs, ys, logY) {
		l, err := plotter.NewLine(seg)
		if err != nil {
			return err
		}
		l.Color = c
		l.Width = vg.Points(1.5)
		l.Dashes = dashes
		p.Add(l)
	}
	return nil
}

func segments(xs, ys []float64, logY bool) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for i := range xs {
		if i >= len(ys) || !usable(xs[i], true) || !usable(ys[i], logY) {
			flush()
			continue
		}
		cur = append(cur, plotter.XY{X: xs[i], Y: ys[i]})
	}
	flush()
	return out
}

func usable(v float64, positive bool) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return !positive || v > 0
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
