package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set sets a pixel at (x, y) in sub-pixel coordinates, origin top-left.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a solid line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.line(x0, y0, x1, y1, 1)
}

// DrawDotted lights every third pixel of the line from (x0, y0) to (x1, y1).
func (c *Canvas) DrawDotted(x0, y0, x1, y1 int) {
	c.line(x0, y0, x1, y1, 3)
}

func (c *Canvas) line(x0, y0, x1, y1, every int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for i := 0; ; i++ {
		if i%every == 0 {
			c.Set(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// Axes maps data coordinates onto a canvas. Logarithmic axes need strictly
// positive bounds.
type Axes struct {
	XMin, XMax float64
	YMin, YMax float64
	LogX, LogY bool
}

// Pixel returns the sub-pixel position of (x, y). ok is false when the
// point is not finite, cannot be shown on a log axis or lies outside the
// axis ranges.
func (a Axes) Pixel(c *Canvas, x, y float64) (px, py int, ok bool) {
	fx, okx := normalize(x, a.XMin, a.XMax, a.LogX)
	fy, oky := normalize(y, a.YMin, a.YMax, a.LogY)
	if !okx || !oky {
		return 0, 0, false
	}
	w, h := c.Width*2-1, c.Height*4-1
	return int(math.Round(fx * float64(w))), int(math.Round((1 - fy) * float64(h))), true
}

func normalize(v, lo, hi float64, logScale bool) (float64, bool) {
	if logScale {
		if v <= 0 || lo <= 0 || hi <= 0 {
			return 0, false
		}
		v, lo, hi = math.Log10(v), math.Log10(lo), math.Log10(hi)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || hi <= lo {
		return 0, false
	}
	f := (v - lo) / (hi - lo)
	if f < 0 || f > 1 {
		return 0, false
	}
	return f, true
}

// Polyline joins consecutive drawable points. Points that Pixel rejects
// break the line.
func (c *Canvas) Polyline(a Axes, xs, ys []float64) {
	havePrev := false
	var px, py int
	for i := range xs {
		if i >= len(ys) {
			break
		}
		x, y, ok := a.Pixel(c, xs[i], ys[i])
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

// HLine draws a dotted horizontal guide at data value y.
func (c *Canvas) HLine(a Axes, y float64) {
	_, py, ok := a.Pixel(c, a.XMin, y)
	if !ok {
		return
	}
	c.DrawDotted(0, py, c.Width*2-1, py)
}

// VLine draws a dotted vertical guide at data value x.
func (c *Canvas) VLine(a Axes, x float64) {
	px, _, ok := a.Pixel(c, x, a.YMin)
	if !ok {
		return
	}
	c.DrawDotted(px, 0, px, c.Height*4-1)
}

// Cross marks a point with a small plus sign.
func (c *Canvas) Cross(a Axes, x, y float64) {
	px, py, ok := a.Pixel(c, x, y)
	if !ok {
		return
	}
	c.DrawLine(px-2, py, px+2, py)
	c.DrawLine(px, py-2, px, py+2)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
