package viz

import (
	"math"
	"strings"
	"testing"
)

func TestCanvas_SetAndString(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if got := c.String(); got != "⠁⢀" {
		t.Errorf("got %q", got)
	}
	if !c.IsSet(0, 0) || c.IsSet(1, 0) {
		t.Error("IsSet disagrees with Set")
	}

	c.Clear()
	if strings.Trim(c.String(), "⠀") != "" {
		t.Error("Clear left pixels lit")
	}
}

func TestCanvas_DrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)

	for i := 0; i < 20; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal pixel (%d,%d) not set", i, i)
		}
	}
}

func TestAxes_Pixel(t *testing.T) {
	c := NewCanvas(10, 5)
	a := Axes{XMin: 1, XMax: 100, YMin: 0, YMax: 1, LogX: true}

	tests := []struct {
		name   string
		x, y   float64
		px, py int
		ok     bool
	}{
		{"lower left", 1, 0, 0, 19, true},
		{"upper right", 100, 1, 19, 0, true},
		{"log midpoint", 10, 0.5, 10, 10, true},
		{"below log range", 0.5, 0.5, 0, 0, false},
		{"non-positive on log axis", -1, 0.5, 0, 0, false},
		{"above y range", 10, 2, 0, 0, false},
		{"nan", 10, math.NaN(), 0, 0, false},
		{"inf", math.Inf(1), 0.5, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, py, ok := a.Pixel(c, tt.x, tt.y)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (px != tt.px || py != tt.py) {
				t.Errorf("pixel = (%d,%d), want (%d,%d)", px, py, tt.px, tt.py)
			}
		})
	}
}

func TestCanvas_PolylineBreaksOnGaps(t *testing.T) {
	c := NewCanvas(10, 5)
	a := Axes{XMin: 1, XMax: 100, YMin: 0, YMax: 1, LogX: true}

	c.Polyline(a, []float64{1, 10, 100}, []float64{0, math.NaN(), 1})

	if !c.IsSet(0, 19) || !c.IsSet(19, 0) {
		t.Error("endpoints not drawn")
	}
	if c.IsSet(10, 10) {
		t.Error("gap was bridged")
	}
}

func TestPolePanel_MarksPoles(t *testing.T) {
	c := PolePanel([]complex128{complex(-1, 1), complex(-1, -1)}, 2, 10, 5)
	a := Axes{XMin: -2, XMax: 2, YMin: -2, YMax: 2}

	for _, p := range []complex128{complex(-1, 1), complex(-1, -1)} {
		x, y, ok := a.Pixel(c, real(p), imag(p))
		if !ok || !c.IsSet(x, y) {
			t.Errorf("pole %v not marked", p)
		}
	}
}

func TestSliderBar(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "●────"},
		{1, "━━━━●"},
		{5, "━━━━●"},
		{-1, "●────"},
	}
	for _, tt := range tests {
		if got := SliderBar(tt.v, 0, 1, 5); got != tt.want {
			t.Errorf("SliderBar(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
