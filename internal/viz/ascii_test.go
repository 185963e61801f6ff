package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/bodelab/internal/bode"
	"github.com/san-kum/bodelab/internal/config"
	"github.com/san-kum/bodelab/internal/freq"
	"github.com/san-kum/bodelab/internal/tf"
)

func TestASCIIBode(t *testing.T) {
	grid := freq.Grid{LowerExp: -2, UpperExp: 2, Points: 200}
	tests := []struct {
		name   string
		params tf.Params
		want   []string
	}{
		{"real pole", tf.Params{Kind: tf.KindRealPole, K: 1, Tau: 1, N: 1}, []string{"magnitude", "corner ω = 1 rad/s"}},
		{"second order", tf.Params{Kind: tf.KindSecondOrder, K: 1, Tau: 1, Zeta: 0.5}, []string{"poles:", "underdamped"}},
		{"dead time", tf.Params{Kind: tf.KindDeadTime, Delay: 1}, []string{"phase (rad)"}},
		{"zero tau", tf.Params{Kind: tf.KindRealPole, K: 1, Tau: 0, N: 1}, []string{"magnitude"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := bode.Evaluate(tt.params, grid)
			if err != nil {
				t.Fatal(err)
			}
			out := ASCIIBode(res, config.DefaultLimits(), 60, 8)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q", w)
				}
			}
		})
	}
}

func TestASCIIBode_EmptyGrid(t *testing.T) {
	res := &bode.Result{}
	if out := ASCIIBode(res, config.DefaultLimits(), 60, 8); !strings.Contains(out, "empty") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestFormatComplex(t *testing.T) {
	tests := []struct {
		in   complex128
		want string
	}{
		{complex(-1, 0), "-1"},
		{complex(-0.5, 0.866), "-0.5+0.866j"},
		{complex(-0.5, -0.866), "-0.5-0.866j"},
	}
	for _, tt := range tests {
		if got := formatComplex(tt.in); got != tt.want {
			t.Errorf("formatComplex(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
