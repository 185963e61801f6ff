package config

import (
	"math"

	"github.com/san-kum/bodelab/internal/tf"
)

// Control declares one bounded slider bound to a transfer-function
// parameter. Name is one of k, tau, n, zeta, delay.
type Control struct {
	Name  string  `yaml:"name" json:"name"`
	Label string  `yaml:"label" json:"label"`
	Min   float64 `yaml:"min" json:"min"`
	Max   float64 `yaml:"max" json:"max"`
	Step  float64 `yaml:"step" json:"step"`
}

func DefaultControls() map[string][]Control {
	k := Control{Name: "k", Label: "K", Min: -2, Max: 2, Step: 0.1}
	tau := Control{Name: "tau", Label: "τ", Min: 0.1, Max: 10, Step: 0.1}
	return map[string][]Control{
		tf.KindRealPole.String(): {
			k, tau,
			{Name: "n", Label: "n", Min: -3, Max: 3, Step: 1},
		},
		tf.KindSecondOrder.String(): {
			k, tau,
			{Name: "zeta", Label: "ζ", Min: 0, Max: 1.1, Step: 0.05},
		},
		tf.KindDeadTime.String(): {
			{Name: "delay", Label: "D", Min: 0, Max: 5, Step: 0.1},
		},
	}
}

// Value reads the parameter this control is bound to.
func (c Control) Value(p tf.Params) float64 {
	switch c.Name {
	case "k":
		return p.K
	case "tau":
		return p.Tau
	case "n":
		return float64(p.N)
	case "zeta":
		return p.Zeta
	case "delay":
		return p.Delay
	}
	return math.NaN()
}

// Set returns p with the bound parameter replaced by v clamped to the
// control's range. Integer parameters are rounded.
func (c Control) Set(p tf.Params, v float64) tf.Params {
	v = math.Max(c.Min, math.Min(c.Max, v))
	switch c.Name {
	case "k":
		p.K = v
	case "tau":
		p.Tau = v
	case "n":
		p.N = int(math.Round(v))
	case "zeta":
		p.Zeta = v
	case "delay":
		p.Delay = v
	}
	return p
}

// Nudge moves the bound parameter by steps increments. The result is
// snapped to the step grid anchored at Min so repeated nudges do not
// accumulate rounding error.
func (c Control) Nudge(p tf.Params, steps int) tf.Params {
	v := c.Value(p) + float64(steps)*c.Step
	if c.Step > 0 {
		v = c.Min + math.Round((v-c.Min)/c.Step)*c.Step
	}
	return c.Set(p, v)
}
