package freq

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	DefaultLowerExp = -2.0
	DefaultUpperExp = 2.0
	DefaultPoints   = 1000
)

var ErrInvalidGrid = errors.New("freq: invalid grid")

// Grid describes a logarithmically spaced set of angular frequencies
// between 10^LowerExp and 10^UpperExp.
type Grid struct {
	LowerExp float64 `yaml:"lower_exp" json:"lower_exp"`
	UpperExp float64 `yaml:"upper_exp" json:"upper_exp"`
	Points   int     `yaml:"points" json:"points"`
}

func Default() Grid {
	return Grid{
		LowerExp: DefaultLowerExp,
		UpperExp: DefaultUpperExp,
		Points:   DefaultPoints,
	}
}

// Omega returns the grid points in rad/s. The last point is exactly
// 10^UpperExp.
func (g Grid) Omega() []float64 {
	if g.Points <= 0 {
		return []float64{}
	}
	out := make([]float64, g.Points)
	if g.Points == 1 {
		out[0] = math.Pow(10, g.LowerExp)
		return out
	}
	floats.Span(out, g.LowerExp, g.UpperExp)
	for i, e := range out {
		out[i] = math.Pow(10, e)
	}
	out[len(out)-1] = math.Pow(10, g.UpperExp)
	return out
}

// Bounds returns the first and last angular frequency of the grid.
func (g Grid) Bounds() (lo, hi float64) {
	return math.Pow(10, g.LowerExp), math.Pow(10, g.UpperExp)
}

func (g Grid) Validate() error {
	switch {
	case math.IsNaN(g.LowerExp) || math.IsInf(g.LowerExp, 0):
		return fmt.Errorf("%w: lower exponent %v", ErrInvalidGrid, g.LowerExp)
	case math.IsNaN(g.UpperExp) || math.IsInf(g.UpperExp, 0):
		return fmt.Errorf("%w: upper exponent %v", ErrInvalidGrid, g.UpperExp)
	case g.UpperExp <= g.LowerExp:
		return fmt.Errorf("%w: upper exponent %v must exceed lower %v", ErrInvalidGrid, g.UpperExp, g.LowerExp)
	case g.Points < 2:
		return fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidGrid, g.Points)
	}
	return nil
}

// Nearest returns the index of the grid point closest to omega on a log
// scale.
func Nearest(omega []float64, target float64) int {
	if len(omega) == 0 {
		return -1
	}
	lt := math.Log10(target)
	best, bestDist := 0, math.Inf(1)
	for i, w := range omega {
		if d := math.Abs(math.Log10(w) - lt); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
