package tf

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownShape = errors.New("tf: unknown transfer function shape")

// Kind tags one of the supported transfer-function families.
type Kind int

const (
	KindRealPole Kind = iota
	KindSecondOrder
	KindDeadTime
)

var kindNames = map[Kind]string{
	KindRealPole:    "real_pole",
	KindSecondOrder: "second_order",
	KindDeadTime:    "dead_time",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (available: %v)", ErrUnknownShape, name, KindNames())
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindRealPole, KindSecondOrder, KindDeadTime}
}

func KindNames() []string {
	names := make([]string, 0, len(kindNames))
	for _, n := range kindNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Shape is a transfer function G(s) evaluated on the imaginary axis.
type Shape interface {
	Kind() Kind
	// At returns G(jω).
	At(omega float64) complex128
}

// Evaluate returns G(jω) for every point of omega.
func Evaluate(s Shape, omega []float64) []complex128 {
	out := make([]complex128, len(omega))
	for i, w := range omega {
		out[i] = s.At(w)
	}
	return out
}

// Params is the flat parameter record handed over by the slider and HTTP
// layers. Only the fields relevant to Kind are read.
type Params struct {
	Kind  Kind    `yaml:"kind" json:"kind"`
	K     float64 `yaml:"k" json:"k"`
	Tau   float64 `yaml:"tau" json:"tau"`
	N     int     `yaml:"n" json:"n"`
	Zeta  float64 `yaml:"zeta" json:"zeta"`
	Delay float64 `yaml:"delay" json:"delay"`
}

func DefaultParams(k Kind) Params {
	return Params{Kind: k, K: 1, Tau: 1, N: 1, Zeta: 0.5, Delay: 1}
}

// New builds the shape selected by p.Kind. No range checks are applied.
func New(p Params) (Shape, error) {
	switch p.Kind {
	case KindRealPole:
		return RealPole{K: p.K, Tau: p.Tau, N: p.N}, nil
	case KindSecondOrder:
		return SecondOrder{K: p.K, Tau: p.Tau, Zeta: p.Zeta}, nil
	case KindDeadTime:
		return DeadTime{Delay: p.Delay}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownShape, int(p.Kind))
}
