package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/bodelab/internal/freq"
	"github.com/san-kum/bodelab/internal/tf"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMagnitudeMin = 1e-4
	DefaultMagnitudeMax = 1e2
	DefaultPhaseMin     = -7.0
	DefaultPhaseMax     = 5.0
	DefaultPoleWindow   = 3.0
)

var (
	ErrInvalidGrid   = errors.New("config: invalid frequency grid")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

// Config carries everything that used to be implicit global state: the
// frequency grid, the fixed axis limits, the slider declarations and the
// starting parameters.
type Config struct {
	Grid     freq.Grid            `yaml:"grid"`
	Limits   Limits               `yaml:"limits"`
	Controls map[string][]Control `yaml:"controls"`
	Params   tf.Params            `yaml:"params"`
}

type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Limits are the fixed axis ranges that keep plots comparable while a
// parameter is swept.
type Limits struct {
	Magnitude  Range   `yaml:"magnitude" json:"magnitude"`
	Phase      Range   `yaml:"phase" json:"phase"`
	PoleWindow float64 `yaml:"pole_window" json:"pole_window"`
}

func DefaultLimits() Limits {
	return Limits{
		Magnitude:  Range{Min: DefaultMagnitudeMin, Max: DefaultMagnitudeMax},
		Phase:      Range{Min: DefaultPhaseMin, Max: DefaultPhaseMax},
		PoleWindow: DefaultPoleWindow,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Grid:     freq.Default(),
		Limits:   DefaultLimits(),
		Controls: DefaultControls(),
		Params:   tf.DefaultParams(tf.KindRealPole),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the parts of a config file that would make every plot
// meaningless. Transfer-function parameters are not checked.
func (c *Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGrid, err)
	}
	if c.Limits.Magnitude.Min <= 0 || c.Limits.Magnitude.Max <= c.Limits.Magnitude.Min {
		return fmt.Errorf("config: magnitude limits must satisfy 0 < min < max, got %v", c.Limits.Magnitude)
	}
	if c.Limits.Phase.Max <= c.Limits.Phase.Min {
		return fmt.Errorf("config: phase limits must satisfy min < max, got %v", c.Limits.Phase)
	}
	if c.Limits.PoleWindow <= 0 {
		return fmt.Errorf("config: pole window must be positive, got %v", c.Limits.PoleWindow)
	}
	for shape, controls := range c.Controls {
		for _, ctl := range controls {
			if ctl.Max < ctl.Min || ctl.Step <= 0 {
				return fmt.Errorf("config: control %s/%s has invalid range or step", shape, ctl.Name)
			}
		}
	}
	return nil
}

// ControlsFor returns the sliders declared for a shape, falling back to the
// built-in declaration.
func (c *Config) ControlsFor(k tf.Kind) []Control {
	if controls, ok := c.Controls[k.String()]; ok && len(controls) > 0 {
		return controls
	}
	return DefaultControls()[k.String()]
}
