package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/bodelab/internal/tf"
)

var Presets = map[string]map[string]tf.Params{
	"real_pole": {
		"first_order": {Kind: tf.KindRealPole, K: 1, Tau: 1, N: 1},
		"slow_lag":    {Kind: tf.KindRealPole, K: 1, Tau: 10, N: 1},
		"triple_pole": {Kind: tf.KindRealPole, K: 1, Tau: 1, N: 3},
		"double_zero": {Kind: tf.KindRealPole, K: 1, Tau: 1, N: -2},
		"inverting":   {Kind: tf.KindRealPole, K: -1, Tau: 1, N: 1},
		"static_gain": {Kind: tf.KindRealPole, K: 2, Tau: 1, N: 0},
	},
	"second_order": {
		"undamped":    {Kind: tf.KindSecondOrder, K: 1, Tau: 1, Zeta: 0},
		"resonant":    {Kind: tf.KindSecondOrder, K: 1, Tau: 1, Zeta: 0.1},
		"underdamped": {Kind: tf.KindSecondOrder, K: 1, Tau: 1, Zeta: 0.5},
		"critical":    {Kind: tf.KindSecondOrder, K: 1, Tau: 1, Zeta: 1},
		"overdamped":  {Kind: tf.KindSecondOrder, K: 1, Tau: 1, Zeta: 1.1},
	},
	"dead_time": {
		"unit":  {Kind: tf.KindDeadTime, Delay: 1},
		"short": {Kind: tf.KindDeadTime, Delay: 0.2},
		"long":  {Kind: tf.KindDeadTime, Delay: 3},
	},
}

func GetPreset(shape, preset string) (tf.Params, error) {
	shapePresets, ok := Presets[shape]
	if !ok {
		return tf.Params{}, fmt.Errorf("%w: no presets for shape %q", ErrUnknownPreset, shape)
	}
	p, ok := shapePresets[preset]
	if !ok {
		return tf.Params{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, preset, ListPresets(shape))
	}
	return p, nil
}

func ListPresets(shape string) []string {
	shapePresets, ok := Presets[shape]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(shapePresets))
	for name := range shapePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
