package oneeuro

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

// ErrUnknownPreset is returned by ParsePreset for unrecognized names.
var ErrUnknownPreset = errors.New("oneeuro: unknown preset")

// Tuning is the preset-controlled part of Params.
type Tuning struct {
	MinCutoff        float64
	Beta             float64
	DerivativeCutoff float64
}

// Preset selects one of the fixed tunings.
type Preset int

const (
	// PresetFineControl smooths the most. Suited to precise pointing with
	// pronounced tremor.
	PresetFineControl Preset = iota
	// PresetBalanced trades smoothing against lag evenly.
	PresetBalanced
	// PresetAggressive tracks the raw pointer most closely.
	PresetAggressive
)

var presetTable = [...]Tuning{
	PresetFineControl: {MinCutoff: 1.0, Beta: 0.1, DerivativeCutoff: 1.0},
	PresetBalanced:    {MinCutoff: 2.0, Beta: 0.3, DerivativeCutoff: 2.0},
	PresetAggressive:  {MinCutoff: 3.0, Beta: 0.5, DerivativeCutoff: 3.0},
}

var presetNames = [...]string{
	PresetFineControl: "fineControl",
	PresetBalanced:    "balanced",
	PresetAggressive:  "aggressive",
}

// Slider endpoints, matching PresetFineControl (0) and PresetAggressive (1).
const (
	sliderMinCutoffBase   = 1.0
	sliderMinCutoffSpan   = 2.0
	sliderBetaBase        = 0.1
	sliderBetaSpan        = 0.4
	sliderDerivCutoffBase = 1.0
	sliderDerivCutoffSpan = 2.0
)

// Presets returns all presets in order from most to least smoothing.
func Presets() []Preset {
	return []Preset{PresetFineControl, PresetBalanced, PresetAggressive}
}

// Valid reports whether p is one of the defined presets.
func (p Preset) Valid() bool {
	return p >= PresetFineControl && p <= PresetAggressive
}

func (p Preset) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return presetNames[p]
}

// ParsePreset resolves a preset name. Matching ignores case and the
// separators '-', '_' and ' ', so "fine-control" and "FINE_CONTROL" both
// select PresetFineControl.
func ParsePreset(name string) (Preset, error) {
	key := normalizePresetName(name)
	for _, p := range Presets() {
		if normalizePresetName(presetNames[p]) == key {
			return p, nil
		}
	}
	return PresetBalanced, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

func normalizePresetName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
}

// PresetParameters returns the fixed tuning of p. Values outside the defined
// presets fall back to PresetBalanced.
func PresetParameters(p Preset) Tuning {
	if !p.Valid() {
		p = PresetBalanced
	}
	return presetTable[p]
}

// ParametersForSlider maps a slider position to a tuning by linear
// interpolation between PresetFineControl at 0 and PresetAggressive at 1.
// The position is clamped to [0, 1].
func ParametersForSlider(position float64) Tuning {
	p := core.Clamp(position, 0, 1)
	return Tuning{
		MinCutoff:        sliderMinCutoffBase + p*sliderMinCutoffSpan,
		Beta:             sliderBetaBase + p*sliderBetaSpan,
		DerivativeCutoff: sliderDerivCutoffBase + p*sliderDerivCutoffSpan,
	}
}
