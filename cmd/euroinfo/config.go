package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-tremor/dsp/core"
	"github.com/cwbudde/algo-tremor/dsp/filter/oneeuro"
	"github.com/cwbudde/algo-tremor/measure/jitter"
)

var errConflictingTuning = errors.New("preset and slider are mutually exclusive")

// fileConfig is the YAML tuning file layout.
type fileConfig struct {
	Frequency        float64  `yaml:"frequency"`
	Preset           string   `yaml:"preset"`
	Slider           *float64 `yaml:"slider"`
	MinCutoff        float64  `yaml:"minCutoff"`
	Beta             float64  `yaml:"beta"`
	DerivativeCutoff float64  `yaml:"derivativeCutoff"`
	Band             struct {
		Low  float64 `yaml:"low"`
		High float64 `yaml:"high"`
	} `yaml:"band"`
}

func loadConfigFile(path string) (fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return decodeConfig(f)
}

func decodeConfig(r io.Reader) (fileConfig, error) {
	var fc fileConfig

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return fc, nil
}

// overrides holds command-line values that take precedence over the file.
// NaN and empty values mean "not set".
type overrides struct {
	frequency float64
	preset    string
	slider    float64
}

// resolveParams merges defaults, the tuning file and flag overrides, in that
// order.
func resolveParams(fc fileConfig, ov overrides) (oneeuro.Params, error) {
	p := oneeuro.DefaultParams()

	if fc.Frequency > 0 {
		p.Frequency = fc.Frequency
	}
	if fc.Preset != "" && fc.Slider != nil {
		return p, fmt.Errorf("config: %w", errConflictingTuning)
	}
	if fc.Preset != "" {
		preset, err := oneeuro.ParsePreset(fc.Preset)
		if err != nil {
			return p, fmt.Errorf("config: %w", err)
		}
		p = p.WithTuning(oneeuro.PresetParameters(preset))
	}
	if fc.Slider != nil {
		p = p.WithTuning(oneeuro.ParametersForSlider(*fc.Slider))
	}
	if fc.MinCutoff > 0 {
		p.MinCutoff = fc.MinCutoff
	}
	if fc.Beta > 0 {
		p.Beta = fc.Beta
	}
	if fc.DerivativeCutoff > 0 {
		p.DerivativeCutoff = fc.DerivativeCutoff
	}

	if ov.frequency > 0 {
		p.Frequency = ov.frequency
	}
	if ov.preset != "" && !math.IsNaN(ov.slider) {
		return p, errConflictingTuning
	}
	if ov.preset != "" {
		preset, err := oneeuro.ParsePreset(ov.preset)
		if err != nil {
			return p, err
		}
		p = p.WithTuning(oneeuro.PresetParameters(preset))
	}
	if !math.IsNaN(ov.slider) {
		p = p.WithTuning(oneeuro.ParametersForSlider(ov.slider))
	}

	return p, nil
}

// analysisConfig returns the jitter configuration for raw. The sample rate is
// estimated from the trace timestamps; p.Frequency is only used when the
// trace spans no time. fftSize 0 selects an automatic size.
func analysisConfig(fc fileConfig, p oneeuro.Params, raw jitter.Trace, fftSize int) jitter.Config {
	rate := traceRate(raw)
	if rate <= 0 {
		rate = p.Frequency
	}

	cfg := jitter.ConfigFromStream(core.ApplyStreamOptions(
		core.WithFrequency(rate),
		core.WithBlockSize(fftSize),
	))
	if fc.Band.High > fc.Band.Low && fc.Band.Low >= 0 {
		cfg.BandLowHz = fc.Band.Low
		cfg.BandHighHz = fc.Band.High
	}
	return cfg
}

// traceRate returns the mean sampling rate of tr in Hz, or 0 when it cannot
// be determined.
func traceRate(tr jitter.Trace) float64 {
	n := tr.Len()
	if n < 2 {
		return 0
	}
	span := tr.T[n-1] - tr.T[0]
	if span <= 0 || !core.IsFinite(span) {
		return 0
	}
	return float64(n-1) / span
}
