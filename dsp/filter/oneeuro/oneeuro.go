package oneeuro

import (
	"math"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

// DefaultFrequency is the stream rate the presets are designed for, in Hz.
const DefaultFrequency = core.DefaultStreamFrequency

// alphaEpsilon keeps Alpha finite when the elapsed time is zero.
const alphaEpsilon = 1e-10

// Params holds the complete filter configuration.
type Params struct {
	// Frequency is the expected sampling rate in Hz. Elapsed time is
	// multiplied by it before computing smoothing factors.
	Frequency float64
	// MinCutoff is the cutoff for the position signal.
	MinCutoff float64
	// Beta is the speed coefficient. It is stored but not used by Update.
	Beta float64
	// DerivativeCutoff is the cutoff for the velocity estimate.
	DerivativeCutoff float64
}

// DefaultParams returns the balanced preset at DefaultFrequency.
func DefaultParams() Params {
	return Params{Frequency: DefaultFrequency}.WithTuning(PresetParameters(PresetBalanced))
}

// Tuning returns the preset-controlled part of p.
func (p Params) Tuning() Tuning {
	return Tuning{
		MinCutoff:        p.MinCutoff,
		Beta:             p.Beta,
		DerivativeCutoff: p.DerivativeCutoff,
	}
}

// WithTuning returns a copy of p with the cutoffs and beta replaced by t.
// Frequency is kept.
func (p Params) WithTuning(t Tuning) Params {
	p.MinCutoff = t.MinCutoff
	p.Beta = t.Beta
	p.DerivativeCutoff = t.DerivativeCutoff
	return p
}

// State contains the filter's runtime state for save/restore workflows.
type State struct {
	X, Y     float64
	DX, DY   float64
	LastTime float64
}

// Filter smooths a 2D pointer stream.
//
// A Filter is not safe for concurrent use. Update mutates internal state and
// must be called from a single producer in timestamp order; callers that
// share a Filter between goroutines must serialize access themselves.
type Filter struct {
	params Params
	state  State
}

// New creates a filter with zeroed state. Frequency, MinCutoff and
// DerivativeCutoff must be positive; this is not validated.
func New(p Params) *Filter {
	return &Filter{params: p}
}

// NewFromPreset creates a filter tuned by preset at the given frequency.
func NewFromPreset(frequency float64, preset Preset) *Filter {
	return New(Params{Frequency: frequency}.WithTuning(PresetParameters(preset)))
}

// NewFromSlider creates a filter tuned by a slider position in [0, 1] at the
// given frequency. Positions outside the range are clamped.
func NewFromSlider(frequency, position float64) *Filter {
	return New(Params{Frequency: frequency}.WithTuning(ParametersForSlider(position)))
}

// Alpha returns the smoothing factor for a normalized elapsed time dt and a
// cutoff frequency. It tends to 0 as dt approaches 0 and to 1 as dt grows,
// and increases with cutoff for a fixed dt > 0.
func Alpha(dt, cutoff float64) float64 {
	te := 1 / (cutoff * 2 * math.Pi)
	return 1 / (1 + te/(dt+alphaEpsilon))
}

// Update filters one raw sample taken at timestamp (seconds) and returns the
// filtered position.
func (f *Filter) Update(x, y, timestamp float64) (float64, float64) {
	dt := math.Max(0, timestamp-f.state.LastTime)
	f.state.LastTime = timestamp

	normalizedDt := dt * f.params.Frequency
	alpha := Alpha(normalizedDt, f.params.MinCutoff)
	alphaD := Alpha(normalizedDt, f.params.DerivativeCutoff)

	s := &f.state
	fx := alpha*x + (1-alpha)*(s.X+alphaD*s.DX)
	fy := alpha*y + (1-alpha)*(s.Y+alphaD*s.DY)

	s.DX = alphaD*(fx-s.X) + (1-alphaD)*s.DX
	s.DY = alphaD*(fy-s.Y) + (1-alphaD)*s.DY
	s.X = fx
	s.Y = fy

	return fx, fy
}

// ProcessBlock filters a recorded trace in place. xs and ys are overwritten
// with filtered positions; ts holds the sample timestamps in seconds. Only the
// first min(len(xs), len(ys), len(ts)) samples are processed.
func (f *Filter) ProcessBlock(xs, ys, ts []float64) {
	n := core.CommonLen(xs, ys, ts)
	for i := 0; i < n; i++ {
		xs[i], ys[i] = f.Update(xs[i], ys[i], ts[i])
	}
}

// ApplyPreset retunes the filter in place. Frequency and state are kept, so
// only smoothing behavior from the next Update onward changes.
func (f *Filter) ApplyPreset(preset Preset) {
	f.params = f.params.WithTuning(PresetParameters(preset))
}

// ApplySliderPosition retunes the filter in place from a slider position in
// [0, 1]. Frequency and state are kept.
func (f *Filter) ApplySliderPosition(position float64) {
	f.params = f.params.WithTuning(ParametersForSlider(position))
}

// SetFrequency updates the expected stream rate. Non-positive values are
// ignored.
func (f *Filter) SetFrequency(hz float64) {
	if hz > 0 {
		f.params.Frequency = hz
	}
}

// Reset zeroes position, velocity and the last timestamp. Parameters are
// untouched.
func (f *Filter) Reset() {
	f.state = State{}
}

// Params returns the current configuration.
func (f *Filter) Params() Params { return f.params }

// Frequency returns the expected stream rate in Hz.
func (f *Filter) Frequency() float64 { return f.params.Frequency }

// State returns a copy of the runtime state.
func (f *Filter) State() State { return f.state }

// SetState restores runtime state previously captured with State.
func (f *Filter) SetState(s State) { f.state = s }
