package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Timestamps returns length uniformly spaced timestamps in seconds starting
// at start.
func Timestamps(start, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + float64(i)/sampleRate
	}
	return out
}

// Tremor describes a synthetic pointer gesture: a straight movement from
// (FromX, FromY) to (ToX, ToY) overlaid with a sinusoidal tremor and seeded
// white noise on both axes.
type Tremor struct {
	SampleRate float64
	Length     int
	Start      float64

	FromX, FromY float64
	ToX, ToY     float64

	TremorHz        float64
	TremorAmplitude float64
	NoiseAmplitude  float64
	Seed            int64
}

// Trace generates timestamps and raw x/y positions for tr.
func (tr Tremor) Trace() (ts, xs, ys []float64) {
	ts = Timestamps(tr.Start, tr.SampleRate, tr.Length)
	tremorX := DeterministicSine(tr.TremorHz, tr.SampleRate, tr.TremorAmplitude, tr.Length)
	noiseX := DeterministicNoise(tr.Seed, tr.NoiseAmplitude, tr.Length)
	noiseY := DeterministicNoise(tr.Seed+1, tr.NoiseAmplitude, tr.Length)

	xs = make([]float64, tr.Length)
	ys = make([]float64, tr.Length)
	for i := range xs {
		progress := 0.0
		if tr.Length > 1 {
			progress = float64(i) / float64(tr.Length-1)
		}
		// Vertical tremor lags horizontal by a quarter period.
		tremorY := tr.TremorAmplitude * math.Cos(2*math.Pi*tr.TremorHz*float64(i)/tr.SampleRate)
		xs[i] = core.Lerp(tr.FromX, tr.ToX, progress) + tremorX[i] + noiseX[i]
		ys[i] = core.Lerp(tr.FromY, tr.ToY, progress) + tremorY + noiseY[i]
	}
	return ts, xs, ys
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
