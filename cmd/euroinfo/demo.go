package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-tremor/measure/jitter"
)

const (
	demoSeconds   = 4.0
	demoTremorHz  = 8.0
	demoTremorAmp = 3.0
	demoNoiseAmp  = 0.5
	demoSeed      = 1

	// maxDemoRate bounds the synthetic trace at 40k samples per axis.
	maxDemoRate = 10000.0
)

var errDemoRate = errors.New("demo sample rate out of range")

// demoTrace synthesizes a slow diagonal drag across a 1920x1080 screen with
// an 8 Hz hand tremor and sensor noise, sampled at rate Hz. The output is
// deterministic for a given rate. Rates outside (0, 10 kHz] are rejected.
func demoTrace(rate float64) (jitter.Trace, error) {
	if !(rate > 0 && rate <= maxDemoRate) {
		return jitter.Trace{}, fmt.Errorf("%w: %g Hz (want 0 < rate <= %g)", errDemoRate, rate, maxDemoRate)
	}
	n := int(demoSeconds * rate)
	rng := rand.New(rand.NewSource(demoSeed))

	tr := jitter.Trace{
		T: make([]float64, n),
		X: make([]float64, n),
		Y: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i) / rate
		progress := t / demoSeconds
		phase := 2 * math.Pi * demoTremorHz * t

		tr.T[i] = t
		tr.X[i] = 200 + 1200*progress + demoTremorAmp*math.Sin(phase) + demoNoiseAmp*(2*rng.Float64()-1)
		tr.Y[i] = 150 + 600*progress + demoTremorAmp*math.Cos(phase) + demoNoiseAmp*(2*rng.Float64()-1)
	}
	return tr, nil
}
