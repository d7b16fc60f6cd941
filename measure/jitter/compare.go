package jitter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

// maxLagSeconds bounds the lag search in Compare.
const maxLagSeconds = 0.5

// Comparison reports how a filtered trace differs from its raw input.
type Comparison struct {
	Raw      Result
	Filtered Result

	// AttenuationXdB and AttenuationYdB are the tremor band power reductions
	// per axis. Positive values mean the filter removed tremor.
	AttenuationXdB float64
	AttenuationYdB float64

	// LagSamples is the shift that best aligns filtered with raw, searched
	// over [0, min(n/4, SampleRate/2)] samples. LagSeconds is the same
	// value in seconds.
	LagSamples int
	LagSeconds float64

	// PathLengthRatio is filtered over raw path length, or 0 when the raw
	// trace does not move.
	PathLengthRatio float64
}

// Compare analyzes raw and filtered with the same configuration.
func Compare(raw, filtered Trace, cfg Config) (Comparison, error) {
	if raw.Len() != filtered.Len() {
		return Comparison{}, fmt.Errorf("%w: raw %d samples, filtered %d", ErrLengthMismatch, raw.Len(), filtered.Len())
	}

	rawRes, err := Analyze(raw, cfg)
	if err != nil {
		return Comparison{}, fmt.Errorf("jitter: raw trace: %w", err)
	}
	filtRes, err := Analyze(filtered, cfg)
	if err != nil {
		return Comparison{}, fmt.Errorf("jitter: filtered trace: %w", err)
	}

	sampleRate := normalizeConfig(cfg, raw.Len()).SampleRate
	lag := estimateLag(raw, filtered, sampleRate)

	cmp := Comparison{
		Raw:            rawRes,
		Filtered:       filtRes,
		AttenuationXdB: core.PowerRatioDB(rawRes.X.BandPower, filtRes.X.BandPower),
		AttenuationYdB: core.PowerRatioDB(rawRes.Y.BandPower, filtRes.Y.BandPower),
		LagSamples:     lag,
		LagSeconds:     float64(lag) / sampleRate,
	}
	if rawRes.PathLength > 0 {
		cmp.PathLengthRatio = filtRes.PathLength / rawRes.PathLength
	}

	return cmp, nil
}

// estimateLag returns the delay k maximizing the mean Pearson correlation of
// raw[i] and filtered[i+k] over both axes.
func estimateLag(raw, filtered Trace, sampleRate float64) int {
	n := raw.Len()
	maxLag := n / 4
	if limit := int(math.Round(maxLagSeconds * sampleRate)); limit < maxLag {
		maxLag = limit
	}

	bestLag := 0
	bestScore := math.Inf(-1)
	for k := 0; k <= maxLag; k++ {
		score := (correlation(raw.X[:n-k], filtered.X[k:n]) +
			correlation(raw.Y[:n-k], filtered.Y[k:n])) / 2
		if score > bestScore {
			bestScore = score
			bestLag = k
		}
	}
	return bestLag
}

// correlation is the Pearson correlation of a and b. Constant inputs, which
// have no defined correlation, score 0.
func correlation(a, b []float64) float64 {
	if floats.Max(a) == floats.Min(a) || floats.Max(b) == floats.Min(b) {
		return 0
	}
	c := stat.Correlation(a, b, nil)
	if math.IsNaN(c) {
		return 0
	}
	return c
}
