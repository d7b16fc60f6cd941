package jitter

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

// MinSamples is the shortest trace Analyze accepts.
const MinSamples = 8

const (
	defaultBandLowHz  = 4.0
	defaultBandHighHz = 12.0
)

var (
	// ErrEmptyTrace is returned for traces without samples.
	ErrEmptyTrace = errors.New("jitter: empty trace")
	// ErrLengthMismatch is returned when T, X and Y (or two compared traces)
	// differ in length.
	ErrLengthMismatch = errors.New("jitter: length mismatch")
	// ErrTooShort is returned for traces shorter than MinSamples.
	ErrTooShort = errors.New("jitter: trace too short")
)

// Config holds analysis parameters.
type Config struct {
	// SampleRate is the trace sampling rate in Hz. 0 selects 60 Hz.
	SampleRate float64
	// FFTSize is the transform length. 0, or a size smaller than the trace,
	// selects the next power of two that holds the whole trace.
	FFTSize int
	// BandLowHz and BandHighHz bound the tremor band (inclusive).
	BandLowHz  float64
	BandHighHz float64
}

// DefaultConfig returns a 60 Hz configuration with a 4–12 Hz tremor band.
func DefaultConfig() Config {
	return ConfigFromStream(core.DefaultStreamConfig())
}

// ConfigFromStream builds a Config from shared stream settings.
func ConfigFromStream(sc core.StreamConfig) Config {
	return Config{
		SampleRate: sc.Frequency,
		FFTSize:    sc.BlockSize,
		BandLowHz:  defaultBandLowHz,
		BandHighHz: defaultBandHighHz,
	}
}

// AxisResult holds per-axis measurements.
type AxisResult struct {
	// BandPower is the spectral power inside the tremor band.
	BandPower float64
	// TotalPower is the spectral power of all non-DC bins.
	TotalPower float64
	// BandRatio is BandPower/TotalPower, or 0 for a motionless axis.
	BandRatio float64
	// PeakHz is the frequency of the strongest bin inside the band.
	PeakHz float64
	// RMSVelocity is the root-mean-square speed along the axis in units/s.
	RMSVelocity float64
	// VelocityStdDev is the standard deviation of the axis velocity.
	VelocityStdDev float64
}

// Result holds the analysis of one trace.
type Result struct {
	X, Y AxisResult
	// PathLength is the summed Euclidean distance between samples.
	PathLength float64
	// Duration is the time span covered by the trace in seconds.
	Duration float64
	FFTSize  int
	BinHz    float64
}

// Analyze measures tremor in tr.
func Analyze(tr Trace, cfg Config) (Result, error) {
	if err := tr.validate(); err != nil {
		return Result{}, err
	}

	n := tr.Len()
	cfg = normalizeConfig(cfg, n)

	a, err := newAnalyzer(cfg, n)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		PathLength: pathLength(tr.X, tr.Y),
		Duration:   tr.T[n-1] - tr.T[0],
		FFTSize:    cfg.FFTSize,
		BinHz:      a.binHz,
	}

	if res.X, err = a.axis(tr.X, tr.T); err != nil {
		return Result{}, fmt.Errorf("jitter: x axis: %w", err)
	}
	if res.Y, err = a.axis(tr.Y, tr.T); err != nil {
		return Result{}, fmt.Errorf("jitter: y axis: %w", err)
	}

	return res, nil
}

func normalizeConfig(cfg Config, n int) Config {
	if cfg.SampleRate <= 0 || !core.IsFinite(cfg.SampleRate) {
		cfg.SampleRate = core.DefaultStreamFrequency
	}
	if cfg.FFTSize < n {
		cfg.FFTSize = n
	}
	cfg.FFTSize = nextPowerOf2(cfg.FFTSize)

	if cfg.BandLowHz < 0 {
		cfg.BandLowHz = 0
	}
	if cfg.BandHighHz <= cfg.BandLowHz {
		cfg.BandLowHz = defaultBandLowHz
		cfg.BandHighHz = defaultBandHighHz
	}
	return cfg
}

type analyzer struct {
	cfg    Config
	binHz  float64
	plan   *algofft.Plan[complex128]
	window []float64
	norm   float64

	buf      []float64
	spectrum []complex128
	fftOut   []complex128
	re, im   []float64
	power    []float64
}

func newAnalyzer(cfg Config, n int) (*analyzer, error) {
	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("jitter: fft plan (size %d): %w", cfg.FFTSize, err)
	}

	w := hann(n)
	bins := cfg.FFTSize/2 + 1

	return &analyzer{
		cfg:      cfg,
		binHz:    cfg.SampleRate / float64(cfg.FFTSize),
		plan:     plan,
		window:   w,
		norm:     cfg.SampleRate * floats.Dot(w, w),
		buf:      make([]float64, n),
		spectrum: make([]complex128, cfg.FFTSize),
		fftOut:   make([]complex128, cfg.FFTSize),
		re:       make([]float64, bins),
		im:       make([]float64, bins),
		power:    make([]float64, bins),
	}, nil
}

func (a *analyzer) axis(pos, ts []float64) (AxisResult, error) {
	if err := a.powerSpectrum(pos); err != nil {
		return AxisResult{}, err
	}

	var res AxisResult
	res.TotalPower = floats.Sum(a.power[1:])

	lo, hi := a.bandBins()
	if lo <= hi {
		band := a.power[lo : hi+1]
		res.BandPower = floats.Sum(band)
		if res.BandPower > 0 {
			res.PeakHz = float64(lo+floats.MaxIdx(band)) * a.binHz
		}
	}
	if res.TotalPower > 0 {
		res.BandRatio = res.BandPower / res.TotalPower
	}

	v := velocity(pos, ts)
	if len(v) > 0 {
		res.RMSVelocity = math.Sqrt(floats.Dot(v, v) / float64(len(v)))
	}
	if len(v) > 1 {
		res.VelocityStdDev = stat.StdDev(v, nil)
	}

	return res, nil
}

// powerSpectrum fills a.power with the one-sided power spectral density of
// the mean-removed, windowed positions.
func (a *analyzer) powerSpectrum(pos []float64) error {
	buf := a.buf
	copy(buf, pos)
	floats.AddConst(-stat.Mean(buf, nil), buf)
	vecmath.MulBlockInPlace(buf, a.window)

	for i := range a.spectrum {
		a.spectrum[i] = 0
	}
	for i, v := range buf {
		a.spectrum[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.fftOut, a.spectrum); err != nil {
		return fmt.Errorf("fft: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.fftOut[k])
		a.im[k] = imag(a.fftOut[k])
	}
	vecmath.Power(a.power, a.re, a.im)

	if a.norm <= 0 {
		core.Zero(a.power)
		return nil
	}

	last := len(a.power) - 1
	for k := range a.power {
		scale := 2 / a.norm
		if k == 0 || k == last {
			scale = 1 / a.norm
		}
		a.power[k] = core.FlushDenormals(a.power[k] * scale)
	}
	return nil
}

func (a *analyzer) bandBins() (int, int) {
	last := len(a.power) - 1
	lo := int(math.Ceil(a.cfg.BandLowHz / a.binHz))
	hi := int(math.Floor(a.cfg.BandHighHz / a.binHz))
	if lo < 1 {
		lo = 1
	}
	if hi > last {
		hi = last
	}
	return lo, hi
}

// velocity returns finite differences of pos over time. Sample pairs without
// positive elapsed time are skipped.
func velocity(pos, ts []float64) []float64 {
	out := make([]float64, 0, len(pos))
	for i := 1; i < len(pos); i++ {
		dt := ts[i] - ts[i-1]
		if dt <= 0 {
			continue
		}
		out = append(out, (pos[i]-pos[i-1])/dt)
	}
	return out
}

func pathLength(xs, ys []float64) float64 {
	steps := make([]float64, 0, len(xs))
	for i := 1; i < len(xs); i++ {
		steps = append(steps, math.Hypot(xs[i]-xs[i-1], ys[i]-ys[i-1]))
	}
	return floats.Sum(steps)
}

// hann returns a symmetric Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
