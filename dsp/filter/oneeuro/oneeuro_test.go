package oneeuro

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tremor/internal/testutil"
)

func scenarioParams() Params {
	return Params{Frequency: 60, MinCutoff: 1, Beta: 0.1, DerivativeCutoff: 1}
}

func TestUpdateFirstSampleAtZeroIsZero(t *testing.T) {
	f := New(scenarioParams())

	x, y := f.Update(0, 0, 0)
	if x != 0 || y != 0 {
		t.Fatalf("Update(0, 0, 0) = (%v, %v), want exactly (0, 0)", x, y)
	}
}

func TestUpdateOneFrameStep(t *testing.T) {
	f := New(scenarioParams())
	f.Update(0, 0, 0)

	x, y := f.Update(10, 10, 1.0/60)

	// normalizedDt is one frame, te = 1/(2*pi), alpha ~ 0.863.
	want := 10 / (1 + 1/(2*math.Pi))
	testutil.RequireNearlyEqual(t, "x", x, want, 1e-6)
	testutil.RequireNearlyEqual(t, "y", y, want, 1e-6)
	testutil.RequireNearlyEqual(t, "x rounded", x, 8.63, 5e-3)
}

func TestUpdateClampsNegativeElapsedTime(t *testing.T) {
	f := New(scenarioParams())
	f.Update(0, 0, 0)
	prevX, prevY := f.Update(10, -10, 1)

	x, y := f.Update(500, 500, 0.5)
	testutil.RequireFinite(t, x, y)

	// Zero elapsed time keeps the output on the previous state.
	testutil.RequireNearlyEqual(t, "x", x, prevX, 1e-6)
	testutil.RequireNearlyEqual(t, "y", y, prevY, 1e-6)

	if got := f.State().LastTime; got != 0.5 {
		t.Fatalf("LastTime = %v, want 0.5 even for out-of-order samples", got)
	}
}

func TestUpdateRepeatedTimestampStaysFinite(t *testing.T) {
	f := New(scenarioParams())

	for i := 0; i < 4; i++ {
		x, y := f.Update(3, -7, 0.25)
		testutil.RequireFinite(t, x, y)
	}

	s := f.State()
	testutil.RequireFinite(t, s.X, s.Y, s.DX, s.DY)
}

func TestUpdateAlwaysFinite(t *testing.T) {
	timestamps := testutil.DeterministicNoise(11, 5, 512)
	xs := testutil.DeterministicNoise(12, 1e6, 512)
	ys := testutil.DeterministicNoise(13, 1e6, 512)

	for _, preset := range Presets() {
		t.Run(preset.String(), func(t *testing.T) {
			f := NewFromPreset(DefaultFrequency, preset)
			for i := range xs {
				x, y := f.Update(xs[i], ys[i], timestamps[i])
				if !(math.Abs(x) < math.Inf(1)) || !(math.Abs(y) < math.Inf(1)) {
					t.Fatalf("sample %d: non-finite output (%v, %v)", i, x, y)
				}
			}
		})
	}
}

func TestUpdateInvariants(t *testing.T) {
	f := New(scenarioParams())

	x1, y1 := f.Update(10, 10, 0)
	if math.Abs(x1) > 10 || math.Abs(y1) > 10 {
		t.Fatalf("first output (%v, %v) exceeds input magnitude", x1, y1)
	}

	x2, y2 := f.Update(10.1, 10.1, 0.01)
	if math.Abs(x2-x1) >= 10 || math.Abs(y2-y1) >= 10 {
		t.Fatalf("jump from (%v, %v) to (%v, %v)", x1, y1, x2, y2)
	}

	x3, y3 := f.Update(11, 11, 0.02)
	if x3 < x2 || y3 < y2 {
		t.Fatalf("step response not monotonic: (%v, %v) after (%v, %v)", x3, y3, x2, y2)
	}
}

func TestUpdateConvergesOnConstantInput(t *testing.T) {
	f := NewFromPreset(DefaultFrequency, PresetBalanced)

	var x, y float64
	for i := 0; i < 600; i++ {
		x, y = f.Update(120, -45, float64(i+1)/DefaultFrequency)
	}

	testutil.RequireNearlyEqual(t, "x", x, 120, 1e-6)
	testutil.RequireNearlyEqual(t, "y", y, -45, 1e-6)
}

func TestUpdateIgnoresBeta(t *testing.T) {
	lo := scenarioParams()
	hi := scenarioParams()
	hi.Beta = 50

	a := New(lo)
	b := New(hi)

	ts, xs, ys := testutil.Tremor{
		SampleRate: 60, Length: 120, ToX: 400, ToY: 200,
		TremorHz: 8, TremorAmplitude: 3, NoiseAmplitude: 1, Seed: 5,
	}.Trace()

	for i := range ts {
		ax, ay := a.Update(xs[i], ys[i], ts[i])
		bx, by := b.Update(xs[i], ys[i], ts[i])
		if ax != bx || ay != by {
			t.Fatalf("sample %d: beta changed output: (%v, %v) vs (%v, %v)", i, ax, ay, bx, by)
		}
	}
}

func TestColdStartAttenuatesFirstSampleNearZero(t *testing.T) {
	f := New(scenarioParams())

	x, _ := f.Update(10, 10, 0)
	if x > 1e-6 {
		t.Fatalf("first output at t=0 = %v, want heavily attenuated", x)
	}

	g := New(scenarioParams())
	x, _ = g.Update(10, 10, 1)
	if x < 9.9 {
		t.Fatalf("first output at t=1 = %v, want close to raw input", x)
	}
}

func TestResetRestoresFreshBehavior(t *testing.T) {
	ts, xs, ys := testutil.Tremor{
		SampleRate: 60, Length: 90, Start: 0.5, FromX: 10, ToX: 300, FromY: 50, ToY: -20,
		TremorHz: 6, TremorAmplitude: 4, NoiseAmplitude: 0.8, Seed: 9,
	}.Trace()

	used := NewFromPreset(DefaultFrequency, PresetAggressive)
	for i := range ts {
		used.Update(xs[i]*2, ys[i]*3, ts[i]*0.5)
	}
	used.Reset()

	if s := used.State(); s != (State{}) {
		t.Fatalf("State() after Reset = %#v, want zero", s)
	}

	fresh := NewFromPreset(DefaultFrequency, PresetAggressive)
	for i := range ts {
		gx, gy := used.Update(xs[i], ys[i], ts[i])
		wx, wy := fresh.Update(xs[i], ys[i], ts[i])
		if gx != wx || gy != wy {
			t.Fatalf("sample %d mismatch after reset: got (%v, %v) want (%v, %v)", i, gx, gy, wx, wy)
		}
	}
}

func TestResetKeepsParams(t *testing.T) {
	f := NewFromSlider(120, 0.75)
	want := f.Params()

	f.Update(1, 2, 3)
	f.Reset()

	if got := f.Params(); got != want {
		t.Fatalf("Params() after Reset = %#v, want %#v", got, want)
	}
}

func TestApplyPresetKeepsStateAndFrequency(t *testing.T) {
	f := New(Params{Frequency: 120, MinCutoff: 2, Beta: 0.3, DerivativeCutoff: 2})

	f.Update(5, 5, 0)
	x2, y2 := f.Update(5.1, 5.1, 0.1)
	before := f.State()

	f.ApplyPreset(PresetAggressive)

	if got := f.State(); got != before {
		t.Fatalf("State() changed by ApplyPreset: got %#v, want %#v", got, before)
	}
	if got := f.Frequency(); got != 120 {
		t.Fatalf("Frequency() = %v, want 120", got)
	}
	if got := f.Params().Tuning(); got != PresetParameters(PresetAggressive) {
		t.Fatalf("Tuning() = %#v, want aggressive preset", got)
	}

	x3, y3 := f.Update(5.2, 5.2, 0.2)
	x4, y4 := f.Update(5.3, 5.3, 0.3)

	if math.Abs(x3-x2) >= 1 || math.Abs(y3-y2) >= 1 {
		t.Fatalf("discontinuity after preset switch: (%v, %v) -> (%v, %v)", x2, y2, x3, y3)
	}
	if math.Abs(x4-x3) >= 1 || math.Abs(y4-y3) >= 1 {
		t.Fatalf("discontinuity after preset switch: (%v, %v) -> (%v, %v)", x3, y3, x4, y4)
	}
}

func TestApplyPresetChangesOutput(t *testing.T) {
	f := New(scenarioParams())

	f.ApplyPreset(PresetFineControl)
	x1, y1 := f.Update(10, 10, 0)

	f.ApplyPreset(PresetBalanced)
	x2, y2 := f.Update(10, 10, 0.1)

	f.ApplyPreset(PresetAggressive)
	x3, y3 := f.Update(10, 10, 0.2)

	if x1 == x2 || y1 == y2 || x2 == x3 || y2 == y3 {
		t.Fatalf("presets produced identical outputs: (%v, %v), (%v, %v), (%v, %v)", x1, y1, x2, y2, x3, y3)
	}
}

func TestApplySliderPosition(t *testing.T) {
	f := NewFromPreset(DefaultFrequency, PresetBalanced)
	f.Update(1, 1, 0.2)
	before := f.State()

	f.ApplySliderPosition(0.25)

	if got := f.State(); got != before {
		t.Fatalf("State() changed by ApplySliderPosition: got %#v, want %#v", got, before)
	}
	if got := f.Params().Tuning(); got != ParametersForSlider(0.25) {
		t.Fatalf("Tuning() = %#v, want %#v", got, ParametersForSlider(0.25))
	}

	f.ApplySliderPosition(0)
	x1, y1 := f.Update(10, 10, 0.3)
	f.ApplySliderPosition(1)
	x2, y2 := f.Update(10, 10, 0.4)
	if x1 == x2 || y1 == y2 {
		t.Fatalf("slider endpoints produced identical outputs (%v, %v)", x1, y1)
	}
}

func TestSetFrequency(t *testing.T) {
	f := New(scenarioParams())

	f.SetFrequency(240)
	if got := f.Frequency(); got != 240 {
		t.Fatalf("Frequency() = %v, want 240", got)
	}

	f.SetFrequency(0)
	f.SetFrequency(-5)
	if got := f.Frequency(); got != 240 {
		t.Fatalf("Frequency() = %v after invalid updates, want 240", got)
	}
}

func TestSetStateRestoresTrajectory(t *testing.T) {
	ts, xs, ys := testutil.Tremor{
		SampleRate: 60, Length: 80, ToX: 100, ToY: 100,
		TremorHz: 5, TremorAmplitude: 2, Seed: 1,
	}.Trace()

	a := NewFromPreset(DefaultFrequency, PresetFineControl)
	for i := 0; i < 40; i++ {
		a.Update(xs[i], ys[i], ts[i])
	}

	b := NewFromPreset(DefaultFrequency, PresetFineControl)
	b.SetState(a.State())

	for i := 40; i < len(ts); i++ {
		ax, ay := a.Update(xs[i], ys[i], ts[i])
		bx, by := b.Update(xs[i], ys[i], ts[i])
		if ax != bx || ay != by {
			t.Fatalf("sample %d mismatch: (%v, %v) vs (%v, %v)", i, bx, by, ax, ay)
		}
	}
}

func TestProcessBlockMatchesUpdate(t *testing.T) {
	ts, xs, ys := testutil.Tremor{
		SampleRate: 60, Length: 128, FromX: -50, ToX: 50, FromY: 20, ToY: 80,
		TremorHz: 9, TremorAmplitude: 1.5, NoiseAmplitude: 0.3, Seed: 21,
	}.Trace()

	ref := NewFromPreset(DefaultFrequency, PresetBalanced)
	wantX := make([]float64, len(xs))
	wantY := make([]float64, len(ys))
	for i := range ts {
		wantX[i], wantY[i] = ref.Update(xs[i], ys[i], ts[i])
	}

	blk := NewFromPreset(DefaultFrequency, PresetBalanced)
	blk.ProcessBlock(xs, ys, ts)

	testutil.RequireSliceNearlyEqual(t, xs, wantX, 0)
	testutil.RequireSliceNearlyEqual(t, ys, wantY, 0)
}

func TestProcessBlockUsesShortestInput(t *testing.T) {
	f := New(scenarioParams())
	xs := []float64{1, 2, 3, 4}
	ys := []float64{1, 2, 3, 4}
	ts := []float64{0.1, 0.2}

	f.ProcessBlock(xs, ys, ts)

	if xs[2] != 3 || xs[3] != 4 || ys[2] != 3 || ys[3] != 4 {
		t.Fatalf("samples beyond the shortest input were modified: xs=%v ys=%v", xs, ys)
	}
	if got := f.State().LastTime; got != 0.2 {
		t.Fatalf("LastTime = %v, want 0.2", got)
	}
}

func TestAlphaLimits(t *testing.T) {
	if a := Alpha(0, 1); a <= 0 || a > 1e-8 {
		t.Fatalf("Alpha(0, 1) = %v, want tiny positive value", a)
	}
	if a := Alpha(1e9, 1); a < 1-1e-9 || a > 1 {
		t.Fatalf("Alpha(1e9, 1) = %v, want close to 1", a)
	}
	testutil.RequireFinite(t, Alpha(0, 1e-6), Alpha(0, 1e6))
}

func TestAlphaMonotonicInCutoff(t *testing.T) {
	cutoffs := []float64{0.25, 0.5, 1, 1.5, 2, 3, 5, 8}

	for _, dt := range []float64{1e-3, 0.1, 1, 6, 30} {
		prev := Alpha(dt, cutoffs[0])
		for _, c := range cutoffs[1:] {
			a := Alpha(dt, c)
			if !(a > prev) {
				t.Fatalf("dt=%v: Alpha(cutoff=%v) = %v not above %v", dt, c, a, prev)
			}
			prev = a
		}
	}
}

func TestAlphaMonotonicInElapsedTime(t *testing.T) {
	prev := Alpha(0, 2)
	for _, dt := range []float64{1e-3, 0.01, 0.5, 1, 10} {
		a := Alpha(dt, 2)
		if !(a > prev) {
			t.Fatalf("Alpha(dt=%v) = %v not above %v", dt, a, prev)
		}
		prev = a
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Frequency != DefaultFrequency {
		t.Fatalf("Frequency = %v, want %v", p.Frequency, DefaultFrequency)
	}
	if p.Tuning() != PresetParameters(PresetBalanced) {
		t.Fatalf("Tuning() = %#v, want balanced", p.Tuning())
	}
}
