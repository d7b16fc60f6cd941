package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffIdentical(t *testing.T) {
	a := []float64{1, 2, 3}

	d, err := MaxAbsDiff(a, a)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if d != 0 {
		t.Fatalf("MaxAbsDiff = %v, want 0 for identical slices", d)
	}
}

func TestRequireNearlyEqual(t *testing.T) {
	tests := []struct {
		name      string
		got, want float64
		eps       float64
	}{
		{name: "exact", got: 1.5, want: 1.5, eps: 0},
		{name: "within", got: 1.0, want: 1.0 + 1e-10, eps: 1e-9},
		{name: "at eps", got: 2.0, want: 2.5, eps: 0.5},
		{name: "negative", got: -3, want: -3.05, eps: 0.1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			RequireNearlyEqual(t, tc.name, tc.got, tc.want, tc.eps)
		})
	}
}

func TestRequireSliceNearlyEqual(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2, 3}, []float64{1, 2.05, 2.95}, 0.1)
	RequireSliceNearlyEqual(t, nil, []float64{}, 0)
}

func TestRequireFinite(t *testing.T) {
	RequireFinite(t)
	RequireFinite(t, 0)
	RequireFinite(t, -1, math.MaxFloat64, math.SmallestNonzeroFloat64)

	data := []float64{0.5, -2, 1e300}
	RequireFinite(t, data...)
}
