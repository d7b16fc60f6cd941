package jitter

import (
	"github.com/cwbudde/algo-tremor/dsp/core"
	"github.com/cwbudde/algo-tremor/dsp/filter/oneeuro"
)

// Trace is a recorded pointer stream. T holds timestamps in seconds, X and Y
// the positions. All three slices are expected to have equal length.
type Trace struct {
	T []float64
	X []float64
	Y []float64
}

// Len returns the number of complete samples in tr.
func (tr Trace) Len() int {
	return core.CommonLen(tr.T, tr.X, tr.Y)
}

// Clone returns a deep copy of tr.
func (tr Trace) Clone() Trace {
	return Trace{
		T: core.CloneInto(nil, tr.T),
		X: core.CloneInto(nil, tr.X),
		Y: core.CloneInto(nil, tr.Y),
	}
}

// FilterTrace runs tr through f and returns the filtered positions with the
// original timestamps. tr is not modified; f keeps the state reached at the
// end of the trace.
func FilterTrace(f *oneeuro.Filter, tr Trace) Trace {
	n := tr.Len()
	out := Trace{
		T: core.CloneInto(nil, tr.T[:n]),
		X: core.CloneInto(nil, tr.X[:n]),
		Y: core.CloneInto(nil, tr.Y[:n]),
	}
	f.ProcessBlock(out.X, out.Y, out.T)
	return out
}

func (tr Trace) validate() error {
	if len(tr.T) == 0 && len(tr.X) == 0 && len(tr.Y) == 0 {
		return ErrEmptyTrace
	}
	if len(tr.T) != len(tr.X) || len(tr.X) != len(tr.Y) {
		return ErrLengthMismatch
	}
	if len(tr.T) < MinSamples {
		return ErrTooShort
	}
	return nil
}
