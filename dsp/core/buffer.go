package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// CloneInto copies src into buf, growing buf when needed, and returns the
// resized slice.
func CloneInto(buf, src []float64) []float64 {
	buf = EnsureLen(buf, len(src))
	copy(buf, src)
	return buf
}

// CommonLen returns the length of the shortest slice, or 0 without arguments.
func CommonLen(bufs ...[]float64) int {
	if len(bufs) == 0 {
		return 0
	}
	n := len(bufs[0])
	for _, b := range bufs[1:] {
		if len(b) < n {
			n = len(b)
		}
	}
	return n
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}
