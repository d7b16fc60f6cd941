// Package jitter measures pointer tremor in recorded traces and quantifies
// how much of it a smoothing filter removes.
//
// [Analyze] looks at each axis of a [Trace] separately. It removes the mean
// position, applies a Hann window, zero-pads to a power of two and computes a
// one-sided power spectrum. Power inside the configured tremor band (4–12 Hz
// by default, covering physiological and essential tremor) is reported next
// to the total non-DC power, together with time-domain velocity statistics
// and path length.
//
// [Compare] analyzes a raw trace and its filtered counterpart with the same
// configuration and reports band attenuation in dB, the filter lag found by
// cross-correlation, and the ratio of path lengths.
package jitter
