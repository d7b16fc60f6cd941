// Package oneeuro provides a One Euro style low-pass filter for smoothing
// noisy 2D pointer streams, such as a mouse or trackpad affected by hand
// tremor, with little added lag.
//
// Each call to [Filter.Update] takes a raw (x, y) position and a timestamp in
// seconds and returns the filtered position. The elapsed time since the
// previous sample is normalized by the expected stream frequency and turned
// into two smoothing factors via [Alpha]: one from MinCutoff for the position
// and one from DerivativeCutoff for the internal velocity estimate. Lower
// cutoffs smooth more and lag more.
//
// Parameters come either from explicit [Params], from one of the fixed
// [Preset] values, or from a continuous slider position in [0, 1] that
// interpolates between the fine-control and aggressive presets. Presets and
// slider positions can be applied to a running filter without disturbing its
// position or velocity state, so retuning never makes the cursor jump.
//
// Beta is carried through presets, slider mapping and Params but Update does
// not consult it: the position cutoff is fixed at MinCutoff and does not
// scale with pointer speed.
//
// The filter never reports errors. Out-of-order timestamps are treated as
// zero elapsed time, a zero elapsed time is guarded by a small epsilon, and
// slider positions are clamped. Positive Frequency, MinCutoff and
// DerivativeCutoff are preconditions that are not checked.
package oneeuro
