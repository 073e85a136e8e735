// Package field transforms a 2-D field into per-point local eigenbases and
// back.
//
// A [Field] is a rows x cols complex array: rows are coefficient channels
// (one per eigenbasis component) and cols are spatial points. A
// [Transformer] built over a [basis.KernelSet] does
//
//  1. a forward FFT along the configured axis,
//  2. for every point i, the eigendecomposition of that point's
//     coefficient-weighted kernel sum, and
//  3. the rotation of column i into that eigenbasis (V^-1 x).
//
// [Transformer.Transform] returns the rotated field together with a
// points x size field of eigenvalues. [Transformer.Detransform] rotates every
// column back with V, inverse-transforms and keeps the real part. Points
// never mix, so the per-point loop may run on several goroutines
// ([WithWorkers]).
//
// The detransform recomputes every decomposition from the kernels and
// coefficients it is given; it must see the same inputs as the forward pass
// for the round trip to hold. The final real-part truncation assumes the
// physical field is real.
package field
