// Package deriv builds frequency-domain multipliers that approximate spatial
// derivatives on a periodic grid.
//
// A multiplier is the forward FFT of a centered finite-difference stencil.
// Multiplying the spectrum of a signal by it and inverse-transforming
// applies the stencil as a circular convolution:
//
//	d, err := deriv.FirstDerivative(len(x), dx, 1)
//	dfdx, err := deriv.Apply(d, f)
//
// [FirstDerivative] uses an 11-point tenth-order central difference.
// Raising its multiplier to a power composes the same operator repeatedly;
// orden=2 is the first-derivative stencil applied twice and is an
// approximation of the second derivative, not the dedicated 7-point stencil
// returned by [SecondDerivative].
package deriv
