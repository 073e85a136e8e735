package deriv

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-fieldsim/dsp/core"
	"github.com/cwbudde/algo-fieldsim/internal/fftutil"
)

// ErrStencilOverrun is returned when the grid is too short to hold the
// symmetric stencil around its midpoint.
var ErrStencilOverrun = errors.New("deriv: stencil half-width exceeds grid")

// ErrGridSpacing is returned when a coordinate array is not spaced by dx.
var ErrGridSpacing = errors.New("deriv: grid spacing does not match dx")

const spacingTolerance = 1e-9

// Half-widths of the built-in stencils.
const (
	FirstHalfWidth  = 5
	SecondHalfWidth = 3
)

// firstWeights are the unnormalised tenth-order central-difference weights
// for offsets 1..5.
var firstWeights = [FirstHalfWidth]float64{210, -120, 45, -10, 1}

// secondStencil holds the sixth-order second-derivative weights for
// offsets -3..+3.
var secondStencil = [2*SecondHalfWidth + 1]float64{
	1.0 / 90, -3.0 / 20, 3.0 / 2, -49.0 / 18, 3.0 / 2, -3.0 / 20, 1.0 / 90,
}

// FirstDerivative returns the per-mode multiplier of the first-derivative
// stencil on an n-point grid with spacing dx, raised elementwise to orden.
// orden=0 yields the identity multiplier.
func FirstDerivative(n int, dx float64, orden int) ([]complex128, error) {
	if err := validate(n, dx, FirstHalfWidth); err != nil {
		return nil, err
	}
	if orden < 0 {
		return nil, fmt.Errorf("deriv: orden must be >= 0: %d", orden)
	}

	total := 0.0
	for _, w := range firstWeights {
		total += w
	}

	mid := n / 2
	y := make([]float64, n)
	for i, w := range firstWeights {
		off := i + 1
		v := w / (2 * float64(off) * total)
		y[mid+off] = -v
		y[mid-off] = v
	}
	for i := range y {
		y[i] /= dx
	}

	out, err := stencilSpectrum(y)
	if err != nil {
		return nil, err
	}

	if orden != 1 {
		p := complex(float64(orden), 0)
		for i, c := range out {
			out[i] = integerPow(c, orden, p)
		}
	}
	return out, nil
}

// SecondDerivative returns the per-mode multiplier of the 7-point
// second-derivative stencil on an n-point grid with spacing dx.
func SecondDerivative(n int, dx float64) ([]complex128, error) {
	if err := validate(n, dx, SecondHalfWidth); err != nil {
		return nil, err
	}

	mid := n / 2
	dx2 := dx * dx
	y := make([]float64, n)
	for k, w := range secondStencil {
		y[mid+k-SecondHalfWidth] = w / dx2
	}

	return stencilSpectrum(y)
}

// FirstDerivativeFor is [FirstDerivative] sized from a coordinate array
// whose spacing must equal dx.
func FirstDerivativeFor(x []float64, dx float64, orden int) ([]complex128, error) {
	if err := checkSpacing(x, dx); err != nil {
		return nil, err
	}
	return FirstDerivative(len(x), dx, orden)
}

// SecondDerivativeFor is [SecondDerivative] sized from a coordinate array
// whose spacing must equal dx.
func SecondDerivativeFor(x []float64, dx float64) ([]complex128, error) {
	if err := checkSpacing(x, dx); err != nil {
		return nil, err
	}
	return SecondDerivative(len(x), dx)
}

// checkSpacing compares the first and last step of x against dx.
func checkSpacing(x []float64, dx float64) error {
	n := len(x)
	if n < 2 {
		return nil
	}
	for _, step := range []float64{x[1] - x[0], x[n-1] - x[n-2]} {
		if !core.NearlyEqual(step, dx, spacingTolerance) {
			return fmt.Errorf("%w: step %v, dx %v", ErrGridSpacing, step, dx)
		}
	}
	return nil
}

// Apply multiplies the spectrum of signal by multiplier and returns the real
// part of the inverse transform.
func Apply(multiplier []complex128, signal []float64) ([]float64, error) {
	if len(multiplier) != len(signal) {
		return nil, fmt.Errorf("%w: multiplier=%d signal=%d", core.ErrShapeMismatch, len(multiplier), len(signal))
	}
	if len(signal) == 0 {
		return nil, nil
	}

	spec, err := ApplySpectrum(multiplier, core.ToComplex(signal))
	if err != nil {
		return nil, err
	}
	return core.RealPart(spec), nil
}

// ApplySpectrum is [Apply] for complex signals. The result is not truncated
// to its real part.
func ApplySpectrum(multiplier, signal []complex128) ([]complex128, error) {
	if len(multiplier) != len(signal) {
		return nil, fmt.Errorf("%w: multiplier=%d signal=%d", core.ErrShapeMismatch, len(multiplier), len(signal))
	}

	plan, err := fftutil.NewPlan(len(signal))
	if err != nil {
		return nil, err
	}

	freq := make([]complex128, len(signal))
	if err := plan.Forward(freq, signal); err != nil {
		return nil, err
	}
	for i := range freq {
		freq[i] *= multiplier[i]
	}

	out := make([]complex128, len(signal))
	if err := plan.Inverse(out, freq); err != nil {
		return nil, err
	}
	return out, nil
}

func validate(n int, dx float64, halfWidth int) error {
	if dx <= 0 {
		return fmt.Errorf("deriv: dx must be > 0: %v", dx)
	}
	if n < 2*halfWidth+1 {
		return fmt.Errorf("%w: need at least %d points for half-width %d, got %d",
			ErrStencilOverrun, 2*halfWidth+1, halfWidth, n)
	}
	return nil
}

// stencilSpectrum moves the centered stencil's midpoint to index 0 and
// returns its forward transform.
func stencilSpectrum(y []float64) ([]complex128, error) {
	return fftutil.Forward(core.ToComplex(fftutil.IFFTShift(y)))
}

// integerPow raises c to a non-negative integer power by repeated
// multiplication. Large powers use cmplx.Pow.
func integerPow(c complex128, n int, p complex128) complex128 {
	if n > 16 {
		if c == 0 {
			return 0
		}
		return cmplx.Pow(c, p)
	}
	out := complex(1, 0)
	for range n {
		out *= c
	}
	return out
}
