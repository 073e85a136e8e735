// Package gauss generates Gaussian bell curves and the spectrum of their
// normalised derivative on a sampled grid.
package gauss

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-fieldsim/dsp/core"
	"github.com/cwbudde/algo-fieldsim/internal/fftutil"
)

// Bell returns the normal density with mean mu and standard deviation sigma
// evaluated at every x.
func Bell(x []float64, mu, sigma float64) ([]float64, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("gauss: sigma must be > 0: %v", sigma)
	}

	out := make([]float64, len(x))
	twoVar := 2 * sigma * sigma
	for i, v := range x {
		d := v - mu
		out[i] = math.Exp(-d * d / twoVar)
	}
	vecmath.ScaleBlock(out, out, 1/(math.Sqrt(2*math.Pi)*sigma))
	return out, nil
}

// BellDerivative returns (x-mu)/(sqrt(2*pi)*sigma^3) * exp(-(x-mu)^2/(2*sigma^2)),
// which is the negated derivative of [Bell].
func BellDerivative(x []float64, mu, sigma float64) ([]float64, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("gauss: sigma must be > 0: %v", sigma)
	}

	factor := 1 / (math.Sqrt(2*math.Pi) * sigma * sigma * sigma)
	twoVar := 2 * sigma * sigma
	out := make([]float64, len(x))
	for i, v := range x {
		d := v - mu
		out[i] = d * factor * math.Exp(-d*d/twoVar)
	}
	return out, nil
}

// BellDerivativeSpectrum returns the forward transform of [BellDerivative]
// divided by the sum of [Bell] samples, with the grid midpoint moved to
// index 0 before transforming. The result is a per-mode multiplier that
// smooths and differentiates in one pass.
func BellDerivativeSpectrum(x []float64, mu, sigma float64) ([]complex128, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("gauss: grid must not be empty")
	}

	bell, err := Bell(x, mu, sigma)
	if err != nil {
		return nil, err
	}
	norm := floats.Sum(bell)
	if norm == 0 {
		return nil, fmt.Errorf("gauss: bell curve vanishes on the grid (mu=%v sigma=%v)", mu, sigma)
	}

	y, err := BellDerivative(x, mu, sigma)
	if err != nil {
		return nil, err
	}
	vecmath.ScaleBlock(y, y, 1/norm)

	return fftutil.Forward(core.ToComplex(fftutil.IFFTShift(y)))
}
