// Package fftutil wraps the FFT backends used by the field packages.
//
// Plans are built on algo-fft. Lengths that algo-fft refuses to plan fall
// back to gonum's mixed-radix transform so every n > 0 is accepted. Both
// paths use the e^{-2*pi*i*k*n/N} forward convention and a 1/N-normalised
// inverse, so a forward/inverse pair is the identity.
package fftutil

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrLengthMismatch is returned when buffers do not match the plan length.
var ErrLengthMismatch = errors.New("fftutil: buffer length does not match plan")

// Plan is a reusable complex FFT of fixed length. A Plan is not safe for
// concurrent use.
type Plan struct {
	n     int
	algo  *algofft.Plan[complex128]
	gonum *fourier.CmplxFFT
}

// NewPlan creates a complex FFT plan of length n.
func NewPlan(n int) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fftutil: fft size must be > 0: %d", n)
	}

	if p, err := algofft.NewPlan64(n); err == nil {
		return &Plan{n: n, algo: p}, nil
	}

	return &Plan{n: n, gonum: fourier.NewCmplxFFT(n)}, nil
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Forward computes the unnormalised forward DFT of src into dst.
func (p *Plan) Forward(dst, src []complex128) error {
	if len(dst) != p.n || len(src) != p.n {
		return fmt.Errorf("%w: dst=%d src=%d n=%d", ErrLengthMismatch, len(dst), len(src), p.n)
	}

	if p.algo != nil {
		return p.algo.Forward(dst, src)
	}

	p.gonum.Coefficients(dst, src)
	return nil
}

// Inverse computes the 1/N-normalised inverse DFT of src into dst.
func (p *Plan) Inverse(dst, src []complex128) error {
	if len(dst) != p.n || len(src) != p.n {
		return fmt.Errorf("%w: dst=%d src=%d n=%d", ErrLengthMismatch, len(dst), len(src), p.n)
	}

	if p.algo != nil {
		return p.algo.Inverse(dst, src)
	}

	p.gonum.Sequence(dst, src)
	scale := complex(1/float64(p.n), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

// Forward is a one-shot forward transform returning a new slice.
func Forward(src []complex128) ([]complex128, error) {
	p, err := NewPlan(len(src))
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(src))
	if err := p.Forward(out, src); err != nil {
		return nil, err
	}
	return out, nil
}

// Inverse is a one-shot inverse transform returning a new slice.
func Inverse(src []complex128) ([]complex128, error) {
	p, err := NewPlan(len(src))
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(src))
	if err := p.Inverse(out, src); err != nil {
		return nil, err
	}
	return out, nil
}
