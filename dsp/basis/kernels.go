package basis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-fieldsim/dsp/core"
)

// KernelSet is a dense [channels][points][size][size] array of real kernel
// matrices. It is immutable once built by the caller.
//
// Kernels and the coefficients combined with them are real: the local
// operator is accumulated into a real matrix and decomposed by a real-input
// eigensolver. Eigenvalues and eigenvectors may still be complex.
type KernelSet struct {
	channels int
	points   int
	size     int
	data     []float64
}

// NewKernelSet wraps data laid out channel-major, then point, then row-major
// matrix. A nil data allocates a zeroed set.
func NewKernelSet(channels, points, size int, data []float64) (*KernelSet, error) {
	if channels <= 0 || points <= 0 || size <= 0 {
		return nil, fmt.Errorf("%w: kernel shape must be positive: channels=%d points=%d size=%d",
			core.ErrShapeMismatch, channels, points, size)
	}

	want := channels * points * size * size
	if data == nil {
		data = make([]float64, want)
	}
	if len(data) != want {
		return nil, fmt.Errorf("%w: kernel data has %d values, want %d", core.ErrShapeMismatch, len(data), want)
	}

	return &KernelSet{channels: channels, points: points, size: size, data: data}, nil
}

// Channels returns the number of kernel channels (the coefficient count).
func (ks *KernelSet) Channels() int { return ks.channels }

// Points returns the number of spatial points.
func (ks *KernelSet) Points() int { return ks.points }

// Size returns the side length of every kernel matrix.
func (ks *KernelSet) Size() int { return ks.size }

// At returns a view of kernel (channel, point). Writes through the view
// modify the set.
func (ks *KernelSet) At(channel, point int) *mat.Dense {
	n := ks.size * ks.size
	off := (channel*ks.points + point) * n
	return mat.NewDense(ks.size, ks.size, ks.data[off:off+n])
}

// Set copies m into kernel (channel, point).
func (ks *KernelSet) Set(channel, point int, m mat.Matrix) error {
	r, c := m.Dims()
	if r != ks.size || c != ks.size {
		return fmt.Errorf("%w: kernel is %dx%d, want %dx%d", core.ErrShapeMismatch, r, c, ks.size, ks.size)
	}
	ks.At(channel, point).Copy(m)
	return nil
}

// LocalMatrix returns sum_j coef[j] * K[j, point] as a new matrix.
func (ks *KernelSet) LocalMatrix(coef []float64, point int) (*mat.Dense, error) {
	if len(coef) != ks.channels {
		return nil, fmt.Errorf("%w: %d coefficients for %d kernel channels", core.ErrShapeMismatch, len(coef), ks.channels)
	}
	if point < 0 || point >= ks.points {
		return nil, fmt.Errorf("%w: point %d outside [0, %d)", core.ErrShapeMismatch, point, ks.points)
	}

	out := mat.NewDense(ks.size, ks.size, nil)
	var term mat.Dense
	for j, c := range coef {
		term.Scale(c, ks.At(j, point))
		out.Add(out, &term)
	}
	return out, nil
}
