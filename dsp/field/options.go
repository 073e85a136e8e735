package field

import (
	"fmt"

	"github.com/cwbudde/algo-fieldsim/dsp/core"
	"github.com/cwbudde/algo-fieldsim/internal/fftutil"
)

// Axis selects the dimension the FFT runs along.
type Axis int

const (
	// AxisModes transforms down every column (the first axis, length =
	// channel count) with the spatial point held fixed.
	AxisModes Axis = iota
	// AxisPoints transforms along every row (the second axis, length =
	// point count), one FFT per channel.
	AxisPoints
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisModes:
		return "modes"
	case AxisPoints:
		return "points"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

func (a Axis) fft() (fftutil.Axis, error) {
	switch a {
	case AxisModes:
		return fftutil.AxisRows, nil
	case AxisPoints:
		return fftutil.AxisCols, nil
	default:
		return 0, fmt.Errorf("field: unknown axis %d", int(a))
	}
}

type config struct {
	axis   Axis
	solver []core.SolverOption
}

// Option configures a Transformer.
type Option func(*config)

// WithAxis selects the FFT axis. The default is [AxisModes].
func WithAxis(a Axis) Option {
	return func(c *config) {
		c.axis = a
	}
}

// WithWorkers runs the per-point loop on up to n goroutines.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.solver = append(c.solver, core.WithWorkers(n))
	}
}

// WithSortedEigenvalues orders every point's eigenpairs by real part, then
// imaginary part, instead of the solver's native order.
func WithSortedEigenvalues() Option {
	return func(c *config) {
		c.solver = append(c.solver, core.WithSortedEigenvalues())
	}
}
