package fftutil

import "fmt"

// Axis selects which dimension of a row-major 2-D array is transformed.
type Axis int

const (
	// AxisRows transforms down every column: the signal runs along the
	// first (row) index.
	AxisRows Axis = iota
	// AxisCols transforms along every row: the signal runs along the
	// second (column) index.
	AxisCols
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisRows:
		return "rows"
	case AxisCols:
		return "cols"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ForwardAxis forward-transforms data (rows x cols, row-major) in place along axis.
func ForwardAxis(data []complex128, rows, cols int, axis Axis) error {
	return transformAxis(data, rows, cols, axis, false)
}

// InverseAxis inverse-transforms data (rows x cols, row-major) in place along axis.
func InverseAxis(data []complex128, rows, cols int, axis Axis) error {
	return transformAxis(data, rows, cols, axis, true)
}

func transformAxis(data []complex128, rows, cols int, axis Axis, inverse bool) error {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return fmt.Errorf("%w: data=%d shape=%dx%d", ErrLengthMismatch, len(data), rows, cols)
	}

	var n, lines, stride, step int
	switch axis {
	case AxisRows:
		n, lines, stride, step = rows, cols, cols, 1
	case AxisCols:
		n, lines, stride, step = cols, rows, 1, cols
	default:
		return fmt.Errorf("fftutil: unknown axis %d", int(axis))
	}

	plan, err := NewPlan(n)
	if err != nil {
		return err
	}

	src := make([]complex128, n)
	dst := make([]complex128, n)
	for line := range lines {
		base := line * step
		for k := range n {
			src[k] = data[base+k*stride]
		}

		if inverse {
			err = plan.Inverse(dst, src)
		} else {
			err = plan.Forward(dst, src)
		}
		if err != nil {
			return err
		}

		for k := range n {
			data[base+k*stride] = dst[k]
		}
	}
	return nil
}
