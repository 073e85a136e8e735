package field

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-fieldsim/dsp/core"
)

// Field is a dense, row-major rows x cols array of complex samples.
type Field struct {
	rows int
	cols int
	data []complex128
}

// New returns a zeroed rows x cols field.
func New(rows, cols int) (*Field, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: field shape must be positive: %dx%d", core.ErrShapeMismatch, rows, cols)
	}
	return &Field{rows: rows, cols: cols, data: make([]complex128, rows*cols)}, nil
}

// FromComplex wraps data (row-major) without copying.
func FromComplex(rows, cols int, data []complex128) (*Field, error) {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for a %dx%d field", core.ErrShapeMismatch, len(data), rows, cols)
	}
	return &Field{rows: rows, cols: cols, data: data}, nil
}

// FromReal copies real row-major samples into a new field.
func FromReal(rows, cols int, data []float64) (*Field, error) {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for a %dx%d field", core.ErrShapeMismatch, len(data), rows, cols)
	}
	return &Field{rows: rows, cols: cols, data: core.ToComplex(data)}, nil
}

// FromMatrix copies a real matrix into a new field.
func FromMatrix(m mat.Matrix) *Field {
	r, c := m.Dims()
	f := &Field{rows: r, cols: c, data: make([]complex128, r*c)}
	for i := range r {
		for j := range c {
			f.data[i*c+j] = complex(m.At(i, j), 0)
		}
	}
	return f
}

// Dims returns the number of rows and columns.
func (f *Field) Dims() (rows, cols int) { return f.rows, f.cols }

// Data returns the backing row-major slice.
func (f *Field) Data() []complex128 { return f.data }

// At returns the sample at (r, c).
func (f *Field) At(r, c int) complex128 { return f.data[r*f.cols+c] }

// Set stores v at (r, c).
func (f *Field) Set(r, c int, v complex128) { f.data[r*f.cols+c] = v }

// Row returns a view of row r.
func (f *Field) Row(r int) []complex128 { return f.data[r*f.cols : (r+1)*f.cols] }

// Column copies column c into dst, reusing its capacity, and returns it.
func (f *Field) Column(c int, dst []complex128) []complex128 {
	dst = core.EnsureLen(dst, f.rows)
	for r := range f.rows {
		dst[r] = f.data[r*f.cols+c]
	}
	return dst
}

// SetColumn copies src into column c.
func (f *Field) SetColumn(c int, src []complex128) {
	for r := range f.rows {
		f.data[r*f.cols+c] = src[r]
	}
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	return &Field{rows: f.rows, cols: f.cols, data: append([]complex128(nil), f.data...)}
}

// Real returns the real part as a rows x cols matrix.
func (f *Field) Real() *mat.Dense {
	return mat.NewDense(f.rows, f.cols, core.RealPart(f.data))
}

// Energy returns sum |x|^2 over all samples.
func (f *Field) Energy() float64 {
	if len(f.data) == 0 {
		return 0
	}
	re := make([]float64, len(f.data))
	im := make([]float64, len(f.data))
	core.SplitParts(re, im, f.data)

	power := make([]float64, len(f.data))
	vecmath.Power(power, re, im)
	return floats.Sum(power)
}

// MaxAbs returns the largest sample modulus.
func (f *Field) MaxAbs() float64 {
	if len(f.data) == 0 {
		return 0
	}
	re := make([]float64, len(f.data))
	im := make([]float64, len(f.data))
	core.SplitParts(re, im, f.data)

	mag := make([]float64, len(f.data))
	vecmath.Magnitude(mag, re, im)
	return floats.Max(mag)
}
