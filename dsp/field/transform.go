package field

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-fieldsim/dsp/basis"
	"github.com/cwbudde/algo-fieldsim/dsp/core"
	"github.com/cwbudde/algo-fieldsim/internal/fftutil"
)

// Transformer moves fields between the physical representation and the
// per-point local eigenbasis of a kernel set. A Transformer is stateless
// between calls and safe for concurrent use.
type Transformer struct {
	solver *basis.Solver
	axis   Axis
	fftAx  fftutil.Axis
}

// NewTransformer returns a transformer over ks.
func NewTransformer(ks *basis.KernelSet, opts ...Option) (*Transformer, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ax, err := cfg.axis.fft()
	if err != nil {
		return nil, err
	}

	solver, err := basis.NewSolver(ks, cfg.solver...)
	if err != nil {
		return nil, err
	}

	return &Transformer{solver: solver, axis: cfg.axis, fftAx: ax}, nil
}

// Axis returns the configured FFT axis.
func (t *Transformer) Axis() Axis { return t.axis }

// Workers returns the per-point loop concurrency.
func (t *Transformer) Workers() int { return t.solver.Config().Workers }

// Transform forward-transforms campo and rotates every column into its
// point's eigenbasis. It returns the rotated field (same shape as campo) and
// a points x size field holding each point's eigenvalues in row order.
// campo is not modified.
func (t *Transformer) Transform(campo *Field, coef []float64) (*Field, *Field, error) {
	if err := t.checkShape(campo, coef); err != nil {
		return nil, nil, err
	}

	ks := t.solver.Kernels()
	out := campo.Clone()
	if err := fftutil.ForwardAxis(out.data, out.rows, out.cols, t.fftAx); err != nil {
		return nil, nil, err
	}

	values, err := New(ks.Points(), ks.Size())
	if err != nil {
		return nil, nil, err
	}

	err = t.forEachPoint(func(point int, col []complex128) error {
		d, err := t.solver.Solve(coef, point)
		if err != nil {
			return err
		}
		copy(values.Row(point), d.Values)

		col = out.Column(point, col)
		if err := d.ToEigenbasis(col, col); err != nil {
			return fmt.Errorf("point %d: %w", point, err)
		}
		out.SetColumn(point, col)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, values, nil
}

// DetransformComplex undoes [Transformer.Transform] and returns the complex
// field before real-part truncation. transformed is not modified.
func (t *Transformer) DetransformComplex(transformed *Field, coef []float64) (*Field, error) {
	if err := t.checkShape(transformed, coef); err != nil {
		return nil, err
	}

	out := transformed.Clone()
	err := t.forEachPoint(func(point int, col []complex128) error {
		d, err := t.solver.Solve(coef, point)
		if err != nil {
			return err
		}

		src := transformed.Column(point, nil)
		col = core.EnsureLen(col, len(src))
		if err := d.FromEigenbasis(col, src); err != nil {
			return fmt.Errorf("point %d: %w", point, err)
		}
		out.SetColumn(point, col)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := fftutil.InverseAxis(out.data, out.rows, out.cols, t.fftAx); err != nil {
		return nil, err
	}
	return out, nil
}

// Detransform undoes [Transformer.Transform] and returns the real part of
// the reconstructed field. Any imaginary residue is discarded.
func (t *Transformer) Detransform(transformed *Field, coef []float64) (*Field, error) {
	out, err := t.DetransformComplex(transformed, coef)
	if err != nil {
		return nil, err
	}
	for i, v := range out.data {
		out.data[i] = complex(real(v), 0)
	}
	return out, nil
}

func (t *Transformer) checkShape(f *Field, coef []float64) error {
	ks := t.solver.Kernels()
	if f == nil {
		return fmt.Errorf("%w: nil field", core.ErrShapeMismatch)
	}
	if f.rows != ks.Size() || f.cols != ks.Points() {
		return fmt.Errorf("%w: field is %dx%d, kernels expect %dx%d",
			core.ErrShapeMismatch, f.rows, f.cols, ks.Size(), ks.Points())
	}
	if len(coef) != ks.Channels() {
		return fmt.Errorf("%w: %d coefficients for %d kernel channels",
			core.ErrShapeMismatch, len(coef), ks.Channels())
	}
	return nil
}

// forEachPoint calls fn for every point. With more than one worker the
// points are split into contiguous chunks; each chunk owns its column buffer
// and writes only its own columns.
func (t *Transformer) forEachPoint(fn func(point int, col []complex128) error) error {
	ks := t.solver.Kernels()
	points := ks.Points()
	workers := min(t.Workers(), points)

	if workers <= 1 {
		col := make([]complex128, ks.Size())
		for p := range points {
			if err := fn(p, col); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	chunk := (points + workers - 1) / workers
	for start := 0; start < points; start += chunk {
		end := min(start+chunk, points)
		g.Go(func() error {
			col := make([]complex128, ks.Size())
			for p := start; p < end; p++ {
				if err := fn(p, col); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
