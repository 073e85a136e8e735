package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-fieldsim/dsp/basis"
	"github.com/cwbudde/algo-fieldsim/dsp/deriv"
	"github.com/cwbudde/algo-fieldsim/dsp/field"
	"github.com/cwbudde/algo-fieldsim/dsp/gauss"
	"github.com/cwbudde/algo-fieldsim/dsp/integrate"
)

type simulation struct {
	tr   *field.Transformer
	coef []float64
	mult []complex128
	sign float64
	rows int
	cols int
}

// grid returns points samples centered on zero.
func grid(points int, dx float64) []float64 {
	x := make([]float64, points)
	for i := range x {
		x[i] = float64(i-points/2) * dx
	}
	return x
}

// buildKernels fills every matrix with distinct diagonal entries and a weak
// position-dependent off-diagonal coupling.
func buildKernels(channels, size int, x []float64) (*basis.KernelSet, error) {
	ks, err := basis.NewKernelSet(channels, len(x), size, nil)
	if err != nil {
		return nil, err
	}

	for j := range channels {
		for p, xp := range x {
			m := ks.At(j, p)
			for r := range size {
				m.Set(r, r, float64(r+1)*(1+0.5*float64(j)))
				if r+1 < size {
					m.Set(r, r+1, 0.1*math.Sin(xp+float64(j)))
					m.Set(r+1, r, 0.05*math.Cos(xp))
				}
			}
		}
	}
	return ks, nil
}

func initialField(size int, x []float64, dx, sigma float64) (*field.Field, error) {
	data := make([]float64, 0, size*len(x))
	for r := range size {
		mu := float64(r-size/2) * 4 * dx
		row, err := gauss.Bell(x, mu, sigma)
		if err != nil {
			return nil, err
		}
		data = append(data, row...)
	}
	return field.FromReal(size, len(x), data)
}

// rate detransforms state, applies the operator to every channel and
// transforms the result back into the local eigenbasis.
func (s *simulation) rate(state []complex128) ([]complex128, error) {
	f, err := field.FromComplex(s.rows, s.cols, state)
	if err != nil {
		return nil, err
	}

	phys, err := s.tr.Detransform(f, s.coef)
	if err != nil {
		return nil, err
	}

	re := phys.Real()
	out := mat.NewDense(s.rows, s.cols, nil)
	for r := range s.rows {
		d, err := deriv.Apply(s.mult, re.RawRowView(r))
		if err != nil {
			return nil, err
		}
		out.SetRow(r, d)
	}
	out.Scale(s.sign, out)

	rot, _, err := s.tr.Transform(field.FromMatrix(out), s.coef)
	if err != nil {
		return nil, err
	}
	return rot.Data(), nil
}

func run(cfg config, w io.Writer) error {
	op, ok := lookupOperator(cfg.operator)
	if !ok {
		return fmt.Errorf("unknown operator %q", cfg.operator)
	}

	x := grid(cfg.points, cfg.dx)
	mult, err := op.build(x, cfg.dx, cfg.sigma)
	if err != nil {
		return fmt.Errorf("operator %s: %w", op.name, err)
	}

	ks, err := buildKernels(cfg.kernels, cfg.size, x)
	if err != nil {
		return err
	}

	opts := []field.Option{field.WithAxis(cfg.axis), field.WithWorkers(cfg.workers)}
	if cfg.sorted {
		opts = append(opts, field.WithSortedEigenvalues())
	}
	tr, err := field.NewTransformer(ks, opts...)
	if err != nil {
		return err
	}

	coef := make([]float64, cfg.kernels)
	for j := range coef {
		coef[j] = 1 / float64(j+1)
	}

	start, err := initialField(cfg.size, x, cfg.dx, cfg.sigma)
	if err != nil {
		return err
	}

	state, values, err := tr.Transform(start, coef)
	if err != nil {
		return err
	}

	sim := &simulation{tr: tr, coef: coef, mult: mult, sign: op.sign, rows: cfg.size, cols: cfg.points}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "# operator=%s axis=%s points=%d size=%d kernels=%d dt=%g max|lambda|=%.4f\n",
		op.name, cfg.axis, cfg.points, cfg.size, cfg.kernels, cfg.dt, values.MaxAbs())
	fmt.Fprintf(tw, "Step\tEnergy\tMax |f|\tRound-trip err\n")
	fmt.Fprintf(tw, "----\t------\t-------\t--------------\n")

	var report error
	observe := func(step int, cur []complex128) {
		if report != nil {
			return
		}
		report = printRow(tw, sim, step, cur, nil)
	}

	if err := printRow(tw, sim, -1, state.Data(), start); err != nil {
		return err
	}
	if _, err := integrate.RunComplex(sim.rate, cfg.dt, state.Data(), cfg.steps, observe); err != nil {
		return err
	}
	if report != nil {
		return report
	}
	return tw.Flush()
}

// printRow writes statistics for the physical field behind state. When ref
// is non-nil the round-trip error against it is reported.
func printRow(w io.Writer, sim *simulation, step int, state []complex128, ref *field.Field) error {
	f, err := field.FromComplex(sim.rows, sim.cols, state)
	if err != nil {
		return err
	}
	phys, err := sim.tr.Detransform(f, sim.coef)
	if err != nil {
		return err
	}

	roundTrip := "-"
	if ref != nil {
		worst := floats.Distance(phys.Real().RawMatrix().Data, ref.Real().RawMatrix().Data, math.Inf(1))
		roundTrip = fmt.Sprintf("%.3e", worst)
	}

	_, err = fmt.Fprintf(w, "%d\t%.8f\t%.8f\t%s\n", step+1, phys.Energy(), phys.MaxAbs(), roundTrip)
	return err
}
