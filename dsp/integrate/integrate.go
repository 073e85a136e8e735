package integrate

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/cmplxs"

	"github.com/cwbudde/algo-fieldsim/dsp/core"
)

// RateFunc returns the rate of change of state. Errors are returned to the
// caller of Step unchanged.
type RateFunc func(state []float64) ([]float64, error)

// ComplexRateFunc is the complex-valued counterpart of RateFunc.
type ComplexRateFunc func(state []complex128) ([]complex128, error)

// Step advances state by one step of size dt. state is not modified; f is
// called exactly four times unless it fails.
func Step(f RateFunc, dt float64, state []float64) ([]float64, error) {
	n := len(state)

	k1, err := rate(f, state)
	if err != nil {
		return nil, err
	}
	k2, err := rate(f, perturb(state, k1, 0.5))
	if err != nil {
		return nil, err
	}
	k3, err := rate(f, perturb(state, k2, 0.5))
	if err != nil {
		return nil, err
	}
	k4, err := rate(f, perturb(state, k3, 1))
	if err != nil {
		return nil, err
	}

	// paso = ((k1 + 2*k2) + 2*k3) + k4
	paso := make([]float64, n)
	tmp := make([]float64, n)
	copy(paso, k1)
	vecmath.ScaleBlock(tmp, k2, 2)
	vecmath.AddBlockInPlace(paso, tmp)
	vecmath.ScaleBlock(tmp, k3, 2)
	vecmath.AddBlockInPlace(paso, tmp)
	vecmath.AddBlockInPlace(paso, k4)

	vecmath.ScaleBlock(paso, paso, dt/6)
	vecmath.AddBlockInPlace(paso, state)
	return paso, nil
}

// rate calls f and checks that the slope matches the state length.
func rate(f RateFunc, state []float64) ([]float64, error) {
	k, err := f(state)
	if err != nil {
		return nil, err
	}
	if len(k) != len(state) {
		return nil, fmt.Errorf("%w: rate has %d values for a state of %d", core.ErrShapeMismatch, len(k), len(state))
	}
	return k, nil
}

// perturb returns state + (k*state)*scale as a new slice. scale is 0.5 or 1,
// so the multiplication is exact and matches a division by 2.
func perturb(state, k []float64, scale float64) []float64 {
	out := make([]float64, len(state))
	vecmath.MulBlock(out, k, state)
	if scale != 1 {
		vecmath.ScaleBlock(out, out, scale)
	}
	vecmath.AddBlockInPlace(out, state)
	return out
}

// StepComplex advances a complex state by one step of size dt using the
// same stage formulas as Step.
func StepComplex(f ComplexRateFunc, dt float64, state []complex128) ([]complex128, error) {
	n := len(state)

	k1, err := rateComplex(f, state)
	if err != nil {
		return nil, err
	}
	k2, err := rateComplex(f, perturbComplex(state, k1, true))
	if err != nil {
		return nil, err
	}
	k3, err := rateComplex(f, perturbComplex(state, k2, true))
	if err != nil {
		return nil, err
	}
	k4, err := rateComplex(f, perturbComplex(state, k3, false))
	if err != nil {
		return nil, err
	}

	paso := make([]complex128, n)
	tmp := make([]complex128, n)
	cmplxs.ScaleRealTo(tmp, 2, k2)
	cmplxs.AddTo(paso, k1, tmp)
	cmplxs.ScaleRealTo(tmp, 2, k3)
	cmplxs.Add(paso, tmp)
	cmplxs.Add(paso, k4)

	cmplxs.ScaleReal(dt/6, paso)
	cmplxs.Add(paso, state)
	return paso, nil
}

func rateComplex(f ComplexRateFunc, state []complex128) ([]complex128, error) {
	k, err := f(state)
	if err != nil {
		return nil, err
	}
	if len(k) != len(state) {
		return nil, fmt.Errorf("%w: rate has %d values for a state of %d", core.ErrShapeMismatch, len(k), len(state))
	}
	return k, nil
}

func perturbComplex(state, k []complex128, half bool) []complex128 {
	out := cmplxs.MulTo(make([]complex128, len(state)), k, state)
	if half {
		cmplxs.ScaleReal(0.5, out)
	}
	cmplxs.Add(out, state)
	return out
}

// Run applies Step steps times and returns the final state. It stops at the
// first error.
func Run(f RateFunc, dt float64, state []float64, steps int) ([]float64, error) {
	if steps < 0 {
		return nil, fmt.Errorf("integrate: steps must be >= 0: %d", steps)
	}
	cur := append([]float64(nil), state...)
	for i := range steps {
		next, err := Step(f, dt, cur)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}

// RunComplex is Run for complex states. observe, when non-nil, is called
// after every completed step with the step index and the new state.
func RunComplex(f ComplexRateFunc, dt float64, state []complex128, steps int, observe func(step int, state []complex128)) ([]complex128, error) {
	if steps < 0 {
		return nil, fmt.Errorf("integrate: steps must be >= 0: %d", steps)
	}
	cur := append([]complex128(nil), state...)
	for i := range steps {
		next, err := StepComplex(f, dt, cur)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		cur = next
		if observe != nil {
			observe(i, cur)
		}
	}
	return cur, nil
}
