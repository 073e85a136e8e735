package basis

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-fieldsim/dsp/core"
)

// ConditionLimit is the largest eigenvector-matrix condition number accepted
// before a local operator is treated as non-diagonalizable.
const ConditionLimit = 1e12

var (
	// ErrDecomposition is returned when the eigensolver does not converge or
	// produces non-finite values.
	ErrDecomposition = errors.New("basis: eigendecomposition failed")
	// ErrSingularMatrix is returned when the eigenvector matrix cannot be
	// inverted, i.e. the local operator is (numerically) defective.
	ErrSingularMatrix = errors.New("basis: eigenvector matrix is singular")
)

// Solver decomposes the local operator of every point of a kernel set.
// A Solver holds no mutable state and may be shared between goroutines.
type Solver struct {
	kernels *KernelSet
	cfg     core.SolverConfig
}

// NewSolver returns a solver over ks.
func NewSolver(ks *KernelSet, opts ...core.SolverOption) (*Solver, error) {
	if ks == nil {
		return nil, fmt.Errorf("%w: nil kernel set", core.ErrShapeMismatch)
	}
	return &Solver{kernels: ks, cfg: core.ApplySolverOptions(opts...)}, nil
}

// Kernels returns the solver's kernel set.
func (s *Solver) Kernels() *KernelSet { return s.kernels }

// Config returns the solver configuration.
func (s *Solver) Config() core.SolverConfig { return s.cfg }

// Solve builds the local matrix of point from coef and decomposes it.
// The matrix is rebuilt on every call; nothing is cached between calls.
func (s *Solver) Solve(coef []float64, point int) (*Decomposition, error) {
	a, err := s.kernels.LocalMatrix(coef, point)
	if err != nil {
		return nil, err
	}

	d, err := Decompose(a, s.cfg.SortEigenvalues)
	if err != nil {
		return nil, fmt.Errorf("point %d: %w", point, err)
	}
	return d, nil
}

// Decomposition is the eigendecomposition A = V diag(Values) V^-1 of one
// local matrix. A Decomposition is not safe for concurrent use.
type Decomposition struct {
	// Values holds the eigenvalues.
	Values []complex128
	// Vectors holds the matching right eigenvectors as columns.
	Vectors *mat.CDense

	n     int
	lu    *mat.LU
	vconj *mat.CDense
}

// Decompose computes the general eigendecomposition of the square matrix a.
// When sorted is true the eigenpairs are ordered by real part, then
// imaginary part.
func Decompose(a mat.Matrix, sorted bool) (*Decomposition, error) {
	r, c := a.Dims()
	if r != c || r == 0 {
		return nil, fmt.Errorf("%w: matrix is %dx%d, want square", core.ErrShapeMismatch, r, c)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenRight); !ok {
		return nil, fmt.Errorf("%w: solver did not converge", ErrDecomposition)
	}

	values := eig.Values(nil)
	vectors := mat.NewCDense(r, r, nil)
	eig.VectorsTo(vectors)

	for _, v := range values {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return nil, fmt.Errorf("%w: non-finite eigenvalue %v", ErrDecomposition, v)
		}
	}

	d := &Decomposition{Values: values, Vectors: vectors, n: r}
	if sorted {
		d.sort()
	}
	return d, nil
}

// Len returns the matrix dimension.
func (d *Decomposition) Len() int { return d.n }

func (d *Decomposition) sort() {
	idx := make([]int, d.n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		if c := core.CompareComplex(d.Values[a], d.Values[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	values := make([]complex128, d.n)
	vectors := mat.NewCDense(d.n, d.n, nil)
	for dst, src := range idx {
		values[dst] = d.Values[src]
		for r := range d.n {
			vectors.Set(r, dst, d.Vectors.At(r, src))
		}
	}
	d.Values = values
	d.Vectors = vectors
}

// factorize LU-factors the real 2n x 2n embedding [[Re V, -Im V], [Im V, Re V]]
// of the eigenvector matrix. The embedding has the condition number of V.
func (d *Decomposition) factorize() error {
	if d.lu != nil {
		return nil
	}

	n := d.n
	m := mat.NewDense(2*n, 2*n, nil)
	for i := range n {
		for j := range n {
			v := d.Vectors.At(i, j)
			m.Set(i, j, real(v))
			m.Set(i, j+n, -imag(v))
			m.Set(i+n, j, imag(v))
			m.Set(i+n, j+n, real(v))
		}
	}

	var lu mat.LU
	lu.Factorize(m)
	if cond := lu.Cond(); math.IsNaN(cond) || cond > ConditionLimit {
		return fmt.Errorf("%w: condition number %g", ErrSingularMatrix, cond)
	}
	d.lu = &lu
	return nil
}

// ToEigenbasis writes V^-1 src into dst, expressing a mode vector in the
// eigenbasis. dst and src may alias.
func (d *Decomposition) ToEigenbasis(dst, src []complex128) error {
	if len(dst) != d.n || len(src) != d.n {
		return fmt.Errorf("%w: dst=%d src=%d n=%d", core.ErrShapeMismatch, len(dst), len(src), d.n)
	}
	if err := d.factorize(); err != nil {
		return err
	}

	n := d.n
	rhs := mat.NewVecDense(2*n, nil)
	for i, v := range src {
		rhs.SetVec(i, real(v))
		rhs.SetVec(i+n, imag(v))
	}

	var x mat.VecDense
	if err := d.lu.SolveVecTo(&x, false, rhs); err != nil {
		return fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	for i := range n {
		dst[i] = complex(x.AtVec(i), x.AtVec(i+n))
	}
	return nil
}

// FromEigenbasis writes V src into dst, undoing [Decomposition.ToEigenbasis].
// dst and src must not alias.
func (d *Decomposition) FromEigenbasis(dst, src []complex128) error {
	if len(dst) != d.n || len(src) != d.n {
		return fmt.Errorf("%w: dst=%d src=%d n=%d", core.ErrShapeMismatch, len(dst), len(src), d.n)
	}

	vc := d.conjVectors()
	for i := range d.n {
		dst[i] = cmplxs.Dot(row(vc, i), src)
	}
	return nil
}

// conjVectors returns the element-wise conjugate of Vectors, so that
// cmplxs.Dot with one of its rows is a plain row-vector product with V.
func (d *Decomposition) conjVectors() *mat.CDense {
	if d.vconj == nil {
		d.vconj = mat.NewCDense(d.n, d.n, nil)
		d.vconj.Conj(d.Vectors)
	}
	return d.vconj
}

func row(m *mat.CDense, i int) []complex128 {
	raw := m.RawCMatrix()
	return raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
}

// Inverse returns V^-1.
func (d *Decomposition) Inverse() (*mat.CDense, error) {
	if err := d.factorize(); err != nil {
		return nil, err
	}

	n := d.n
	b := mat.NewDense(2*n, n, nil)
	for i := range n {
		b.Set(i, i, 1)
	}

	var x mat.Dense
	if err := d.lu.SolveTo(&x, false, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}

	inv := mat.NewCDense(n, n, nil)
	for i := range n {
		for j := range n {
			inv.Set(i, j, complex(x.At(i, j), x.At(i+n, j)))
		}
	}
	return inv, nil
}

// Reconstruct returns V diag(Values) V^-1, which equals the decomposed
// matrix up to rounding.
func (d *Decomposition) Reconstruct() (*mat.CDense, error) {
	inv, err := d.Inverse()
	if err != nil {
		return nil, err
	}

	n := d.n
	invT := mat.NewCDense(n, n, nil)
	invT.Copy(inv.T())

	// conj(V[i,k] * Values[k]) so that Dot yields sum_k V[i,k] Values[k] inv[k,j].
	scaled := make([]complex128, n)
	vc := d.conjVectors()
	out := mat.NewCDense(n, n, nil)
	for i := range n {
		cmplxs.MulConjTo(scaled, row(vc, i), d.Values)
		for j := range n {
			out.Set(i, j, cmplxs.Dot(scaled, row(invT, j)))
		}
	}
	return out, nil
}
