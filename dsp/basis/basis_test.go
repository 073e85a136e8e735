package basis

import (
	"errors"
	"math/cmplx"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-fieldsim/dsp/core"
	"github.com/cwbudde/algo-fieldsim/internal/testutil"
)

func mustKernels(t *testing.T, channels, points, size int, data []float64) *KernelSet {
	t.Helper()
	ks, err := NewKernelSet(channels, points, size, data)
	require.NoError(t, err)
	return ks
}

func requireCDenseNear(t *testing.T, got *mat.CDense, want mat.Matrix, eps float64) {
	t.Helper()
	r, c := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, r, gr)
	require.Equal(t, c, gc)
	for i := range r {
		for j := range c {
			w := complex(want.At(i, j), 0)
			if d := cmplx.Abs(got.At(i, j) - w); d > eps {
				t.Fatalf("[%d,%d]: got %v, want %v (diff %g)", i, j, got.At(i, j), w, d)
			}
		}
	}
}

func TestNewKernelSetShape(t *testing.T) {
	_, err := NewKernelSet(2, 3, 2, make([]float64, 10))
	require.ErrorIs(t, err, core.ErrShapeMismatch)

	_, err = NewKernelSet(0, 3, 2, nil)
	require.ErrorIs(t, err, core.ErrShapeMismatch)

	ks, err := NewKernelSet(2, 3, 4, nil)
	require.NoError(t, err)
	require.Equal(t, 2, ks.Channels())
	require.Equal(t, 3, ks.Points())
	require.Equal(t, 4, ks.Size())
}

func TestKernelSetSetAndAt(t *testing.T) {
	ks := mustKernels(t, 2, 2, 2, nil)
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, ks.Set(1, 0, m))
	require.True(t, mat.Equal(m, ks.At(1, 0)))
	require.True(t, mat.Equal(mat.NewDense(2, 2, nil), ks.At(0, 0)))

	err := ks.Set(0, 0, mat.NewDense(3, 3, nil))
	require.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestLocalMatrixWeightedSum(t *testing.T) {
	const channels, points, size = 3, 4, 3
	ks := mustKernels(t, channels, points, size, testutil.RandomKernels(7, channels, points, size, 1))
	coef := []float64{0.5, -2, 1.25}

	for p := range points {
		got, err := ks.LocalMatrix(coef, p)
		require.NoError(t, err)

		want := mat.NewDense(size, size, nil)
		for j, c := range coef {
			for r := range size {
				for col := range size {
					want.Set(r, col, want.At(r, col)+c*ks.At(j, p).At(r, col))
				}
			}
		}
		require.True(t, mat.EqualApprox(got, want, 1e-14), "point %d", p)
	}
}

func TestLocalMatrixErrors(t *testing.T) {
	ks := mustKernels(t, 2, 3, 2, nil)

	_, err := ks.LocalMatrix([]float64{1}, 0)
	require.ErrorIs(t, err, core.ErrShapeMismatch)

	_, err = ks.LocalMatrix([]float64{1, 1}, 3)
	require.ErrorIs(t, err, core.ErrShapeMismatch)

	_, err = ks.LocalMatrix([]float64{1, 1}, -1)
	require.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestSolveReconstructsLocalMatrix(t *testing.T) {
	const channels, points, size = 2, 5, 4
	ks := mustKernels(t, channels, points, size, testutil.RandomKernels(11, channels, points, size, 1))
	coef := []float64{0.8, 1.3}

	for _, sorted := range []bool{false, true} {
		var opts []core.SolverOption
		if sorted {
			opts = append(opts, core.WithSortedEigenvalues())
		}
		s, err := NewSolver(ks, opts...)
		require.NoError(t, err)

		for p := range points {
			d, err := s.Solve(coef, p)
			require.NoError(t, err)
			require.Equal(t, size, d.Len())

			rec, err := d.Reconstruct()
			require.NoError(t, err)

			a, err := ks.LocalMatrix(coef, p)
			require.NoError(t, err)
			requireCDenseNear(t, rec, a, 1e-9)
		}
	}
}

func TestSolveComplexEigenvalues(t *testing.T) {
	ks := mustKernels(t, 1, 1, 2, []float64{0, -1, 1, 0})
	s, err := NewSolver(ks, core.WithSortedEigenvalues())
	require.NoError(t, err)

	d, err := s.Solve([]float64{2}, 0)
	require.NoError(t, err)
	testutil.RequireComplexNearlyEqual(t, d.Values, []complex128{-2i, 2i}, 1e-12)

	rec, err := d.Reconstruct()
	require.NoError(t, err)
	requireCDenseNear(t, rec, mat.NewDense(2, 2, []float64{0, -2, 2, 0}), 1e-12)
}

func TestSolveDiagonal(t *testing.T) {
	ks := mustKernels(t, 1, 1, 3, []float64{
		3, 0, 0,
		0, -1, 0,
		0, 0, 2,
	})
	s, err := NewSolver(ks, core.WithSortedEigenvalues())
	require.NoError(t, err)

	d, err := s.Solve([]float64{1}, 0)
	require.NoError(t, err)
	testutil.RequireComplexNearlyEqual(t, d.Values, []complex128{-1, 2, 3}, 1e-14)
}

func TestSortedMatchesUnsortedSet(t *testing.T) {
	const size = 5
	ks := mustKernels(t, 1, 1, size, testutil.RandomKernels(5, 1, 1, size, 1))

	plain, err := NewSolver(ks)
	require.NoError(t, err)
	sorted, err := NewSolver(ks, core.WithSortedEigenvalues())
	require.NoError(t, err)

	a, err := plain.Solve([]float64{1}, 0)
	require.NoError(t, err)
	b, err := sorted.Solve([]float64{1}, 0)
	require.NoError(t, err)

	want := slices.Clone(a.Values)
	slices.SortStableFunc(want, core.CompareComplex)
	testutil.RequireComplexNearlyEqual(t, b.Values, want, 1e-12)

	require.True(t, slices.IsSortedFunc(b.Values, core.CompareComplex))
}

func TestEigenbasisRoundTrip(t *testing.T) {
	const size = 4
	ks := mustKernels(t, 2, 1, size, testutil.DominantKernels(3, 2, 1, size))
	s, err := NewSolver(ks)
	require.NoError(t, err)

	d, err := s.Solve([]float64{1, 0.5}, 0)
	require.NoError(t, err)

	src := []complex128{1, -2 + 1i, 0.5i, 3}
	rot := make([]complex128, size)
	require.NoError(t, d.ToEigenbasis(rot, src))

	back := make([]complex128, size)
	require.NoError(t, d.FromEigenbasis(back, rot))
	testutil.RequireComplexNearlyEqual(t, back, src, 1e-12)

	// In-place rotation is allowed.
	inPlace := slices.Clone(src)
	require.NoError(t, d.ToEigenbasis(inPlace, inPlace))
	testutil.RequireComplexNearlyEqual(t, inPlace, rot, 1e-14)
}

func TestFromEigenbasisMultipliesByVectors(t *testing.T) {
	// Rotation blocks give complex eigenvectors, so a missing conjugation
	// would show up in the imaginary parts.
	ks := mustKernels(t, 1, 1, 4, []float64{
		0, -1, 0.2, 0,
		1, 0, 0, 0.3,
		0, 0, 0.5, -2,
		0.1, 0, 2, 0.5,
	})
	for _, opts := range [][]core.SolverOption{nil, {core.WithSortedEigenvalues()}} {
		s, err := NewSolver(ks, opts...)
		require.NoError(t, err)
		d, err := s.Solve([]float64{1.5}, 0)
		require.NoError(t, err)

		src := []complex128{1 - 1i, 0.5, -2i, 3 + 0.25i}
		want := make([]complex128, len(src))
		for i := range want {
			for j, v := range src {
				want[i] += d.Vectors.At(i, j) * v
			}
		}

		got := make([]complex128, len(src))
		require.NoError(t, d.FromEigenbasis(got, src))
		testutil.RequireComplexNearlyEqual(t, got, want, 1e-13)
	}
}

func TestEigenbasisDiagonalizes(t *testing.T) {
	const size = 3
	ks := mustKernels(t, 1, 1, size, testutil.DominantKernels(8, 1, 1, size))
	s, err := NewSolver(ks)
	require.NoError(t, err)

	d, err := s.Solve([]float64{1}, 0)
	require.NoError(t, err)

	// A v_k = lambda_k v_k for every eigenpair.
	a := ks.At(0, 0)
	for k := range size {
		for i := range size {
			var av complex128
			for j := range size {
				av += complex(a.At(i, j), 0) * d.Vectors.At(j, k)
			}
			lv := d.Values[k] * d.Vectors.At(i, k)
			if cmplx.Abs(av-lv) > 1e-12 {
				t.Fatalf("pair %d row %d: A v = %v, lambda v = %v", k, i, av, lv)
			}
		}
	}
}

func TestDefectiveMatrixIsReported(t *testing.T) {
	ks := mustKernels(t, 1, 1, 2, []float64{1, 1, 0, 1})
	s, err := NewSolver(ks)
	require.NoError(t, err)

	d, err := s.Solve([]float64{1}, 0)
	require.NoError(t, err)

	err = d.ToEigenbasis(make([]complex128, 2), []complex128{1, 1})
	if !errors.Is(err, ErrSingularMatrix) {
		t.Fatalf("expected ErrSingularMatrix, got %v", err)
	}

	_, err = d.Reconstruct()
	require.ErrorIs(t, err, ErrSingularMatrix)
}

func TestSolveIsDeterministic(t *testing.T) {
	const size = 4
	ks := mustKernels(t, 3, 2, size, testutil.RandomKernels(21, 3, 2, size, 1))
	s, err := NewSolver(ks)
	require.NoError(t, err)

	coef := []float64{1, -0.5, 0.25}
	a, err := s.Solve(coef, 1)
	require.NoError(t, err)
	b, err := s.Solve(coef, 1)
	require.NoError(t, err)

	require.Equal(t, a.Values, b.Values)
	require.True(t, mat.CEqual(a.Vectors, b.Vectors))
}

func TestDecomposeRejectsNonSquare(t *testing.T) {
	_, err := Decompose(mat.NewDense(2, 3, nil), false)
	require.ErrorIs(t, err, core.ErrShapeMismatch)

	_, err = NewSolver(nil)
	require.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestBufferLengthChecks(t *testing.T) {
	d, err := Decompose(mat.NewDense(2, 2, []float64{2, 0, 0, 3}), false)
	require.NoError(t, err)

	require.ErrorIs(t, d.ToEigenbasis(make([]complex128, 3), make([]complex128, 2)), core.ErrShapeMismatch)
	require.ErrorIs(t, d.FromEigenbasis(make([]complex128, 2), make([]complex128, 1)), core.ErrShapeMismatch)
}
