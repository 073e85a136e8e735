// Package basis computes the per-point local eigenbasis of a
// coefficient-weighted sum of kernel matrices.
//
// A [KernelSet] stores one square matrix per (channel, point) pair. For a
// point i the local operator is
//
//	A_i = sum_j coef[j] * K[j, i]
//
// and [Solver.Solve] returns its general (non-symmetric) eigendecomposition
// A_i = V diag(values) V^-1. Eigenvalues and eigenvectors may be complex for
// real input. A [Decomposition] can rotate a mode vector into the
// eigenbasis (solve V x = b) and back (V x).
//
// Eigenpairs come in the order the underlying LAPACK-style solver returns
// them unless the solver is configured with
// [core.WithSortedEigenvalues], which orders them by real part, then
// imaginary part. Near-degenerate matrices can make the native order
// unstable between runs.
package basis
