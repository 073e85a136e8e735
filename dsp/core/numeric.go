package core

import (
	"errors"
	"math"
)

const defaultEpsilon = 1e-12

// ErrShapeMismatch reports array dimensions that do not agree with each other.
var ErrShapeMismatch = errors.New("core: shape mismatch")

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// CompareComplex orders complex values by real part, then imaginary part.
// It returns -1, 0 or +1 in the manner of [cmp.Compare].
func CompareComplex(a, b complex128) int {
	switch {
	case real(a) < real(b):
		return -1
	case real(a) > real(b):
		return 1
	case imag(a) < imag(b):
		return -1
	case imag(a) > imag(b):
		return 1
	}
	return 0
}
