package fftutil

// Sample is the element type accepted by the shift helpers.
type Sample interface {
	~float64 | ~complex128
}

// IFFTShift rotates src left by floor(n/2), moving the element at the grid
// midpoint to index 0.
func IFFTShift[T Sample](src []T) []T {
	n := len(src)
	out := make([]T, n)
	if n == 0 {
		return out
	}

	half := n / 2
	for i := range out {
		out[i] = src[(i+half)%n]
	}
	return out
}
