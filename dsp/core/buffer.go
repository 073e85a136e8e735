package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []complex128, n int) []complex128 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]complex128, n)
}

// ToComplex widens real samples into a new complex slice.
func ToComplex(src []float64) []complex128 {
	out := make([]complex128, len(src))
	for i, v := range src {
		out[i] = complex(v, 0)
	}
	return out
}

// RealPart returns the real component of every element of src.
func RealPart(src []complex128) []float64 {
	out := make([]float64, len(src))
	for i, c := range src {
		out[i] = real(c)
	}
	return out
}

// SplitParts writes the real and imaginary parts of src into re and im.
// re and im must have at least len(src) elements.
func SplitParts(re, im []float64, src []complex128) {
	for i, c := range src {
		re[i] = real(c)
		im[i] = imag(c)
	}
}
