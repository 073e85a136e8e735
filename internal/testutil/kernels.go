package testutil

import "math/rand"

// RandomKernels returns channels*points*size*size values laid out for
// basis.NewKernelSet. Every matrix has entries in [-amplitude, amplitude].
func RandomKernels(seed int64, channels, points, size int, amplitude float64) []float64 {
	out := make([]float64, channels*points*size*size)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DominantKernels is [RandomKernels] with distinct, well separated values
// 2*(r+1) added to the diagonal of every matrix. Weighted sums with positive
// coefficients stay diagonalizable with well-conditioned eigenvectors.
func DominantKernels(seed int64, channels, points, size int) []float64 {
	out := RandomKernels(seed, channels, points, size, 0.25)
	n := size * size
	for m := range channels * points {
		for r := range size {
			out[m*n+r*size+r] += 2 * float64(r+1)
		}
	}
	return out
}

// PositiveCoefficients returns n deterministic weights in [0.5, 1.5].
func PositiveCoefficients(seed int64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = 0.5 + rng.Float64()
	}
	return out
}
