package deriv_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fieldsim/dsp/deriv"
)

func ExampleApply() {
	const n = 64
	dx := 2 * math.Pi / n
	f := make([]float64, n)
	for i := range f {
		f[i] = math.Sin(float64(i) * dx)
	}

	d, _ := deriv.FirstDerivative(n, dx, 1)
	df, _ := deriv.Apply(d, f)

	fmt.Printf("df(0) = %.6f\n", df[0])

	// Output:
	// df(0) = 1.000000
}
