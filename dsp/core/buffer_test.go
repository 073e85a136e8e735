package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]complex128, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestEnsureLenGrow(t *testing.T) {
	out := EnsureLen(make([]complex128, 2), 5)
	if len(out) != 5 {
		t.Fatalf("len = %d, want 5", len(out))
	}
}

func TestToComplexRealPart(t *testing.T) {
	src := []float64{1.5, -2, 0}

	c := ToComplex(src)
	for i, v := range c {
		if imag(v) != 0 || real(v) != src[i] {
			t.Fatalf("c[%d] = %v, want %v", i, v, src[i])
		}
	}

	c[1] += 4i
	back := RealPart(c)
	for i := range back {
		if back[i] != src[i] {
			t.Fatalf("back[%d] = %v, want %v", i, back[i], src[i])
		}
	}
}

func TestSplitParts(t *testing.T) {
	re := make([]float64, 2)
	im := make([]float64, 2)
	SplitParts(re, im, []complex128{1 + 2i, -3 - 4i})

	if re[0] != 1 || im[0] != 2 || re[1] != -3 || im[1] != -4 {
		t.Fatalf("unexpected parts: re=%v im=%v", re, im)
	}
}
