package lp

import (
	"math"
	"testing"
)

func TestClampNonNegative(t *testing.T) {
	out, ok := ClampNonNegative([]float64{1.5, 0, -1e-9, -1e-7})
	if !ok {
		t.Fatal("expected clamp to succeed")
	}
	want := []float64{1.5, 0, 0, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestClampNonNegativeRejectsLargeNegatives(t *testing.T) {
	if _, ok := ClampNonNegative([]float64{0.5, -0.01}); ok {
		t.Fatal("expected clamp to reject a significantly negative value")
	}
}

func TestProblemBounds(t *testing.T) {
	p := Problem{Cost: []float64{1, 1}}
	if p.LowerBound(0) != 0 {
		t.Errorf("default lower bound = %v, want 0", p.LowerBound(0))
	}
	if !math.IsInf(p.UpperBound(1), 1) {
		t.Errorf("default upper bound = %v, want +Inf", p.UpperBound(1))
	}
	p.Lower = []float64{2, 3}
	p.Upper = []float64{4, 5}
	if p.LowerBound(1) != 3 || p.UpperBound(0) != 4 {
		t.Error("explicit bounds not honoured")
	}
}
