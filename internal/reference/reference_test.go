package reference

import (
	"math"
	"testing"

	"github.com/san-kum/quadsim/internal/quad"
)

func TestExact(t *testing.T) {
	// integral of log10 over [1, 10] is (10 ln 10 - 9) / ln 10
	expected := (10*math.Ln10 - 9) / math.Ln10
	if got := Exact(1, 10); math.Abs(got-expected) > 1e-12 {
		t.Errorf("Exact(1, 10) = %v, want %v", got, expected)
	}
}

func TestLegendreMatchesExact(t *testing.T) {
	tests := []struct {
		left, right float64
	}{
		{1, 10},
		{2, 1202},
		{0.5, 3},
	}

	for _, tt := range tests {
		exact := Exact(tt.left, tt.right)
		legendre := Legendre(tt.left, tt.right, 0)
		if rel := RelativeError(legendre, exact); rel > 1e-9 {
			t.Errorf("[%g, %g]: legendre %v vs exact %v (rel %e)", tt.left, tt.right, legendre, exact, rel)
		}
	}
}

func TestRelativeError(t *testing.T) {
	if got := RelativeError(1.1, 1.0); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("RelativeError(1.1, 1) = %v, want 0.1", got)
	}
	if got := RelativeError(-0.5, 0); got != 0.5 {
		t.Errorf("RelativeError(-0.5, 0) = %v, want 0.5", got)
	}
}

func TestVerify(t *testing.T) {
	p := quad.MustParams(1, 10, 2)
	exact := Exact(1, 10)

	pass := Verify(p, exact*(1+1e-5), 1e-3)
	if !pass.Pass {
		t.Errorf("expected pass, rel error %e", pass.RelError)
	}

	fail := Verify(p, exact*1.01, 1e-3)
	if fail.Pass {
		t.Errorf("expected fail, rel error %e", fail.RelError)
	}
}
