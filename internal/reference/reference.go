// Package reference computes independent estimates of the integral of log10
// used to check engine output.
package reference

import (
	"math"

	gquad "gonum.org/v1/gonum/integrate/quad"

	"github.com/san-kum/quadsim/internal/quad"
)

// DefaultLegendrePoints is the Gauss-Legendre order used by Legendre when n <= 0.
const DefaultLegendrePoints = 64

// Tolerance is the relative error accepted for single-precision engines.
const Tolerance = 1e-3

// Antiderivative of log10(x): (x ln x - x) / ln 10.
func Antiderivative(x float64) float64 {
	return (x*math.Log(x) - x) / math.Ln10
}

// Exact returns the closed-form integral of log10 over [left, right].
func Exact(left, right float64) float64 {
	return Antiderivative(right) - Antiderivative(left)
}

// Legendre estimates the integral with an n-point Gauss-Legendre rule applied
// on panels whose right end is at most twice their left end, keeping the log
// singularity at 0 far from every panel. left must be positive.
func Legendre(left, right float64, n int) float64 {
	if n <= 0 {
		n = DefaultLegendrePoints
	}

	var sum float64
	for a := left; a < right; {
		b := math.Min(2*a, right)
		sum += gquad.Fixed(quad.Formula, a, b, n, gquad.Legendre{}, 0)
		a = b
	}
	return sum
}

// RelativeError is |got-want| / |want|, or the absolute error when want is 0.
func RelativeError(got, want float64) float64 {
	if want == 0 {
		return math.Abs(got)
	}
	return math.Abs(got-want) / math.Abs(want)
}

// Check compares an estimate for p against the closed form.
type Check struct {
	Exact    float64
	Legendre float64
	Got      float64
	RelError float64
	Pass     bool
}

func Verify(p quad.Params, got, tolerance float64) Check {
	exact := Exact(p.Left(), p.Right())
	rel := RelativeError(got, exact)
	return Check{
		Exact:    exact,
		Legendre: Legendre(p.Left(), p.Right(), 0),
		Got:      got,
		RelError: rel,
		Pass:     rel < tolerance,
	}
}
