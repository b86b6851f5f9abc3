package quad

import "math"

// Formula is the integrand. Non-positive input is not checked: zero yields -Inf
// and negative values yield NaN.
func Formula(x float64) float64 {
	return math.Log10(x)
}

// Formula32 evaluates the integrand in single precision.
func Formula32(x float32) float32 {
	return float32(math.Log10(float64(x)))
}

// Combine applies the composite Simpson weights to the boundary ordinates and
// the reduced interior sums.
func Combine(step, fLeft, fRight, evenSum, oddSum float64) float64 {
	return (step / 3) * (fLeft + fRight + 2*evenSum + 4*oddSum)
}
