// Package quad provides the core primitives for composite Simpson quadrature.
//
// The package defines the value types shared by every integration engine:
//
//   - [Params]: validated integration bounds, segment count and step
//   - [Result]: elapsed time (milliseconds) and integral estimate of one call
//   - [Formula]: the fixed integrand, log10(x)
//   - [Combine]: Simpson weighting of reduced ordinate sums
//
// # Example
//
//	p, err := quad.NewParams(2, 1202, 400000)
//	if err != nil {
//	    return err
//	}
//	res, _ := compute.NewCPUEngine().Integrate(p)
//
// # Validation
//
// Params can only be built through [NewParams], which rejects odd or too small
// segment counts, empty or reversed intervals and intervals reaching x <= 0.
// [Formula] itself performs no checks.
package quad
