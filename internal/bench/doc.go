// Package bench repeats engine calls and aggregates their timings.
//
// [Benchmark] folds each call's elapsed time into [Stats]: minimum, maximum and
// a running sum that [Stats.Finalize] turns into the average. Calls run
// strictly one after another.
//
//	stats, err := bench.Benchmark(func() (quad.Result, error) {
//	    return engine.Integrate(p)
//	}, 100)
package bench
