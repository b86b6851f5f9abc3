package bench

import (
	"fmt"
	"time"

	"github.com/san-kum/quadsim/internal/compute"
	"github.com/san-kum/quadsim/internal/quad"
)

// Call is one engine invocation.
type Call func() (quad.Result, error)

// Benchmark invokes call exactly runs times and returns the finalized stats.
// An error from call stops the loop.
func Benchmark(call Call, runs int) (Stats, error) {
	stats, _, err := benchmark(call, runs, nil)
	return stats, err
}

func benchmark(call Call, runs int, onResult func(quad.Result)) (Stats, []quad.Result, error) {
	if runs < 1 {
		return Stats{}, nil, &quad.ConfigurationError{Field: "runs", Value: runs, Reason: "must be at least 1"}
	}

	stats := NewStats()
	samples := make([]quad.Result, 0, runs)

	for i := 0; i < runs; i++ {
		res, err := call()
		if err != nil {
			return Stats{}, nil, fmt.Errorf("run %d: %w", i+1, err)
		}
		stats.Observe(res.Time)
		samples = append(samples, res)
		if onResult != nil {
			onResult(res)
		}
	}

	if err := stats.Finalize(); err != nil {
		return Stats{}, nil, err
	}
	return stats, samples, nil
}

// Report is a complete benchmark of one engine.
type Report struct {
	Engine  string
	Params  quad.Params
	Stats   Stats
	Samples []quad.Result
	Started time.Time
}

// Value is the estimate from the last sample.
func (r *Report) Value() float64 {
	if len(r.Samples) == 0 {
		return 0
	}
	return r.Samples[len(r.Samples)-1].Value
}

// Run benchmarks engine on p and keeps every sample.
func Run(engine compute.Engine, p quad.Params, runs int) (*Report, error) {
	return RunWithCallback(engine, p, runs, nil)
}

// RunWithCallback is Run with a hook invoked after every sample.
func RunWithCallback(engine compute.Engine, p quad.Params, runs int, onResult func(quad.Result)) (*Report, error) {
	started := time.Now()
	stats, samples, err := benchmark(func() (quad.Result, error) {
		return engine.Integrate(p)
	}, runs, onResult)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", engine.Name(), err)
	}

	return &Report{
		Engine:  engine.Name(),
		Params:  p,
		Stats:   stats,
		Samples: samples,
		Started: started,
	}, nil
}
