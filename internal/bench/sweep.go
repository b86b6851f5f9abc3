package bench

import (
	"fmt"
	"slices"

	"github.com/san-kum/quadsim/internal/compute"
	"github.com/san-kum/quadsim/internal/quad"
)

// DefaultSizes is a segment ladder straddling the dispatch threshold.
var DefaultSizes = []int{1000, 10000, 20000, 39998, 40000, 100000, 400000, 1000000}

// Sweep holds the average time of every engine at every ladder size.
type Sweep struct {
	Sizes    []int
	Engines  []string
	Averages [][]float64 // [engine][size]
	Values   [][]float64
}

// RunSweep benchmarks each engine at each size over [left, right]. Sizes are
// swept in ascending order and engines run one after another.
func RunSweep(engines []compute.Engine, left, right float64, sizes []int, runs int) (*Sweep, error) {
	if len(engines) == 0 {
		return nil, &quad.ConfigurationError{Field: "engines", Value: 0, Reason: "need at least one engine"}
	}
	if len(sizes) == 0 {
		return nil, &quad.ConfigurationError{Field: "sizes", Value: sizes, Reason: "must not be empty"}
	}

	sizes = slices.Clone(sizes)
	slices.Sort(sizes)

	params := make([]quad.Params, len(sizes))
	for i, n := range sizes {
		p, err := quad.NewParams(left, right, n)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}

	sw := &Sweep{
		Sizes:    sizes,
		Engines:  make([]string, len(engines)),
		Averages: make([][]float64, len(engines)),
		Values:   make([][]float64, len(engines)),
	}
	for e, engine := range engines {
		sw.Engines[e] = engine.Name()
		sw.Averages[e] = make([]float64, len(sizes))
		sw.Values[e] = make([]float64, len(sizes))
		for i, p := range params {
			report, err := Run(engine, p, runs)
			if err != nil {
				return nil, fmt.Errorf("sweep n=%d: %w", p.Segments(), err)
			}
			sw.Averages[e][i] = report.Stats.Average
			sw.Values[e][i] = report.Value()
		}
	}
	return sw, nil
}

// Crossover returns the smallest ladder size from which engine fast is quicker
// than engine slow at every larger size. ok is false when fast never wins at
// the top of the ladder. Sizes must be ascending, as RunSweep leaves them.
func (s *Sweep) Crossover(slow, fast int) (size int, ok bool) {
	if slow < 0 || fast < 0 || slow >= len(s.Averages) || fast >= len(s.Averages) {
		return 0, false
	}
	for i := len(s.Sizes) - 1; i >= 0; i-- {
		if s.Averages[fast][i] >= s.Averages[slow][i] {
			break
		}
		size, ok = s.Sizes[i], true
	}
	return size, ok
}
