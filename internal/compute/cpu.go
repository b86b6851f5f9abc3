package compute

import (
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/quadsim/internal/quad"
)

// CPUWorkers is the fixed size of the CPU engine's worker team.
const CPUWorkers = 2

type CPUEngine struct {
	workers int
	logger  *slog.Logger
}

func NewCPUEngine() *CPUEngine {
	return &CPUEngine{
		workers: CPUWorkers,
		logger:  slog.Default(),
	}
}

// SetLogger replaces the engine's logger; nil is ignored.
func (c *CPUEngine) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

func (c *CPUEngine) Name() string    { return "cpu" }
func (c *CPUEngine) Available() bool { return true }
func (c *CPUEngine) Cleanup()        {}

func (c *CPUEngine) Integrate(p quad.Params) (quad.Result, error) {
	if p.IsZero() {
		return quad.Result{}, &quad.ConfigurationError{Field: "params", Value: p, Reason: "not initialised"}
	}

	start := time.Now()
	value := c.simpson(p)
	elapsed := time.Since(start)

	c.logger.Debug("integrated", "engine", c.Name(), "segments", p.Segments(), "elapsed", elapsed)
	return quad.Result{Time: quad.Millis(elapsed), Value: value}, nil
}

func (c *CPUEngine) simpson(p quad.Params) float64 {
	n := p.Segments()

	evenSums := make([]float64, c.workers)
	oddSums := make([]float64, c.workers)

	var wg sync.WaitGroup
	chunkSize := (n - 1 + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := 1 + worker*chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}

			var even, odd float64
			for i := start; i < end; i++ {
				y := quad.Formula(p.Abscissa(i))
				if i%2 == 0 {
					even += y
				} else {
					odd += y
				}
			}

			evenSums[worker] = even
			oddSums[worker] = odd
		}(w)
	}

	wg.Wait()

	// worker order is fixed so repeated calls reduce identically
	var even, odd float64
	for w := 0; w < c.workers; w++ {
		even += evenSums[w]
		odd += oddSums[w]
	}

	return quad.Combine(p.Step(), quad.Formula(p.Left()), quad.Formula(p.Right()), even, odd)
}
