package compute

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/quadsim/internal/quad"
)

// Grid is the launch geometry of the emulated device.
type Grid struct {
	Blocks  int `yaml:"blocks"`
	Threads int `yaml:"threads"`
}

func DefaultGrid() Grid {
	return Grid{Blocks: 256, Threads: 256}
}

func (g Grid) Valid() bool { return g.Blocks > 0 && g.Threads > 0 }

// EmulatedDevice executes the device kernel on the host in single precision.
// Each block runs on its own goroutine; lanes within a block stride through
// the interior ordinates and their partials are reduced pairwise.
type EmulatedDevice struct {
	grid Grid
}

func NewEmulatedDevice(grid Grid) *EmulatedDevice {
	if !grid.Valid() {
		grid = DefaultGrid()
	}
	return &EmulatedDevice{grid: grid}
}

func (d *EmulatedDevice) Name() string {
	return fmt.Sprintf("emulated (%dx%d)", d.grid.Blocks, d.grid.Threads)
}

func (d *EmulatedDevice) Available() bool { return true }
func (d *EmulatedDevice) Cleanup()        {}

func (d *EmulatedDevice) Configure(p quad.Params) (Constants, error) {
	return NewConstants(p)
}

func (d *EmulatedDevice) Integrate(c Constants) (quad.Result, error) {
	if c.IsZero() {
		return quad.Result{}, &quad.ConfigurationError{Field: "constants", Value: c, Reason: "device not configured"}
	}

	start := time.Now()
	value, err := d.launch(c)
	if err != nil {
		return quad.Result{}, err
	}
	elapsed := time.Since(start)

	return quad.Result{Time: quad.Millis(elapsed), Value: float64(value)}, nil
}

func (d *EmulatedDevice) launch(c Constants) (float32, error) {
	blocks, threads := d.grid.Blocks, d.grid.Threads
	n := int(c.segments)
	stride := blocks * threads

	blockEven := make([]float32, blocks)
	blockOdd := make([]float32, blocks)

	var g errgroup.Group
	for b := 0; b < blocks; b++ {
		g.Go(func() error {
			even := make([]float32, threads)
			odd := make([]float32, threads)

			for t := 0; t < threads; t++ {
				first := 1 + b*threads + t
				for i := first; i < n; i += stride {
					y := quad.Formula32(c.left + c.step*float32(i))
					if i%2 == 0 {
						even[t] += y
					} else {
						odd[t] += y
					}
				}
				if !finite(even[t]) || !finite(odd[t]) {
					return &quad.DomainError{X: float64(c.left + c.step*float32(first))}
				}
			}

			blockEven[b] = reduce(even)
			blockOdd[b] = reduce(odd)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var even, odd float32
	for b := 0; b < blocks; b++ {
		even += blockEven[b]
		odd += blockOdd[b]
	}

	fLeft := quad.Formula32(c.left)
	fRight := quad.Formula32(c.right)
	return (c.step / 3) * (fLeft + fRight + 2*even + 4*odd), nil
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// reduce folds v in place, halving the active width each pass.
func reduce(v []float32) float32 {
	if len(v) == 0 {
		return 0
	}
	for width := len(v); width > 1; {
		half := (width + 1) / 2
		for i := 0; i+half < width; i++ {
			v[i] += v[i+half]
		}
		width = half
	}
	return v[0]
}
