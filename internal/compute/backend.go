package compute

import (
	"log/slog"

	"github.com/san-kum/quadsim/internal/quad"
)

// Engine is an interchangeable integration strategy. Integrate blocks until the
// estimate is complete; calls on one Engine must not overlap.
type Engine interface {
	Name() string
	Available() bool
	Integrate(p quad.Params) (quad.Result, error)
	Cleanup()
}

// NewEngines builds the CPU engine and an accelerator engine over the device
// selected by kind. Both log through logger, or slog.Default when it is nil.
func NewEngines(kind string, grid Grid, logger *slog.Logger) (*CPUEngine, *AcceleratorEngine, error) {
	dev, err := NewDevice(kind, grid)
	if err != nil {
		return nil, nil, err
	}
	cpu := NewCPUEngine()
	cpu.SetLogger(logger)
	accel := NewAcceleratorEngine(dev)
	accel.SetLogger(logger)
	return cpu, accel, nil
}
