package compute

import (
	"errors"
	"log/slog"

	"github.com/san-kum/quadsim/internal/quad"
)

// DecisionThreshold is the segment count from which the accelerator is
// preferred; below it transfer and launch overhead dominate.
const DecisionThreshold = 40000

type Choice int

const (
	ChooseCPU Choice = iota
	ChooseAccelerator
)

func (c Choice) String() string {
	switch c {
	case ChooseCPU:
		return "cpu"
	case ChooseAccelerator:
		return "accelerator"
	default:
		return "unknown"
	}
}

// Select picks an engine for the given problem size using DecisionThreshold.
func Select(segments int) Choice {
	return selectWith(segments, DecisionThreshold)
}

func selectWith(segments, threshold int) Choice {
	if segments < threshold {
		return ChooseCPU
	}
	return ChooseAccelerator
}

// Dispatcher routes each call to the CPU or accelerator engine by problem
// size. It satisfies Engine itself.
type Dispatcher struct {
	cpu       Engine
	accel     Engine
	threshold int
	fallback  bool
	logger    *slog.Logger
}

type Option func(*Dispatcher)

func WithThreshold(segments int) Option {
	return func(d *Dispatcher) {
		if segments > 0 {
			d.threshold = segments
		}
	}
}

// WithFallback controls whether an unavailable accelerator is retried on the CPU.
func WithFallback(enabled bool) Option {
	return func(d *Dispatcher) { d.fallback = enabled }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

func NewDispatcher(cpu, accel Engine, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cpu:       cpu,
		accel:     accel,
		threshold: DecisionThreshold,
		fallback:  true,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Name() string    { return "optimized" }
func (d *Dispatcher) Available() bool { return d.cpu.Available() || d.accel.Available() }
func (d *Dispatcher) Threshold() int  { return d.threshold }

func (d *Dispatcher) Cleanup() {
	d.cpu.Cleanup()
	d.accel.Cleanup()
}

func (d *Dispatcher) Select(segments int) Choice {
	return selectWith(segments, d.threshold)
}

func (d *Dispatcher) Engine(c Choice) Engine {
	if c == ChooseAccelerator {
		return d.accel
	}
	return d.cpu
}

func (d *Dispatcher) Integrate(p quad.Params) (quad.Result, error) {
	choice := d.Select(p.Segments())
	engine := d.Engine(choice)
	d.logger.Debug("dispatch", "segments", p.Segments(), "threshold", d.threshold, "engine", engine.Name())

	res, err := engine.Integrate(p)
	if err == nil || choice == ChooseCPU {
		return res, err
	}
	if !d.fallback || !errors.Is(err, quad.ErrEngineUnavailable) {
		return res, err
	}

	d.logger.Warn("accelerator unavailable, falling back to cpu", "engine", engine.Name(), "err", err)
	return d.cpu.Integrate(p)
}
