package compute

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/san-kum/quadsim/internal/quad"
)

// AcceleratorEngine adapts a Device to the Engine interface. It serializes
// configure/integrate pairs and reconfigures the device only when the
// parameters change.
type AcceleratorEngine struct {
	mu         sync.Mutex
	dev        Device
	params     quad.Params
	constants  Constants
	configured bool
	logger     *slog.Logger
}

func NewAcceleratorEngine(dev Device) *AcceleratorEngine {
	return &AcceleratorEngine{dev: dev, logger: slog.Default()}
}

// SetLogger replaces the engine's logger; nil is ignored.
func (a *AcceleratorEngine) SetLogger(l *slog.Logger) {
	if l != nil {
		a.logger = l
	}
}

func (a *AcceleratorEngine) Name() string    { return a.dev.Name() }
func (a *AcceleratorEngine) Available() bool { return a.dev.Available() }

func (a *AcceleratorEngine) Cleanup() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configured = false
	a.dev.Cleanup()
}

// Configure pushes p to the device ahead of the first Integrate call.
func (a *AcceleratorEngine) Configure(p quad.Params) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.configureLocked(p)
}

func (a *AcceleratorEngine) Integrate(p quad.Params) (quad.Result, error) {
	if !a.dev.Available() {
		return quad.Result{}, a.unavailable(nil)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.configureLocked(p); err != nil {
		return quad.Result{}, err
	}

	res, err := a.dev.Integrate(a.constants)
	if err != nil {
		return quad.Result{}, a.unavailable(err)
	}
	a.logger.Debug("integrated", "engine", a.dev.Name(), "segments", p.Segments(), "elapsed_ms", res.Time)
	return res, nil
}

func (a *AcceleratorEngine) configureLocked(p quad.Params) error {
	if a.configured && a.params == p {
		return nil
	}

	c, err := a.dev.Configure(p)
	if err != nil {
		return a.unavailable(err)
	}

	a.params = p
	a.constants = c
	a.configured = true
	a.logger.Debug("accelerator configured", "device", a.dev.Name(), "params", p.String())
	return nil
}

func (a *AcceleratorEngine) unavailable(err error) error {
	if errors.Is(err, quad.ErrEngineUnavailable) || errors.Is(err, quad.ErrConfiguration) || errors.Is(err, quad.ErrDomain) {
		return err
	}
	return &quad.EngineUnavailableError{Engine: a.dev.Name(), Err: err}
}
