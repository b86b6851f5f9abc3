package compute

import (
	"fmt"
	"math"

	"github.com/san-kum/quadsim/internal/quad"
)

// Device is the accelerator's two-call contract. Configure stores the problem
// in device constant state and returns it as an immutable handle; Integrate runs
// the Simpson kernel against that handle.
type Device interface {
	Name() string
	Available() bool
	Configure(p quad.Params) (Constants, error)
	Integrate(c Constants) (quad.Result, error)
	Cleanup()
}

// Constants is the single-precision problem description held by a device.
type Constants struct {
	left     float32
	right    float32
	step     float32
	segments int32
}

func NewConstants(p quad.Params) (Constants, error) {
	if p.IsZero() {
		return Constants{}, &quad.ConfigurationError{Field: "params", Value: p, Reason: "not initialised"}
	}
	if p.Segments() > math.MaxInt32 {
		return Constants{}, &quad.ConfigurationError{Field: "segments", Value: p.Segments(), Reason: "exceeds device int32 range"}
	}
	return Constants{
		left:     float32(p.Left()),
		right:    float32(p.Right()),
		step:     float32(p.Step()),
		segments: int32(p.Segments()),
	}, nil
}

func (c Constants) Left() float32  { return c.left }
func (c Constants) Right() float32 { return c.right }
func (c Constants) Step() float32  { return c.step }
func (c Constants) Segments() int  { return int(c.segments) }
func (c Constants) IsZero() bool   { return c.segments == 0 }

const (
	DeviceAuto     = "auto"
	DeviceCUDA     = "cuda"
	DeviceEmulated = "emulated"
	DeviceNone     = "none"
)

// DeviceKinds lists the accepted accelerator selections.
var DeviceKinds = []string{DeviceAuto, DeviceCUDA, DeviceEmulated, DeviceNone}

func NewDevice(kind string, grid Grid) (Device, error) {
	switch kind {
	case DeviceAuto, "":
		return AutoSelectDevice(grid), nil
	case DeviceCUDA:
		return NewCUDADevice(), nil
	case DeviceEmulated:
		return NewEmulatedDevice(grid), nil
	case DeviceNone:
		return disabledDevice{}, nil
	default:
		return nil, &quad.ConfigurationError{Field: "accelerator", Value: kind, Reason: fmt.Sprintf("must be one of %v", DeviceKinds)}
	}
}

// AutoSelectDevice prefers a CUDA device and falls back to the emulator.
func AutoSelectDevice(grid Grid) Device {
	cuda := NewCUDADevice()
	if cuda.Available() {
		return cuda
	}
	return NewEmulatedDevice(grid)
}

type disabledDevice struct{}

func (disabledDevice) Name() string    { return "none" }
func (disabledDevice) Available() bool { return false }
func (disabledDevice) Cleanup()        {}

func (disabledDevice) Configure(quad.Params) (Constants, error) {
	return Constants{}, &quad.EngineUnavailableError{Engine: "none"}
}

func (disabledDevice) Integrate(Constants) (quad.Result, error) {
	return quad.Result{}, &quad.EngineUnavailableError{Engine: "none"}
}
