//go:build !cuda

package compute

import (
	"errors"

	"github.com/san-kum/quadsim/internal/quad"
)

var errNoCUDA = errors.New("built without cuda support")

type CUDADevice struct{}

func NewCUDADevice() *CUDADevice {
	return &CUDADevice{}
}

func (c *CUDADevice) Name() string    { return "cuda (not available)" }
func (c *CUDADevice) Available() bool { return false }
func (c *CUDADevice) Cleanup()        {}

func (c *CUDADevice) Configure(p quad.Params) (Constants, error) {
	return Constants{}, &quad.EngineUnavailableError{Engine: "cuda", Err: errNoCUDA}
}

func (c *CUDADevice) Integrate(k Constants) (quad.Result, error) {
	return quad.Result{}, &quad.EngineUnavailableError{Engine: "cuda", Err: errNoCUDA}
}
