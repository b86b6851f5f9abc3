//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lsimpson -lstdc++

typedef struct {
	float time;
	float value;
} simpson_result;

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern int set_gpu_constants(float left, float right, int segments, float step);
extern simpson_result integrate_on_gpu(float left, float right, int segments, float step);
*/
import "C"

import (
	"fmt"
	"sync"

	"github.com/san-kum/quadsim/internal/quad"
)

// CUDADevice drives the external Simpson kernel. The kernel reads its bounds
// from constant memory, which is process-wide, so uploads are tracked here and
// repeated when a different Constants value is integrated.
type CUDADevice struct {
	mu         sync.Mutex
	available  bool
	deviceName string
	uploaded   Constants
}

func NewCUDADevice() *CUDADevice {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &CUDADevice{
		available:  count > 0,
		deviceName: name,
	}
}

func (c *CUDADevice) Name() string {
	if c.available {
		return "cuda (" + c.deviceName + ")"
	}
	return "cuda (not available)"
}

func (c *CUDADevice) Available() bool { return c.available }

func (c *CUDADevice) Cleanup() {
	c.mu.Lock()
	c.uploaded = Constants{}
	c.mu.Unlock()
}

func (c *CUDADevice) Configure(p quad.Params) (Constants, error) {
	if !c.available {
		return Constants{}, &quad.EngineUnavailableError{Engine: c.Name()}
	}

	k, err := NewConstants(p)
	if err != nil {
		return Constants{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.upload(k); err != nil {
		return Constants{}, err
	}
	return k, nil
}

func (c *CUDADevice) Integrate(k Constants) (quad.Result, error) {
	if !c.available {
		return quad.Result{}, &quad.EngineUnavailableError{Engine: c.Name()}
	}
	if k.IsZero() {
		return quad.Result{}, &quad.ConfigurationError{Field: "constants", Value: k, Reason: "device not configured"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.uploaded != k {
		if err := c.upload(k); err != nil {
			return quad.Result{}, err
		}
	}

	r := C.integrate_on_gpu(C.float(k.left), C.float(k.right), C.int(k.segments), C.float(k.step))
	return quad.Result{Time: float64(r.time), Value: float64(r.value)}, nil
}

func (c *CUDADevice) upload(k Constants) error {
	if rc := C.set_gpu_constants(C.float(k.left), C.float(k.right), C.int(k.segments), C.float(k.step)); rc != 0 {
		return fmt.Errorf("set_gpu_constants: cuda error %d", int(rc))
	}
	c.uploaded = k
	return nil
}
