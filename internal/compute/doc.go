// Package compute provides the integration engines and the policy that picks
// between them.
//
// Two engines implement [Engine]:
//
//   - CPU: two goroutine workers reduce private even/odd partial sums
//   - Accelerator: a [Device] configured once per parameter set
//
// Devices are CUDA (build tag cuda, cgo) or a software emulation that runs the
// same kernel in single precision. [AutoSelectDevice] prefers CUDA.
//
// # Dispatch
//
// Problems below [DecisionThreshold] segments run on the CPU; larger ones run
// on the accelerator:
//
//	cpu, accel, _ := compute.NewEngines(compute.DeviceAuto, compute.DefaultGrid(), nil)
//	d := compute.NewDispatcher(cpu, accel)
//	res, err := d.Integrate(p)
//
// Build with CUDA support:
//
//	go build -tags cuda ./...
//
// The tagged build links libsimpson, which provides the kernel and the
// constant-memory setup call.
package compute
