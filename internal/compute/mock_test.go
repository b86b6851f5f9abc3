package compute

import (
	"github.com/san-kum/quadsim/internal/quad"
)

type mockEngine struct {
	name      string
	available bool
	value     float64
	err       error
	calls     int
}

func (m *mockEngine) Name() string    { return m.name }
func (m *mockEngine) Available() bool { return m.available }
func (m *mockEngine) Cleanup()        {}

func (m *mockEngine) Integrate(p quad.Params) (quad.Result, error) {
	m.calls++
	if m.err != nil {
		return quad.Result{}, m.err
	}
	return quad.Result{Time: 1, Value: m.value}, nil
}

type mockDevice struct {
	available  bool
	failWith   error
	configures int
	integrates int
	last       Constants
}

func (m *mockDevice) Name() string    { return "mock" }
func (m *mockDevice) Available() bool { return m.available }
func (m *mockDevice) Cleanup()        {}

func (m *mockDevice) Configure(p quad.Params) (Constants, error) {
	m.configures++
	return NewConstants(p)
}

func (m *mockDevice) Integrate(c Constants) (quad.Result, error) {
	m.integrates++
	m.last = c
	if m.failWith != nil {
		return quad.Result{}, m.failWith
	}
	return quad.Result{Time: 2, Value: float64(c.Right() - c.Left())}, nil
}
