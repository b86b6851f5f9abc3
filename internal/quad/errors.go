package quad

import (
	"errors"
	"fmt"
)

// Domain errors for integration operations.
var (
	// ErrConfiguration indicates integration or benchmark parameters that cannot
	// describe a valid Simpson problem.
	ErrConfiguration = errors.New("quad: invalid configuration")

	// ErrDomain indicates the interval reaches outside the integrand's domain.
	ErrDomain = errors.New("quad: integrand evaluated outside x > 0")

	// ErrEngineUnavailable indicates an engine cannot run on this host.
	ErrEngineUnavailable = errors.New("quad: engine unavailable")
)

// ConfigurationError reports which field was rejected and why.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s=%v %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// DomainError carries the offending abscissa.
type DomainError struct {
	X float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%v (x=%g)", ErrDomain, e.X)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// EngineUnavailableError wraps the cause of an engine failure.
type EngineUnavailableError struct {
	Engine string
	Err    error
}

func (e *EngineUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", ErrEngineUnavailable, e.Engine)
	}
	return fmt.Sprintf("%v: %s: %v", ErrEngineUnavailable, e.Engine, e.Err)
}

func (e *EngineUnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEngineUnavailable}
	}
	return []error{ErrEngineUnavailable, e.Err}
}
