package quad

import (
	"fmt"
	"math"
	"time"
)

// Params is an immutable description of one integration problem.
type Params struct {
	left     float64
	right    float64
	segments int
	step     float64
}

// NewParams validates the bounds and segment count and derives the step.
func NewParams(left, right float64, segments int) (Params, error) {
	switch {
	case math.IsNaN(left) || math.IsInf(left, 0):
		return Params{}, &ConfigurationError{Field: "left", Value: left, Reason: "must be finite"}
	case math.IsNaN(right) || math.IsInf(right, 0):
		return Params{}, &ConfigurationError{Field: "right", Value: right, Reason: "must be finite"}
	case left >= right:
		return Params{}, &ConfigurationError{Field: "right", Value: right, Reason: fmt.Sprintf("must be greater than left (%g)", left)}
	case segments < 2:
		return Params{}, &ConfigurationError{Field: "segments", Value: segments, Reason: "must be at least 2"}
	case segments%2 != 0:
		return Params{}, &ConfigurationError{Field: "segments", Value: segments, Reason: "must be even"}
	case left <= 0:
		return Params{}, &DomainError{X: left}
	}

	return Params{
		left:     left,
		right:    right,
		segments: segments,
		step:     (right - left) / float64(segments),
	}, nil
}

// The problem integrated by a bare run.
const (
	DefaultLeft     = 2.0
	DefaultRight    = 1202.0
	DefaultSegments = 400000
)

// Default is log10 over [2, 1202] with 400000 segments.
var Default = MustParams(DefaultLeft, DefaultRight, DefaultSegments)

// MustParams is like NewParams but panics on invalid input.
func MustParams(left, right float64, segments int) Params {
	p, err := NewParams(left, right, segments)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Params) Left() float64  { return p.left }
func (p Params) Right() float64 { return p.right }
func (p Params) Segments() int  { return p.segments }
func (p Params) Step() float64  { return p.step }

// Abscissa returns the i-th ordinate location, left + step*i.
func (p Params) Abscissa(i int) float64 {
	return p.left + p.step*float64(i)
}

func (p Params) IsZero() bool { return p.segments == 0 }

func (p Params) String() string {
	return fmt.Sprintf("[%g, %g] segments=%d step=%g", p.left, p.right, p.segments, p.step)
}

// Result is the outcome of a single engine invocation.
type Result struct {
	Time  float64 `json:"time_ms"`
	Value float64 `json:"value"`
}

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
