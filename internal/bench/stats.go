package bench

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/san-kum/quadsim/internal/quad"
)

// Stats aggregates per-call times in milliseconds. Until Finalize is called
// Average holds the running sum.
type Stats struct {
	Min     float64 `json:"min_ms"`
	Max     float64 `json:"max_ms"`
	Average float64 `json:"avg_ms"`
	Runs    int     `json:"runs"`
	final   bool
}

func NewStats() Stats {
	return Stats{Min: math.Inf(1)}
}

func (s *Stats) Observe(ms float64) {
	s.Min = math.Min(s.Min, ms)
	s.Max = math.Max(s.Max, ms)
	s.Average += ms
	s.Runs++
}

// Finalize divides the running sum by the number of observations.
func (s *Stats) Finalize() error {
	if s.final {
		return nil
	}
	if s.Runs < 1 {
		return &quad.ConfigurationError{Field: "runs", Value: s.Runs, Reason: "must be at least 1"}
	}
	s.Average /= float64(s.Runs)
	s.final = true
	return nil
}

// Snapshot returns a finalized copy without modifying s.
func (s Stats) Snapshot() (Stats, error) {
	c := s
	err := c.Finalize()
	return c, err
}

func (s Stats) Finalized() bool { return s.final }

func (s Stats) String() string {
	return fmt.Sprintf("min=%.3fms avg=%.3fms max=%.3fms runs=%d", s.Min, s.Average, s.Max, s.Runs)
}

type statsJSON struct {
	Min     float64 `json:"min_ms"`
	Max     float64 `json:"max_ms"`
	Average float64 `json:"avg_ms"`
	Runs    int     `json:"runs"`
	Final   bool    `json:"final"`
}

// MarshalJSON keeps the finalized flag so decoded stats are not averaged twice.
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(statsJSON{Min: s.Min, Max: s.Max, Average: s.Average, Runs: s.Runs, Final: s.final})
}

func (s *Stats) UnmarshalJSON(data []byte) error {
	var v statsJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Stats{Min: v.Min, Max: v.Max, Average: v.Average, Runs: v.Runs, final: v.Final}
	return nil
}
