package metrics

import (
	"math"

	"github.com/san-kum/chaosbloom/internal/dynamo"
)

// Stability is the fraction of observations whose state was finite and whose
// angular velocities stayed under threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.samples++
	if !x.IsValid() {
		s.violations++
		return
	}
	// velocities follow the angles
	for _, w := range x[len(x)/2:] {
		if math.Abs(w) > s.threshold {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
