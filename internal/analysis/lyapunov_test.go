package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/chaosbloom/internal/dynamo"
	"github.com/san-kum/chaosbloom/internal/integrators"
	"github.com/san-kum/chaosbloom/internal/physics"
)

// growth is dx/dt = rate * x, whose exponent is exactly rate.
type growth struct{ rate float64 }

func (g growth) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	out := make(dynamo.State, len(x))
	for i := range x {
		out[i] = g.rate * x[i]
	}
	return out
}

func (g growth) StateDim() int   { return 1 }
func (g growth) ControlDim() int { return 0 }

func TestLyapunovLinear(t *testing.T) {
	tests := []struct {
		name string
		rate float64
	}{
		{"expanding", 0.5},
		{"contracting", -0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LyapunovExponent(growth{tt.rate}, integrators.NewRK4(), dynamo.State{1}, 0.01, 1000, 1e-6)
			if math.Abs(got-tt.rate) > 1e-3 {
				t.Errorf("expected exponent %f, got %f", tt.rate, got)
			}
		})
	}
}

func TestLyapunovDoublePendulum(t *testing.T) {
	sys := physics.NewDoublePendulum()

	chaotic := LyapunovExponent(sys, integrators.NewRK4(), dynamo.State{math.Pi / 2, math.Pi / 2, 0, 0}, 1.0, 5000, 1e-8)
	gentle := LyapunovExponent(sys, integrators.NewRK4(), dynamo.State{0.02, 0.02, 0, 0}, 1.0, 5000, 1e-8)

	if chaotic <= 0 {
		t.Errorf("expected positive exponent from the horizontal start, got %f", chaotic)
	}
	if chaotic <= gentle {
		t.Errorf("expected horizontal start (%f) to be more chaotic than small swings (%f)", chaotic, gentle)
	}
}

func TestLyapunovDegenerate(t *testing.T) {
	rk4 := integrators.NewRK4()
	sys := physics.NewDoublePendulum()
	x0 := dynamo.State{1, 1, 0, 0}

	cases := map[string]float64{
		"empty state":       LyapunovExponent(sys, rk4, nil, 1, 10, 1e-8),
		"no steps":          LyapunovExponent(sys, rk4, x0, 1, 0, 1e-8),
		"zero dt":           LyapunovExponent(sys, rk4, x0, 0, 10, 1e-8),
		"zero perturbation": LyapunovExponent(sys, rk4, x0, 1, 10, 0),
	}
	for name, got := range cases {
		if got != 0 {
			t.Errorf("%s: expected 0, got %f", name, got)
		}
	}
}
