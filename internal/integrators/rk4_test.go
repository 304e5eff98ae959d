package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/chaosbloom/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int   { return 2 }
func (s *simpleDynamics) ControlDim() int { return 0 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{1.0, 0.0}
	_ = integ.Step(&simpleDynamics{}, x, nil, 0, 0.1)
	if x[0] != 1.0 || x[1] != 0.0 {
		t.Errorf("input state mutated: %v", x)
	}
}

func TestRK4BeatsEuler(t *testing.T) {
	dyn := &simpleDynamics{}
	dt := 0.1
	steps := 1000

	run := func(integ dynamo.Integrator) float64 {
		x := dynamo.State{1.0, 0.0}
		for i := 0; i < steps; i++ {
			x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
		}
		// unit circle: energy 0.5 should be conserved
		return math.Abs(0.5*(x[0]*x[0]+x[1]*x[1]) - 0.5)
	}

	rk4Drift := run(NewRK4())
	eulerDrift := run(NewEuler())

	if rk4Drift > 1e-4 {
		t.Errorf("rk4 drift too large: %e", rk4Drift)
	}
	if eulerDrift < 100*rk4Drift {
		t.Errorf("expected euler drift (%e) to dwarf rk4 drift (%e)", eulerDrift, rk4Drift)
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"rk4", false},
		{"euler", false},
		{"verlet", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := ByName(tt.name)
			if tt.wantErr {
				if !errors.Is(err, dynamo.ErrUnknownIntegrator) {
					t.Errorf("expected ErrUnknownIntegrator, got %v", err)
				}
				return
			}
			if err != nil || integ == nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
