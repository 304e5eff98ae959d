package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/chaosbloom/internal/dynamo"
)

func TestDoublePendulumEquilibrium(t *testing.T) {
	dp := NewDoublePendulum()

	// At rest hanging straight down
	dx := dp.Derive(dynamo.State{0, 0, 0, 0}, nil, 0)

	for i, v := range dx {
		if math.Abs(v) > 1e-12 {
			t.Errorf("expected zero derivative at index %d, got %g", i, v)
		}
	}
}

func TestDoublePendulumDimensions(t *testing.T) {
	dp := NewDoublePendulum()

	if dp.StateDim() != 4 {
		t.Errorf("expected state dim 4, got %d", dp.StateDim())
	}
	if dp.ControlDim() != 0 {
		t.Errorf("expected control dim 0, got %d", dp.ControlDim())
	}
}

func TestDoublePendulumSymmetry(t *testing.T) {
	dp := NewDoublePendulum()

	// Mirror-image initial conditions give mirror-image accelerations
	dx1 := dp.Derive(dynamo.State{0.1, 0.2, 0, 0}, nil, 0)
	dx2 := dp.Derive(dynamo.State{-0.1, -0.2, 0, 0}, nil, 0)

	if math.Abs(dx1[Omega1]+dx2[Omega1]) > 1e-12 {
		t.Errorf("expected symmetric alpha1: %g vs %g", dx1[Omega1], dx2[Omega1])
	}
	if math.Abs(dx1[Omega2]+dx2[Omega2]) > 1e-12 {
		t.Errorf("expected symmetric alpha2: %g vs %g", dx1[Omega2], dx2[Omega2])
	}
}

func TestDoublePendulumHorizontalStart(t *testing.T) {
	dp := NewDoublePendulum()
	x := dynamo.State{math.Pi / 2, math.Pi / 2, 0, 0}

	if e := dp.Energy(x); math.Abs(e) > 1e-9 {
		t.Errorf("expected zero energy with both arms horizontal, got %g", e)
	}

	dx := dp.Derive(x, nil, 0)
	// Straight arms fall like a single rod: inner arm accelerates, outer arm
	// has no relative angular acceleration.
	if dx[Omega1] >= 0 {
		t.Errorf("expected inner arm to swing down (negative alpha1), got %g", dx[Omega1])
	}
	if math.Abs(dx[Omega2]) > 1e-12 {
		t.Errorf("expected zero alpha2 for aligned arms, got %g", dx[Omega2])
	}
}

func TestOuterMass(t *testing.T) {
	dp := NewDoublePendulum()
	x, y := dp.OuterMass(dynamo.State{0, 0, 0, 0})
	if math.Abs(x) > 1e-12 || math.Abs(y-300) > 1e-12 {
		t.Errorf("expected (0, 300) hanging down, got (%g, %g)", x, y)
	}

	x, y = dp.OuterMass(dynamo.State{math.Pi / 2, math.Pi / 2, 0, 0})
	if math.Abs(x-300) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("expected (300, 0) horizontal, got (%g, %g)", x, y)
	}
}

func TestSetParam(t *testing.T) {
	dp := NewDoublePendulum()

	if err := dp.SetParam("gravity", 0.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dp.GetParams()["gravity"] != 0.5 {
		t.Errorf("gravity not applied")
	}
	if err := dp.SetParam("gravity", -1); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if err := dp.SetParam("friction", 1); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
