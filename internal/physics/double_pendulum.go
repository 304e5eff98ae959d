package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/chaosbloom/internal/dynamo"
)

const (
	DefaultMass    = 10.0
	DefaultLength  = 150.0
	DefaultGravity = 0.2
)

// Indices into a double-pendulum state vector.
const (
	Theta1 = iota
	Theta2
	Omega1
	Omega2
)

type DoublePendulum struct {
	M1, M2  float64
	L1, L2  float64
	Gravity float64
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		M1: DefaultMass, M2: DefaultMass,
		L1: DefaultLength, L2: DefaultLength,
		Gravity: DefaultGravity,
	}
}

func (d *DoublePendulum) StateDim() int   { return 4 }
func (d *DoublePendulum) ControlDim() int { return 0 }

// SetLengths replaces both arm lengths. The ensemble calls it once per tick
// with the loudness-adjusted lengths before stepping any member.
func (d *DoublePendulum) SetLengths(l1, l2 float64) {
	d.L1, d.L2 = l1, l2
}

func (d *DoublePendulum) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	theta1, theta2, omega1, omega2 := x[Theta1], x[Theta2], x[Omega1], x[Omega2]
	m1, m2, l1, l2, g := d.M1, d.M2, d.L1, d.L2, d.Gravity

	delta := theta2 - theta1
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	den1 := (m1+m2)*l1 - m2*l1*cosD*cosD
	den2 := (l2 / l1) * den1

	alpha1 := (m2*l1*omega1*omega1*sinD*cosD +
		m2*g*math.Sin(theta2)*cosD +
		m2*l2*omega2*omega2*sinD -
		(m1+m2)*g*math.Sin(theta1)) / den1

	alpha2 := (-m2*l2*omega2*omega2*sinD*cosD +
		(m1+m2)*g*math.Sin(theta1)*cosD -
		(m1+m2)*l1*omega1*omega1*sinD -
		(m1+m2)*g*math.Sin(theta2)) / den2

	return dynamo.State{omega1, omega2, alpha1, alpha2}
}

// Energy returns kinetic plus potential energy. Height is measured against the
// pivot with y pointing down the screen, so a horizontal arm has zero potential.
func (d *DoublePendulum) Energy(x dynamo.State) float64 {
	theta1, theta2, omega1, omega2 := x[Theta1], x[Theta2], x[Omega1], x[Omega2]
	m1, m2, l1, l2, g := d.M1, d.M2, d.L1, d.L2, d.Gravity

	v1sq := l1 * l1 * omega1 * omega1
	v2sq := l1*l1*omega1*omega1 + l2*l2*omega2*omega2 +
		2*l1*l2*omega1*omega2*math.Cos(theta1-theta2)

	ke := 0.5*m1*v1sq + 0.5*m2*v2sq
	y1 := -l1 * math.Cos(theta1)
	y2 := y1 - l2*math.Cos(theta2)
	pe := m1*g*y1 + m2*g*y2

	return ke + pe
}

// EnergyScale is the largest potential swing of the system, used to express
// drift relative to something meaningful when the reference energy is zero.
func (d *DoublePendulum) EnergyScale() float64 {
	return (d.M1+d.M2)*d.Gravity*d.L1 + d.M2*d.Gravity*d.L2
}

// OuterMass returns the outer bob position relative to the pivot, in the
// member's own unrotated frame.
func (d *DoublePendulum) OuterMass(x dynamo.State) (float64, float64) {
	x1 := d.L1 * math.Sin(x[Theta1])
	y1 := d.L1 * math.Cos(x[Theta1])
	return x1 + d.L2*math.Sin(x[Theta2]), y1 + d.L2*math.Cos(x[Theta2])
}

func (d *DoublePendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"m1":      d.M1,
		"m2":      d.M2,
		"l1":      d.L1,
		"l2":      d.L2,
		"gravity": d.Gravity,
	}
}

func (d *DoublePendulum) SetParam(name string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %g", dynamo.ErrParameterBounds, name, value)
	}
	switch name {
	case "m1":
		d.M1 = value
	case "m2":
		d.M2 = value
	case "l1":
		d.L1 = value
	case "l2":
		d.L2 = value
	case "gravity":
		d.Gravity = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
