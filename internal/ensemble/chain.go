package ensemble

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/chaosbloom/internal/dynamo"
	"github.com/san-kum/chaosbloom/internal/physics"
)

// Point is a position relative to the ensemble center, y pointing down.
type Point struct {
	X, Y float64
}

// Rotate returns p rotated by the angle whose sine and cosine are given.
func (p Point) Rotate(sin, cos float64) Point {
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Tuned defaults. Arm lengths, masses and gravity come from physics.
const (
	DefaultInstances = 30
	DefaultDamping   = 0.9997
	DefaultTimestep  = 1.0
	DefaultJitter    = 0.001
)

// Params are shared by every member for the lifetime of a chain.
type Params struct {
	Instances int
	Arm1      float64
	Arm2      float64
	Mass1     float64
	Mass2     float64
	Gravity   float64
	Damping   float64
	Timestep  float64
	Jitter    float64
}

func DefaultParams() Params {
	return Params{
		Instances: DefaultInstances,
		Arm1:      physics.DefaultLength,
		Arm2:      physics.DefaultLength,
		Mass1:     physics.DefaultMass,
		Mass2:     physics.DefaultMass,
		Gravity:   physics.DefaultGravity,
		Damping:   DefaultDamping,
		Timestep:  DefaultTimestep,
		Jitter:    DefaultJitter,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Instances < 1:
		return fmt.Errorf("%w: instances must be >= 1, got %d", dynamo.ErrParameterBounds, p.Instances)
	case p.Arm1 <= 0 || p.Arm2 <= 0:
		return fmt.Errorf("%w: arm lengths must be positive, got %g/%g", dynamo.ErrParameterBounds, p.Arm1, p.Arm2)
	case p.Mass1 <= 0 || p.Mass2 <= 0:
		return fmt.Errorf("%w: masses must be positive, got %g/%g", dynamo.ErrParameterBounds, p.Mass1, p.Mass2)
	case p.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive, got %g", dynamo.ErrParameterBounds, p.Gravity)
	case p.Damping <= 0 || p.Damping > 1:
		return fmt.Errorf("%w: damping must be in (0, 1], got %g", dynamo.ErrParameterBounds, p.Damping)
	case p.Timestep <= 0:
		return fmt.Errorf("%w: timestep must be positive, got %g", dynamo.ErrParameterBounds, p.Timestep)
	case p.Jitter < 0:
		return fmt.Errorf("%w: jitter must be >= 0, got %g", dynamo.ErrParameterBounds, p.Jitter)
	}
	return nil
}

// Member is one pendulum of the ensemble. Index in the chain is its identity.
type Member struct {
	State    dynamo.State
	Position Point // outer mass after phase rotation, center-relative

	// Last is the previous frame's Position. It is only meaningful when
	// HasLast is set; the first frame of a trail session has nothing to
	// connect to.
	Last    Point
	HasLast bool
}

type phase struct{ sin, cos float64 }

type Chain struct {
	params  Params
	sys     *physics.DoublePendulum
	integ   dynamo.Integrator
	members []Member
	phases  []phase
	t       float64
	ticks   int
}

// New seeds every member at π/2 plus a uniform jitter drawn from rng. A nil
// rng is only valid with zero jitter.
func New(p Params, integ dynamo.Integrator, rng *rand.Rand) (*Chain, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if integ == nil {
		return nil, fmt.Errorf("ensemble: nil integrator")
	}
	if rng == nil && p.Jitter > 0 {
		return nil, fmt.Errorf("ensemble: jitter %g requires a random source", p.Jitter)
	}

	c := &Chain{
		params: p,
		sys: &physics.DoublePendulum{
			M1: p.Mass1, M2: p.Mass2,
			L1: p.Arm1, L2: p.Arm2,
			Gravity: p.Gravity,
		},
		integ:   integ,
		members: make([]Member, p.Instances),
		phases:  make([]phase, p.Instances),
	}

	jitter := func() float64 {
		if p.Jitter == 0 {
			return 0
		}
		return (rng.Float64()*2 - 1) * p.Jitter
	}

	for i := range c.members {
		c.members[i].State = dynamo.State{
			math.Pi/2 + jitter(),
			math.Pi/2 + jitter(),
			0,
			0,
		}
		phi := 2 * math.Pi * float64(i) / float64(p.Instances)
		c.phases[i] = phase{sin: math.Sin(phi), cos: math.Cos(phi)}
		c.members[i].Position = c.place(i)
	}

	return c, nil
}

// Step advances every member by one timestep with both arms lengthened by
// offset. Members are processed in index order.
func (c *Chain) Step(offset float64) {
	c.sys.SetLengths(c.params.Arm1+offset, c.params.Arm2+offset)

	for i := range c.members {
		m := &c.members[i]
		next := c.integ.Step(c.sys, m.State, nil, c.t, c.params.Timestep)
		next[physics.Omega1] *= c.params.Damping
		next[physics.Omega2] *= c.params.Damping
		m.State = next
		m.Position = c.place(i)
	}

	c.t += c.params.Timestep
	c.ticks++
}

func (c *Chain) place(i int) Point {
	x, y := c.sys.OuterMass(c.members[i].State)
	ph := c.phases[i]
	return Point{X: x, Y: y}.Rotate(ph.sin, ph.cos)
}

// ForgetLastPoints drops every member's previous-frame point without touching
// angles or velocities.
func (c *Chain) ForgetLastPoints() {
	for i := range c.members {
		c.members[i].HasLast = false
		c.members[i].Last = Point{}
	}
}

// Advance records the current position as the last point for member i.
func (c *Chain) Advance(i int) {
	m := &c.members[i]
	m.Last = m.Position
	m.HasLast = true
}

func (c *Chain) Len() int { return len(c.members) }

// Member returns a copy of member i.
func (c *Chain) Member(i int) Member {
	m := c.members[i]
	m.State = m.State.Clone()
	return m
}

// Members exposes the backing slice for read-only iteration in the frame loop.
func (c *Chain) Members() []Member { return c.members }

// Lengths reports the arm lengths used by the most recent step.
func (c *Chain) Lengths() (float64, float64) { return c.sys.L1, c.sys.L2 }

func (c *Chain) Params() Params { return c.params }

func (c *Chain) Ticks() int { return c.ticks }

// Energy is member i's mechanical energy at the current arm lengths.
func (c *Chain) Energy(i int) float64 {
	return c.sys.Energy(c.members[i].State)
}

// EnergyScale is the potential swing at the base arm lengths.
func (c *Chain) EnergyScale() float64 {
	sys := *c.sys
	sys.SetLengths(c.params.Arm1, c.params.Arm2)
	return sys.EnergyScale()
}

// Check reports the first member whose state is no longer finite.
func (c *Chain) Check() error {
	for i, m := range c.members {
		if !m.State.IsValid() {
			return &dynamo.StepError{Tick: c.ticks, Member: i, Wrapped: dynamo.ErrInvalidState}
		}
	}
	return nil
}
