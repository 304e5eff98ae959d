package ensemble_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaosbloom/internal/dynamo"
	"github.com/san-kum/chaosbloom/internal/ensemble"
	"github.com/san-kum/chaosbloom/internal/integrators"
)

func newChain(p ensemble.Params, integ dynamo.Integrator, seed int64) *ensemble.Chain {
	var rng *rand.Rand
	if p.Jitter > 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	c, err := ensemble.New(p, integ, rng)
	Expect(err).NotTo(HaveOccurred())
	return c
}

// maxDrift runs a single undamped member and returns the largest absolute
// energy deviation from the starting value. Non-finite energy counts as +Inf.
func maxDrift(integ dynamo.Integrator, steps int) (float64, float64) {
	p := ensemble.DefaultParams()
	p.Instances = 1
	p.Damping = 1.0
	c := newChain(p, integ, 7)

	e0 := c.Energy(0)
	worst := 0.0
	for i := 0; i < steps; i++ {
		c.Step(0)
		d := math.Abs(c.Energy(0) - e0)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return math.Inf(1), c.EnergyScale()
		}
		worst = math.Max(worst, d)
	}
	return worst, c.EnergyScale()
}

var _ = Describe("Chain", func() {
	Describe("construction", func() {
		It("seeds members near the horizontal with zero velocity", func() {
			p := ensemble.DefaultParams()
			c := newChain(p, integrators.NewRK4(), 1)

			Expect(c.Len()).To(Equal(30))
			for i := 0; i < c.Len(); i++ {
				m := c.Member(i)
				Expect(m.State[0]).To(BeNumerically("~", math.Pi/2, p.Jitter))
				Expect(m.State[1]).To(BeNumerically("~", math.Pi/2, p.Jitter))
				Expect(m.State[2]).To(BeZero())
				Expect(m.State[3]).To(BeZero())
				Expect(m.HasLast).To(BeFalse())
			}
		})

		DescribeTable("rejects out-of-bounds parameters",
			func(mutate func(*ensemble.Params)) {
				p := ensemble.DefaultParams()
				mutate(&p)
				_, err := ensemble.New(p, integrators.NewRK4(), rand.New(rand.NewSource(1)))
				Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
			},
			Entry("no instances", func(p *ensemble.Params) { p.Instances = 0 }),
			Entry("zero arm", func(p *ensemble.Params) { p.Arm2 = 0 }),
			Entry("negative mass", func(p *ensemble.Params) { p.Mass1 = -1 }),
			Entry("zero gravity", func(p *ensemble.Params) { p.Gravity = 0 }),
			Entry("damping above one", func(p *ensemble.Params) { p.Damping = 1.01 }),
			Entry("zero damping", func(p *ensemble.Params) { p.Damping = 0 }),
			Entry("zero timestep", func(p *ensemble.Params) { p.Timestep = 0 }),
		)

		It("requires a random source when jitter is enabled", func() {
			_, err := ensemble.New(ensemble.DefaultParams(), integrators.NewRK4(), nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Step", func() {
		It("applies the length offset to both arms for every member", func() {
			c := newChain(ensemble.DefaultParams(), integrators.NewRK4(), 1)
			c.Step(25)
			l1, l2 := c.Lengths()
			Expect(l1).To(Equal(175.0))
			Expect(l2).To(Equal(175.0))

			for _, m := range c.Members() {
				r := math.Hypot(m.Position.X, m.Position.Y)
				Expect(r).To(BeNumerically("<=", l1+l2+1e-9))
			}
		})

		It("bleeds energy when damped", func() {
			p := ensemble.DefaultParams()
			p.Instances = 1
			c := newChain(p, integrators.NewRK4(), 3)

			// let it fall first so there is kinetic energy to lose
			for i := 0; i < 200; i++ {
				c.Step(0)
			}
			e := c.Energy(0)
			for i := 0; i < 5000; i++ {
				c.Step(0)
			}
			Expect(c.Energy(0)).To(BeNumerically("<", e))
		})

		It("stays finite under sustained loud input", func() {
			c := newChain(ensemble.DefaultParams(), integrators.NewRK4(), 5)
			for i := 0; i < 3000; i++ {
				c.Step(50)
			}
			Expect(c.Check()).To(Succeed())
		})
	})

	Describe("energy conservation without damping", func() {
		It("stays bounded under RK4 over 10,000 steps", func() {
			drift, scale := maxDrift(integrators.NewRK4(), 10000)
			Expect(drift).To(BeNumerically("<", 0.01*scale))
		})

		It("drifts past the same bound under Euler", func() {
			drift, scale := maxDrift(integrators.NewEuler(), 10000)
			Expect(drift).To(BeNumerically(">", 0.01*scale))
		})
	})

	Describe("determinism", func() {
		It("reproduces trajectories for the same seed and offsets", func() {
			p := ensemble.DefaultParams()
			a := newChain(p, integrators.NewRK4(), 42)
			b := newChain(p, integrators.NewRK4(), 42)

			for tick := 0; tick < 500; tick++ {
				offset := float64(tick%50) * 0.7
				a.Step(offset)
				b.Step(offset)
			}

			for i := 0; i < p.Instances; i++ {
				Expect(a.Member(i).State).To(Equal(b.Member(i).State))
				Expect(a.Member(i).Position).To(Equal(b.Member(i).Position))
			}
		})

		It("reproduces trajectories with zero jitter", func() {
			p := ensemble.DefaultParams()
			p.Jitter = 0
			a := newChain(p, integrators.NewRK4(), 0)
			b := newChain(p, integrators.NewRK4(), 0)
			for tick := 0; tick < 300; tick++ {
				a.Step(10)
				b.Step(10)
			}
			Expect(a.Member(3).State).To(Equal(b.Member(3).State))
		})
	})

	Describe("radial symmetry", func() {
		It("places member i at member 0 rotated by 2πi/N", func() {
			p := ensemble.DefaultParams()
			p.Instances = 7
			p.Jitter = 0
			c := newChain(p, integrators.NewRK4(), 0)

			for tick := 0; tick < 400; tick++ {
				c.Step(float64(tick % 30))

				ref := c.Member(0).Position
				for i := 1; i < p.Instances; i++ {
					phi := 2 * math.Pi * float64(i) / float64(p.Instances)
					want := ref.Rotate(math.Sin(phi), math.Cos(phi))
					got := c.Member(i).Position
					Expect(got.X).To(BeNumerically("~", want.X, 1e-9))
					Expect(got.Y).To(BeNumerically("~", want.Y, 1e-9))
				}
			}
		})
	})

	Describe("last points", func() {
		It("forgets trail anchors without touching physics", func() {
			c := newChain(ensemble.DefaultParams(), integrators.NewRK4(), 9)
			c.Step(0)
			for i := 0; i < c.Len(); i++ {
				c.Advance(i)
			}
			before := c.Member(4)
			Expect(before.HasLast).To(BeTrue())
			Expect(before.Last).To(Equal(before.Position))

			c.ForgetLastPoints()
			after := c.Member(4)
			Expect(after.HasLast).To(BeFalse())
			Expect(after.State).To(Equal(before.State))
			Expect(after.Position).To(Equal(before.Position))
		})
	})
})
