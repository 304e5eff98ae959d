package analysis

import (
	"math"

	"github.com/san-kum/chaosbloom/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent by following a
// trajectory and a copy perturbed by perturbation in its first coordinate.
// After every step the separation is logged and the copy is pulled back to
// the initial distance along the current separation direction.
//
// The result is in units of 1/time. It returns 0 for empty states,
// non-positive steps or perturbation, or if either trajectory stops being
// finite before any step was measured.
func LyapunovExponent(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt float64,
	steps int,
	perturbation float64,
) float64 {
	if len(x0) == 0 || steps <= 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation
	d0 := perturbation

	sumLog := 0.0
	count := 0
	t := 0.0

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, nil, t, dt)
		xp = integ.Step(sys, xp, nil, t, dt)
		t += dt

		if !x.IsValid() || !xp.IsValid() {
			break
		}

		sep := xp.Sub(x).Norm()
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
