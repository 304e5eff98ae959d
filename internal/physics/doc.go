// Package physics provides the dynamical model behind each ensemble member.
//
// [DoublePendulum] implements [dynamo.System] with the standard two-mass
// point-pendulum equations. The units are stylised rather than SI: lengths are
// in pixels, one time unit is one rendered frame, and gravity is tuned for the
// look of the animation.
//
// The model also implements [dynamo.Hamiltonian] so integrator drift can be
// measured, and [dynamo.Configurable] for runtime parameter adjustment:
//
//	dp := physics.NewDoublePendulum()
//	dp.SetLengths(150+offset, 150+offset)
//	energy := dp.Energy(state)
package physics
