// Package dynamo provides core simulation primitives for the pendulum ensemble.
//
// The package defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Hamiltonian]: systems that can report their total energy
//
// # Example
//
//	dyn := physics.NewDoublePendulum()
//	integ := integrators.NewRK4()
//	x = integ.Step(dyn, x, nil, t, dt)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT thread-safe. The ensemble
// drives a single integrator from the frame loop only.
package dynamo
