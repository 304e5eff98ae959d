// Package analysis estimates how chaotic a member's motion is.
//
// A positive largest Lyapunov exponent means nearby starting angles separate
// exponentially, which is what makes neighbouring members of the bloom drift
// apart:
//
//	lambda := analysis.LyapunovExponent(sys, integ, x0, dt, steps, 1e-8)
//	if lambda > 0 {
//	    // chaotic at these arm lengths
//	}
package analysis
