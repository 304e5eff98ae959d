// Package ensemble runs N independent double pendulums arranged at equal
// angular offsets around a shared center.
//
// Every member shares one [physics.DoublePendulum] parameter set and one
// loudness-driven length offset per tick, but carries its own angles and
// velocities. Members start near the unstable horizontal equilibrium with a
// tiny seeded jitter, so they desynchronise and trace a radially symmetric
// bloom once each member's outer mass is rotated by 2πi/N.
package ensemble
