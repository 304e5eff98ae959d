// Package canvas holds the persistent trail buffer that pendulum tips draw
// into. Segments only ever add light; the buffer is wiped solely by
// ClearAndRecenter.
package canvas
