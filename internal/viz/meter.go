package viz

import "github.com/charmbracelet/harmonica"

// Meter eases a displayed level toward its target with a damped spring so
// the loudness bar does not flicker between frames.
type Meter struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func NewMeter(fps int, frequency, damping float64) *Meter {
	return &Meter{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Update moves one frame toward target and returns the displayed level.
func (m *Meter) Update(target float64) float64 {
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, target)
	return m.pos
}

func (m *Meter) Value() float64 { return m.pos }
