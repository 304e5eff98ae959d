package render

import (
	"image/color"
	"math"

	"github.com/san-kum/chaosbloom/internal/ensemble"
	"github.com/san-kum/chaosbloom/internal/viewport"
)

// Loudness is a non-blocking source of the current input energy.
type Loudness interface {
	CurrentLoudness() float64
}

// LoudnessFunc adapts a plain function to Loudness.
type LoudnessFunc func() float64

func (f LoudnessFunc) CurrentLoudness() float64 { return f() }

const (
	DefaultCeiling     = 0.05
	DefaultMaxOffset   = 50.0
	DefaultHueSpeed    = 0.2
	DefaultStrokeAlpha = 0.5
	DefaultDotRadius   = 4.0
)

// Style holds the visual tuning of a frame.
type Style struct {
	Ceiling     float64 // loudness that reaches MaxOffset
	MaxOffset   float64
	HueSpeed    float64 // degrees per frame
	StrokeAlpha float64
	DotRadius   float64
}

func DefaultStyle() Style {
	return Style{
		Ceiling:     DefaultCeiling,
		MaxOffset:   DefaultMaxOffset,
		HueSpeed:    DefaultHueSpeed,
		StrokeAlpha: DefaultStrokeAlpha,
		DotRadius:   DefaultDotRadius,
	}
}

type Stats struct {
	Frame    int
	Loudness float64
	Offset   float64
	Segments int
}

// Compositor runs one frame at a time against a chain and a viewport.
type Compositor struct {
	chain *ensemble.Chain
	view  *viewport.Controller
	src   Loudness
	style Style

	frame  int
	gen    uint64
	colors []color.RGBA
}

func NewCompositor(chain *ensemble.Chain, view *viewport.Controller, src Loudness, style Style) *Compositor {
	return &Compositor{
		chain:  chain,
		view:   view,
		src:    src,
		style:  style,
		colors: make([]color.RGBA, chain.Len()),
	}
}

// Tick advances physics once and draws the resulting frame to dst. A member
// gets a trail segment only if it has a point from an earlier frame of the
// current trail generation.
func (c *Compositor) Tick(dst Surface) Stats {
	c.frame++

	loud := 0.0
	if c.src != nil {
		loud = c.src.CurrentLoudness()
		if math.IsNaN(loud) || loud < 0 {
			loud = 0
		}
	}
	offset := LengthOffset(loud, c.style.Ceiling, c.style.MaxOffset)

	c.chain.Step(offset)

	trail := c.view.Trail()
	if g := trail.Generation(); g != c.gen {
		c.chain.ForgetLastPoints()
		c.gen = g
	}

	n := c.chain.Len()
	segments := 0
	for i, m := range c.chain.Members() {
		col := HueColor(Hue(i, c.frame, n, c.style.HueSpeed))
		c.colors[i] = col
		if m.HasLast {
			trail.DrawSegment(m.Last.X, m.Last.Y, m.Position.X, m.Position.Y, col, c.style.StrokeAlpha)
			segments++
		}
		c.chain.Advance(i)
	}

	stats := Stats{Frame: c.frame, Loudness: loud, Offset: offset, Segments: segments}
	if dst == nil {
		return stats
	}

	c.present(dst)
	return stats
}

// Redraw presents the current trail and dots again without advancing.
func (c *Compositor) Redraw(dst Surface) {
	if dst == nil || c.frame == 0 {
		return
	}
	c.present(dst)
}

func (c *Compositor) present(dst Surface) {
	dst.Present(c.view.Trail().Snapshot())
	cx, cy := c.view.Center()
	for i, m := range c.chain.Members() {
		dst.FillCircle(cx+m.Position.X, cy+m.Position.Y, c.style.DotRadius, c.colors[i])
	}
}

func (c *Compositor) Frame() int { return c.frame }

func (c *Compositor) Style() Style { return c.style }
