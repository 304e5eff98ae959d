// Package viewport tracks the drawable area and owns the trail that lives in
// it.
package viewport

import (
	"image/color"

	"github.com/san-kum/chaosbloom/internal/canvas"
)

// DefaultDivisor places the ensemble center slightly above mid-height.
const DefaultDivisor = 2.3

type State int

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "uninitialized"
}

type Controller struct {
	trail   *canvas.Trail
	divisor float64
	state   State
	w, h    int
	cx, cy  float64
}

func NewController(background color.RGBA, divisor float64) *Controller {
	if divisor <= 0 {
		divisor = DefaultDivisor
	}
	return &Controller{
		trail:   canvas.NewTrail(background),
		divisor: divisor,
	}
}

// Resize recomputes the center and starts a fresh trail of the new size.
// Anything drawn before is discarded.
func (c *Controller) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.w, c.h = w, h
	c.cx = float64(w) / 2
	c.cy = float64(h) / c.divisor
	c.trail.ClearAndRecenter(w, h, c.cx, c.cy)
	c.state = Ready
}

func (c *Controller) Center() (float64, float64) { return c.cx, c.cy }

func (c *Controller) Size() (int, int) { return c.w, c.h }

func (c *Controller) State() State { return c.state }

func (c *Controller) Trail() *canvas.Trail { return c.trail }
