package viewport

import (
	"image/color"
	"math"
	"testing"
)

func TestResize(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		cx, cy float64
	}{
		{"landscape", 1920, 1080, 960, 1080 / 2.3},
		{"square", 230, 230, 115, 100},
		{"zero", 0, 0, 0, 0},
		{"negative clamps", -10, -10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(color.RGBA{A: 255}, DefaultDivisor)
			if c.State() != Uninitialized {
				t.Fatalf("expected uninitialized, got %s", c.State())
			}

			c.Resize(tt.w, tt.h)

			cx, cy := c.Center()
			if math.Abs(cx-tt.cx) > 1e-9 || math.Abs(cy-tt.cy) > 1e-9 {
				t.Errorf("center = (%f, %f), want (%f, %f)", cx, cy, tt.cx, tt.cy)
			}
			tx, ty := c.Trail().Origin()
			if tx != cx || ty != cy {
				t.Errorf("trail origin (%f, %f) does not match center", tx, ty)
			}
			if c.State() != Ready {
				t.Errorf("expected ready, got %s", c.State())
			}
		})
	}
}

func TestResizeStartsNewTrailGeneration(t *testing.T) {
	c := NewController(color.RGBA{A: 255}, 0)
	c.Resize(100, 100)
	g := c.Trail().Generation()

	c.Trail().DrawSegment(-10, 0, 10, 0, color.RGBA{255, 255, 255, 255}, 1)
	c.Resize(100, 100)

	if c.Trail().Generation() == g {
		t.Error("expected generation to change on resize")
	}
	if c.Trail().At(50, 43) != (color.RGBA{A: 255}) {
		t.Errorf("expected trail wiped on resize, got %v", c.Trail().At(50, 43))
	}
	if w, h := c.Size(); w != 100 || h != 100 {
		t.Errorf("unexpected size %dx%d", w, h)
	}
}
