package canvas

import (
	"image"
	"image/color"
)

// Trail is an append-only RGBA buffer addressed in coordinates relative to
// an origin. It has a single writer.
type Trail struct {
	img        *image.RGBA
	bg         color.RGBA
	cx, cy     float64
	generation uint64
}

func NewTrail(bg color.RGBA) *Trail {
	return &Trail{
		img: image.NewRGBA(image.Rect(0, 0, 0, 0)),
		bg:  bg,
	}
}

// ClearAndRecenter wipes the buffer to the background color, reallocating
// when the size changed, and moves the origin to (cx, cy). Every call starts
// a new generation.
func (t *Trail) ClearAndRecenter(w, h int, cx, cy float64) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if b := t.img.Bounds(); b.Dx() != w || b.Dy() != h {
		t.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	pix := t.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = t.bg.R
		pix[i+1] = t.bg.G
		pix[i+2] = t.bg.B
		pix[i+3] = t.bg.A
	}

	t.cx, t.cy = cx, cy
	t.generation++
}

// Snapshot returns the live buffer. Callers must treat it as read-only.
func (t *Trail) Snapshot() *image.RGBA { return t.img }

func (t *Trail) Generation() uint64 { return t.generation }

func (t *Trail) Origin() (float64, float64) { return t.cx, t.cy }

func (t *Trail) Bounds() image.Rectangle { return t.img.Bounds() }

func (t *Trail) Background() color.RGBA { return t.bg }

// At reads the pixel at absolute buffer coordinates.
func (t *Trail) At(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}
