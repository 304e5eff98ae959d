package canvas

import (
	"image"
	"image/color"
	"math"
)

// DrawSegment draws an anti-aliased line between two origin-relative points.
// Color is added to the existing pixels scaled by alpha and pixel coverage,
// saturating at 255, so no channel ever decreases.
func (t *Trail) DrawSegment(x0, y0, x1, y1 float64, c color.RGBA, alpha float64) {
	if alpha <= 0 || !finite(x0, y0, x1, y1) {
		return
	}
	if alpha > 1 {
		alpha = 1
	}

	b := t.img.Bounds()
	if b.Empty() {
		return
	}

	x0 += t.cx
	x1 += t.cx
	y0 += t.cy
	y1 += t.cy

	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	gradient := 1.0
	if dx != 0 {
		gradient = (y1 - y0) / dx
	}

	// major axis limit of the buffer, in the possibly swapped frame
	limit, minor := b.Dx(), b.Dy()
	if steep {
		limit, minor = minor, limit
	}

	lo := math.Max(math.Round(x0), 0)
	hi := math.Min(math.Round(x1), float64(limit-1))
	if lo > hi {
		return
	}
	start, end := int(lo), int(hi)

	plot := func(x, y int, coverage float64) {
		if steep {
			x, y = y, x
		}
		if !image.Pt(x, y).In(b) {
			return
		}
		t.add(x, y, c, alpha*coverage)
	}

	for x := start; x <= end; x++ {
		y := y0 + gradient*(float64(x)-x0)
		iy := math.Floor(y)
		if iy < -1 || iy >= float64(minor) {
			continue
		}
		frac := y - iy
		plot(x, int(iy), 1-frac)
		plot(x, int(iy)+1, frac)
	}
}

func (t *Trail) add(x, y int, c color.RGBA, weight float64) {
	if weight <= 0 {
		return
	}
	off := t.img.PixOffset(x, y)
	px := t.img.Pix[off : off+4 : off+4]
	px[0] = addSat(px[0], c.R, weight)
	px[1] = addSat(px[1], c.G, weight)
	px[2] = addSat(px[2], c.B, weight)
	px[3] = 255
}

func addSat(dst, src uint8, weight float64) uint8 {
	v := float64(dst) + float64(src)*weight
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
