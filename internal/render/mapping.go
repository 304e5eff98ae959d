package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// LengthOffset maps loudness linearly onto [0, max], reaching max at ceiling.
func LengthOffset(loudness, ceiling, max float64) float64 {
	if ceiling <= 0 || math.IsNaN(loudness) || loudness <= 0 {
		return 0
	}
	v := loudness / ceiling * max
	if v > max {
		return max
	}
	return v
}

// Hue is member i's hue in degrees at the given frame. Members are spread
// evenly around the wheel and the whole wheel drifts by speed per frame.
func Hue(i, frame, n int, speed float64) float64 {
	if n < 1 {
		n = 1
	}
	h := math.Mod(float64(frame)*speed+360/float64(n)*float64(i), 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HueColor is the fully saturated, full brightness color for hue h.
func HueColor(h float64) color.RGBA {
	r, g, b := colorful.Hsv(h, 1, 1).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
