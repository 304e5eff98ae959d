package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Surface receives a composited frame: the trail first, then the dots on top.
type Surface interface {
	Present(trail *image.RGBA)
	FillCircle(x, y, r float64, c color.RGBA)
}

// ImageSurface composites into an in-memory image.
type ImageSurface struct {
	img *image.RGBA
}

func NewImageSurface() *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, 0, 0))}
}

func (s *ImageSurface) Present(trail *image.RGBA) {
	if s.img.Bounds() != trail.Bounds() {
		s.img = image.NewRGBA(trail.Bounds())
	}
	draw.Draw(s.img, s.img.Bounds(), trail, trail.Bounds().Min, draw.Src)
}

func (s *ImageSurface) FillCircle(x, y, r float64, c color.RGBA) {
	if r <= 0 || math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	b := s.img.Bounds()
	minX := int(math.Max(math.Floor(x-r), float64(b.Min.X)))
	maxX := int(math.Min(math.Ceil(x+r), float64(b.Max.X-1)))
	minY := int(math.Max(math.Floor(y-r), float64(b.Min.Y)))
	maxY := int(math.Min(math.Ceil(y+r), float64(b.Max.Y-1)))

	r2 := r * r
	for py := minY; py <= maxY; py++ {
		dy := float64(py) + 0.5 - y
		for px := minX; px <= maxX; px++ {
			dx := float64(px) + 0.5 - x
			if dx*dx+dy*dy <= r2 {
				s.img.SetRGBA(px, py, c)
			}
		}
	}
}

// Image is the last composited frame.
func (s *ImageSurface) Image() *image.RGBA { return s.img }
