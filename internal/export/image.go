package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
)

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// GIFRecorder collects frames into an animation. Frames are dithered to the
// Plan 9 palette as they are added.
type GIFRecorder struct {
	anim  gif.GIF
	delay int // hundredths of a second
	limit int
}

// NewGIFRecorder keeps at most limit frames (0 means no limit) shown for
// delay hundredths of a second each.
func NewGIFRecorder(delay, limit int) *GIFRecorder {
	if delay <= 0 {
		delay = 2
	}
	return &GIFRecorder{anim: gif.GIF{LoopCount: 0}, delay: delay, limit: limit}
}

// Add appends a frame and reports false once the limit is reached.
func (r *GIFRecorder) Add(img image.Image) bool {
	if r.limit > 0 && len(r.anim.Image) >= r.limit {
		return false
	}
	b := img.Bounds()
	if b.Empty() {
		return true
	}
	frame := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(frame, frame.Bounds(), img, b.Min)
	r.anim.Image = append(r.anim.Image, frame)
	r.anim.Delay = append(r.anim.Delay, r.delay)
	return true
}

func (r *GIFRecorder) Len() int { return len(r.anim.Image) }

func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.anim.Image) == 0 {
		return fmt.Errorf("gif: no frames recorded")
	}
	return gif.EncodeAll(w, &r.anim)
}

func (r *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
