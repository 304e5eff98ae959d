package gui

import (
	"image"
	"image/color"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// textureSurface streams the trail into a GPU texture and draws dots with
// raylib primitives. It is only valid between BeginDrawing and EndDrawing.
type textureSurface struct {
	tex    rl.Texture2D
	w, h   int
	loaded bool
}

func (s *textureSurface) Present(trail *image.RGBA) {
	b := trail.Bounds()
	if b.Empty() {
		return
	}
	if !s.loaded || s.w != b.Dx() || s.h != b.Dy() {
		s.Unload()
		img := rl.GenImageColor(b.Dx(), b.Dy(), rl.Black)
		s.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		s.w, s.h = b.Dx(), b.Dy()
		s.loaded = true
	}
	rl.UpdateTexture(s.tex, pixels(trail))
	rl.DrawTexture(s.tex, 0, 0, rl.White)
}

func (s *textureSurface) FillCircle(x, y, r float64, c color.RGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), c)
}

func (s *textureSurface) Unload() {
	if s.loaded {
		rl.UnloadTexture(s.tex)
		s.loaded = false
	}
}

// pixels views an RGBA buffer as raylib colors without copying.
func pixels(img *image.RGBA) []color.RGBA {
	if len(img.Pix) == 0 {
		return nil
	}
	return unsafe.Slice((*color.RGBA)(unsafe.Pointer(&img.Pix[0])), len(img.Pix)/4)
}
