package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/chaosbloom/internal/audio"
)

const hudBands = 24

func (a *App) DrawHUD() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	rl.DrawRectangle(20, 20, 260, 96, ColPanel)
	rl.DrawText("chaosbloom", 30, 28, 20, ColSelect)
	rl.DrawText(fmt.Sprintf("frame %d  %d fps", a.stats.Frame, rl.GetFPS()), 30, 54, 10, ColText)
	rl.DrawText(fmt.Sprintf("loudness %.4f  offset %.1f", a.stats.Loudness, a.stats.Offset), 30, 70, 10, ColText)

	status := "MIC [OFF]"
	col := rl.Red
	if a.monitor != nil {
		switch a.monitor.Status() {
		case audio.Active:
			status, col = "MIC [ON]", ColAccent
		case audio.Starting:
			status, col = "MIC [...]", ColText
		}
	}
	rl.DrawText(status, 30, 88, 10, col)

	if a.paused {
		rl.DrawText("PAUSED", w-90, 28, 16, ColTextDim)
	}

	a.drawSpectrum(20, h-90, 260, 50)
	rl.DrawText("[SPACE] PAUSE  [C] CLEAR  [H] HUD  [Q] QUIT", 20, h-30, 10, ColTextDim)
}

func (a *App) drawSpectrum(x, y, width, height int32) {
	if a.monitor == nil {
		return
	}
	bands := a.monitor.Bands(hudBands)
	peak := 0.0
	for _, b := range bands {
		if b > peak {
			peak = b
		}
	}
	if peak == 0 {
		return
	}

	barW := width / hudBands
	for i, b := range bands {
		bh := int32(b / peak * float64(height))
		rl.DrawRectangle(x+int32(i)*barW, y+height-bh, barW-2, bh, ColAccent)
	}
}
