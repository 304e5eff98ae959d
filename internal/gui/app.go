package gui

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/chaosbloom/internal/audio"
	"github.com/san-kum/chaosbloom/internal/render"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColPanel   = rl.NewColor(0, 0, 0, 160)
)

type Options struct {
	Width, Height int
	FPS           int
	Title         string
}

// App hosts an engine in a resizable raylib window.
type App struct {
	engine  *render.Engine
	monitor *audio.Monitor
	logger  *slog.Logger
	surface *textureSurface

	stats   render.Stats
	paused  bool
	showHUD bool
}

func initWindow(opts Options) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed or ctx is done. It must
// be called from the main OS thread. monitor may be nil.
func Run(ctx context.Context, engine *render.Engine, monitor *audio.Monitor, opts Options, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = "chaosbloom"
	}

	initWindow(opts)
	defer rl.CloseWindow()

	app := &App{
		engine:  engine,
		monitor: monitor,
		logger:  logger.With("component", "gui"),
		surface: &textureSurface{},
		showHUD: true,
	}
	defer app.surface.Unload()

	// the window manager may not honour the requested size
	engine.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())

	app.logger.Info("window opened", "width", rl.GetScreenWidth(), "height", rl.GetScreenHeight())
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		if quit := app.Update(); quit {
			break
		}
		app.Draw()
	}
	app.logger.Info("window closed", "frames", engine.Frame())
	return nil
}

// Update handles input and resizes. It reports true when the user asked to
// quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}
	if rl.IsKeyPressed(rl.KeyC) {
		// clear trail in place
		a.engine.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	if rl.IsWindowResized() {
		a.engine.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if a.paused {
		a.engine.RedrawTo(a.surface)
	} else {
		a.stats = a.engine.TickTo(a.surface)
	}

	if a.showHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}
