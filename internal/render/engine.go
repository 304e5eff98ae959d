package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/chaosbloom/internal/ensemble"
	"github.com/san-kum/chaosbloom/internal/integrators"
	"github.com/san-kum/chaosbloom/internal/viewport"
)

type Options struct {
	Params     ensemble.Params
	Integrator string
	Seed       int64 // 0 picks a time-based seed
	Style      Style
	Background color.RGBA
	Divisor    float64
}

func DefaultOptions() Options {
	return Options{
		Params:     ensemble.DefaultParams(),
		Integrator: "rk4",
		Style:      DefaultStyle(),
		Background: color.RGBA{A: 255},
		Divisor:    viewport.DefaultDivisor,
	}
}

// Engine is what a host drives: construct it with the initial size, call
// Resize when the drawable area changes and Tick once per refresh. Resize and
// Tick may be called from different goroutines; a resize always lands between
// two ticks.
type Engine struct {
	mu      sync.Mutex
	view    *viewport.Controller
	chain   *ensemble.Chain
	comp    *Compositor
	surface *ImageSurface
	logger  *slog.Logger

	diverged bool
}

func NewEngine(opts Options, width, height int, src Loudness, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	integ, err := integrators.ByName(opts.Integrator)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	chain, err := ensemble.New(opts.Params, integ, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("building ensemble: %w", err)
	}

	view := viewport.NewController(opts.Background, opts.Divisor)
	e := &Engine{
		view:    view,
		chain:   chain,
		comp:    NewCompositor(chain, view, src, opts.Style),
		surface: NewImageSurface(),
		logger:  logger.With("component", "render"),
	}
	e.view.Resize(width, height)
	e.logger.Debug("engine ready",
		"instances", opts.Params.Instances,
		"integrator", opts.Integrator,
		"seed", seed,
		"width", width, "height", height)
	return e, nil
}

// Resize moves the center and wipes the trail. Angles and velocities are
// kept.
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.Resize(width, height)
	e.logger.Debug("viewport resized", "width", width, "height", height)
}

// Tick renders one frame into the engine's own image surface.
func (e *Engine) Tick() Stats {
	return e.TickTo(e.surface)
}

// TickTo renders one frame into dst.
func (e *Engine) TickTo(dst Surface) Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := e.comp.Tick(dst)
	if !e.diverged {
		if err := e.chain.Check(); err != nil {
			e.diverged = true
			e.logger.Error("ensemble diverged", "frame", stats.Frame, "error", err)
		}
	}
	return stats
}

// RedrawTo presents the last frame into dst without stepping.
func (e *Engine) RedrawTo(dst Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.comp.Redraw(dst)
}

func (e *Engine) Surface() *ImageSurface { return e.surface }

func (e *Engine) Chain() *ensemble.Chain { return e.chain }

func (e *Engine) View() *viewport.Controller { return e.view }

func (e *Engine) Frame() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.comp.Frame()
}

func (e *Engine) Style() Style { return e.comp.Style() }
