package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaosbloom/internal/audio"
	"github.com/san-kum/chaosbloom/internal/config"
	"github.com/san-kum/chaosbloom/internal/export"
	"github.com/san-kum/chaosbloom/internal/render"
)

var (
	renderFrames   int
	renderOut      string
	renderGIF      string
	renderSVG      string
	renderEvery    int
	renderLoudness float64
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render frames offline to PNG, GIF or SVG",
		Long: `Render a fixed number of frames without a window. Loudness comes from
--loudness when set, otherwise from the configured WAV clip sampled at the
render frame rate, otherwise silence. The same seed gives the same image.`,
		RunE: runRender,
	}
	cmd.Flags().IntVar(&renderFrames, "frames", 600, "number of frames to render")
	cmd.Flags().StringVar(&renderOut, "out", "bloom.png", "PNG path for the final frame")
	cmd.Flags().StringVar(&renderGIF, "gif", "", "also write an animated GIF here")
	cmd.Flags().StringVar(&renderSVG, "svg", "", "also write tip paths as SVG here")
	cmd.Flags().IntVar(&renderEvery, "every", 4, "GIF keeps every n-th frame")
	cmd.Flags().Float64Var(&renderLoudness, "loudness", -1, "constant loudness (negative = use audio source)")
	return cmd
}

// offlineLoudness is a deterministic loudness source for offline renders. It
// is called exactly once per tick.
func offlineLoudness(cfg *config.Config) (render.Loudness, string, error) {
	if renderLoudness >= 0 {
		v := renderLoudness
		return render.LoudnessFunc(func() float64 { return v }), fmt.Sprintf("constant %.4f", v), nil
	}
	if cfg.Audio.Source != "wav" {
		return nil, "silence", nil
	}

	clip, err := audio.LoadClip(cfg.Audio.WAV)
	if err != nil {
		return nil, "", err
	}
	tick := 0
	fps := float64(cfg.Window.FPS)
	frames := cfg.Audio.FFTSize
	return render.LoudnessFunc(func() float64 {
		tick++
		return audio.RMS(clip.WindowAt(tick, fps, frames))
	}), cfg.Audio.WAV, nil
}

// gifDelay converts a frame stride into a GIF delay in hundredths of a second.
// Viewers slow down delays under 2, so that is the floor.
func gifDelay(every, fps int) int {
	if fps <= 0 {
		return 2
	}
	d := int(math.Round(float64(every) * 100 / float64(fps)))
	if d < 2 {
		d = 2
	}
	return d
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	if renderFrames < 1 {
		return fmt.Errorf("--frames must be at least 1")
	}
	if renderEvery < 1 {
		renderEvery = 1
	}

	src, srcName, err := offlineLoudness(cfg)
	if err != nil {
		return err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	if opts.Seed == 0 {
		// offline renders are reproducible by default
		opts.Seed = 1
	}
	engine, err := render.NewEngine(opts, cfg.Window.Width, cfg.Window.Height, src, logger)
	if err != nil {
		return err
	}

	var rec *export.GIFRecorder
	if renderGIF != "" {
		rec = export.NewGIFRecorder(gifDelay(renderEvery, cfg.Window.FPS), 0)
	}
	var paths *export.PathRecorder
	if renderSVG != "" {
		paths = export.NewPathRecorder(engine.Chain().Len())
	}

	logger.Info("rendering", "frames", renderFrames, "loudness", srcName, "seed", opts.Seed)
	start := time.Now()
	n := engine.Chain().Len()
	for i := 0; i < renderFrames; i++ {
		stats := engine.Tick()
		if rec != nil && stats.Frame%renderEvery == 0 {
			rec.Add(engine.Surface().Image())
		}
		if paths != nil {
			for j, m := range engine.Chain().Members() {
				col := render.HueColor(render.Hue(j, stats.Frame, n, opts.Style.HueSpeed))
				paths.Add(j, m.Position.X, m.Position.Y, col)
			}
		}
	}
	if err := engine.Chain().Check(); err != nil {
		logger.Warn("ensemble diverged during render", "error", err)
	}
	elapsed := time.Since(start)

	if err := export.WritePNG(renderOut, engine.Surface().Image()); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames in %v, %.0f frames/s)\n", renderOut, renderFrames, elapsed.Round(time.Millisecond), float64(renderFrames)/elapsed.Seconds())

	if rec != nil {
		if err := rec.Save(renderGIF); err != nil {
			return fmt.Errorf("writing gif: %w", err)
		}
		fmt.Printf("wrote %s (%d frames)\n", renderGIF, rec.Len())
	}
	if paths != nil {
		cx, cy := engine.View().Center()
		svg := paths.SVG(cfg.Window.Width, cfg.Window.Height, cx, cy, cfg.Render.Background, opts.Style.StrokeAlpha)
		if err := os.WriteFile(renderSVG, []byte(svg), 0644); err != nil {
			return fmt.Errorf("writing svg: %w", err)
		}
		fmt.Printf("wrote %s\n", renderSVG)
	}
	return nil
}
