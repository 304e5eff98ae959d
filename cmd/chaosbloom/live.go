package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaosbloom/internal/audio"
	"github.com/san-kum/chaosbloom/internal/audio/mic"
	"github.com/san-kum/chaosbloom/internal/config"
	"github.com/san-kum/chaosbloom/internal/gui"
	"github.com/san-kum/chaosbloom/internal/render"
	"github.com/san-kum/chaosbloom/internal/viz"
)

// newMonitor builds the loudness monitor for the configured source. It
// returns nil when capture is disabled.
func newMonitor(cfg *config.Config, logger *slog.Logger) (*audio.Monitor, error) {
	switch strings.ToLower(cfg.Audio.Source) {
	case "none":
		logger.Info("audio disabled, arms stay at base length")
		return nil, nil
	case "wav":
		clip, err := audio.LoadClip(cfg.Audio.WAV)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfg.Audio.WAV, err)
		}
		logger.Info("looping WAV as loudness source", "file", cfg.Audio.WAV, "duration", clip.Duration())
		return audio.NewMonitor(clip, cfg.Audio.FFTSize, logger), nil
	default:
		return audio.NewMonitor(mic.PortAudio{SampleRate: float64(cfg.Audio.SampleRate)}, cfg.Audio.FFTSize, logger), nil
	}
}

func loudnessOf(m *audio.Monitor) render.Loudness {
	if m == nil {
		return nil
	}
	return m
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()
	ctx, cancel := signalContext()
	defer cancel()

	monitor, err := newMonitor(cfg, logger)
	if err != nil {
		return err
	}
	if monitor != nil {
		monitor.Start(ctx)
		defer monitor.Close()
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	engine, err := render.NewEngine(opts, cfg.Window.Width, cfg.Window.Height, loudnessOf(monitor), logger)
	if err != nil {
		return err
	}

	return gui.Run(ctx, engine, monitor, gui.Options{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		FPS:    cfg.Window.FPS,
		Title:  "chaosbloom",
	}, logger)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()
	ctx, cancel := signalContext()
	defer cancel()

	monitor, err := newMonitor(cfg, logger)
	if err != nil {
		return err
	}
	if monitor != nil {
		monitor.Start(ctx)
		defer monitor.Close()
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	// real size arrives with the first terminal size message
	engine, err := render.NewEngine(opts, 0, 0, loudnessOf(monitor), logger)
	if err != nil {
		return err
	}

	fps := cfg.Window.FPS
	if fps > 30 {
		fps = 30
	}
	return viz.Run(ctx, viz.NewModel(engine, monitor, opts.Background, fps), logger)
}
