package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaosbloom/internal/config"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	logFile    string
	seed       int64
	instances  int
	integrator string
	audioSrc   string
	wavFile    string
	width      int
	height     int
	frameRate  int
)

// main registers commands and flags and runs the window host when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "chaosbloom",
		Short:         "audio-reactive double pendulum bloom",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringVar(&logFormat, "log-format", "text", "text or json")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file instead of stderr")
	pf.Int64Var(&seed, "seed", 0, "random seed for initial jitter (0 = time based)")
	pf.IntVar(&instances, "instances", config.DefaultInstances, "number of pendulums")
	pf.StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")
	pf.StringVar(&audioSrc, "audio", "mic", "loudness source: mic, wav or none")
	pf.StringVar(&wavFile, "wav", "", "WAV file used when --audio=wav")
	pf.IntVar(&width, "width", config.DefaultWidth, "width in pixels")
	pf.IntVar(&height, "height", config.DefaultHeight, "height in pixels")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "target frames per second")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the bloom in a window",
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "draw the bloom in the terminal",
		RunE:  runTUI,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, newRenderCmd(), newEnergyCmd(), newBenchCmd(), newChaosCmd(), newPresetsCmd(), newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("seed") {
		cfg.Physics.Seed = seed
	}
	if flags.Changed("instances") {
		cfg.Physics.Instances = instances
	}
	if flags.Changed("integrator") {
		cfg.Physics.Integrator = integrator
	}
	if flags.Changed("audio") {
		cfg.Audio.Source = audioSrc
	}
	if flags.Changed("wav") {
		cfg.Audio.WAV = wavFile
		if !flags.Changed("audio") {
			cfg.Audio.Source = "wav"
		}
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("fps") {
		cfg.Window.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// setup loads the config and installs the logger every command uses. When
// quiet is set and no log file was given, logs are dropped so they cannot
// scribble over a full-screen terminal UI.
func setup(cmd *cobra.Command, quiet bool) (*config.Config, *slog.Logger, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case quiet:
		w = io.Discard
	}

	logger := newLogger(cfg.Log, w)
	slog.SetDefault(logger)
	return cfg, logger, closer, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
