package config

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaosbloom/internal/audio"
	"github.com/san-kum/chaosbloom/internal/dynamo"
	"github.com/san-kum/chaosbloom/internal/ensemble"
	"github.com/san-kum/chaosbloom/internal/integrators"
	"github.com/san-kum/chaosbloom/internal/physics"
	"github.com/san-kum/chaosbloom/internal/render"
	"github.com/san-kum/chaosbloom/internal/viewport"
)

// Tuned defaults live with the packages that use them; these names collect
// them for the config file.
const (
	DefaultInstances   = ensemble.DefaultInstances
	DefaultArm         = physics.DefaultLength
	DefaultMass        = physics.DefaultMass
	DefaultGravity     = physics.DefaultGravity
	DefaultDamping     = ensemble.DefaultDamping
	DefaultTimestep    = ensemble.DefaultTimestep
	DefaultJitter      = ensemble.DefaultJitter
	DefaultSampleRate  = audio.SampleRate
	DefaultFFTSize     = audio.BufferSize
	DefaultCeiling     = render.DefaultCeiling
	DefaultMaxOffset   = render.DefaultMaxOffset
	DefaultHueSpeed    = render.DefaultHueSpeed
	DefaultStrokeAlpha = render.DefaultStrokeAlpha
	DefaultDotRadius   = render.DefaultDotRadius
	DefaultDivisor     = viewport.DefaultDivisor
	DefaultBackground  = "#000000"
	DefaultWidth       = 1280
	DefaultHeight      = 800
	DefaultFPS         = 60
)

type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Audio   AudioConfig   `yaml:"audio"`
	Render  RenderConfig  `yaml:"render"`
	Window  WindowConfig  `yaml:"window"`
	Log     LogConfig     `yaml:"log"`
}

type PhysicsConfig struct {
	Instances  int     `yaml:"instances"`
	Arm1       float64 `yaml:"arm1"`
	Arm2       float64 `yaml:"arm2"`
	Mass1      float64 `yaml:"mass1"`
	Mass2      float64 `yaml:"mass2"`
	Gravity    float64 `yaml:"gravity"`
	Damping    float64 `yaml:"damping"`
	Timestep   float64 `yaml:"timestep"`
	Jitter     float64 `yaml:"jitter"`
	Integrator string  `yaml:"integrator"`
	Seed       int64   `yaml:"seed"`
}

type AudioConfig struct {
	// Source is "mic", "wav" or "none".
	Source     string  `yaml:"source"`
	WAV        string  `yaml:"wav,omitempty"`
	SampleRate int     `yaml:"sample_rate"`
	FFTSize    int     `yaml:"fft_size"`
	Ceiling    float64 `yaml:"ceiling"`
}

type RenderConfig struct {
	MaxOffset   float64 `yaml:"max_offset"`
	HueSpeed    float64 `yaml:"hue_speed"`
	StrokeAlpha float64 `yaml:"stroke_alpha"`
	DotRadius   float64 `yaml:"dot_radius"`
	Divisor     float64 `yaml:"vertical_divisor"`
	Background  string  `yaml:"background"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Instances:  DefaultInstances,
			Arm1:       DefaultArm,
			Arm2:       DefaultArm,
			Mass1:      DefaultMass,
			Mass2:      DefaultMass,
			Gravity:    DefaultGravity,
			Damping:    DefaultDamping,
			Timestep:   DefaultTimestep,
			Jitter:     DefaultJitter,
			Integrator: "rk4",
		},
		Audio: AudioConfig{
			Source:     "mic",
			SampleRate: DefaultSampleRate,
			FFTSize:    DefaultFFTSize,
			Ceiling:    DefaultCeiling,
		},
		Render: RenderConfig{
			MaxOffset:   DefaultMaxOffset,
			HueSpeed:    DefaultHueSpeed,
			StrokeAlpha: DefaultStrokeAlpha,
			DotRadius:   DefaultDotRadius,
			Divisor:     DefaultDivisor,
			Background:  DefaultBackground,
		},
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads path over base. Keys missing from the file keep base's
// values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the physics section to ensemble parameters.
func (c *Config) Params() ensemble.Params {
	p := c.Physics
	return ensemble.Params{
		Instances: p.Instances,
		Arm1:      p.Arm1,
		Arm2:      p.Arm2,
		Mass1:     p.Mass1,
		Mass2:     p.Mass2,
		Gravity:   p.Gravity,
		Damping:   p.Damping,
		Timestep:  p.Timestep,
		Jitter:    p.Jitter,
	}
}

func (c *Config) BackgroundColor() (color.RGBA, error) {
	col, err := colorful.Hex(c.Render.Background)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: background %q: %w", dynamo.ErrParameterBounds, c.Render.Background, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// EngineOptions builds validated render engine options.
func (c *Config) EngineOptions() (render.Options, error) {
	if err := c.Validate(); err != nil {
		return render.Options{}, err
	}
	bg, err := c.BackgroundColor()
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Params:     c.Params(),
		Integrator: c.Physics.Integrator,
		Seed:       c.Physics.Seed,
		Style: render.Style{
			Ceiling:     c.Audio.Ceiling,
			MaxOffset:   c.Render.MaxOffset,
			HueSpeed:    c.Render.HueSpeed,
			StrokeAlpha: c.Render.StrokeAlpha,
			DotRadius:   c.Render.DotRadius,
		},
		Background: bg,
		Divisor:    c.Render.Divisor,
	}, nil
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := integrators.ByName(c.Physics.Integrator); err != nil {
		return err
	}

	bounds := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{dynamo.ErrParameterBounds}, args...)...)
	}

	switch strings.ToLower(c.Audio.Source) {
	case "mic", "none":
	case "wav":
		if c.Audio.WAV == "" {
			return bounds("audio source wav needs a file")
		}
	default:
		return bounds("unknown audio source %q", c.Audio.Source)
	}
	if n := c.Audio.FFTSize; n < 32 || n&(n-1) != 0 {
		return bounds("fft_size must be a power of two >= 32, got %d", n)
	}
	if c.Audio.SampleRate <= 0 {
		return bounds("sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Ceiling <= 0 {
		return bounds("ceiling must be positive, got %g", c.Audio.Ceiling)
	}
	if c.Render.MaxOffset < 0 {
		return bounds("max_offset must be >= 0, got %g", c.Render.MaxOffset)
	}
	if c.Render.StrokeAlpha <= 0 || c.Render.StrokeAlpha > 1 {
		return bounds("stroke_alpha must be in (0, 1], got %g", c.Render.StrokeAlpha)
	}
	if c.Render.DotRadius < 0 {
		return bounds("dot_radius must be >= 0, got %g", c.Render.DotRadius)
	}
	if c.Render.Divisor <= 0 {
		return bounds("vertical_divisor must be positive, got %g", c.Render.Divisor)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 || c.Window.FPS <= 0 {
		return bounds("window %dx%d@%d is not drawable", c.Window.Width, c.Window.Height, c.Window.FPS)
	}
	return nil
}
