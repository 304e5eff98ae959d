package config

import "sort"

type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"bloom": {
		Description: "thirty arms, tuned defaults",
		Apply:       func(*Config) {},
	},
	"sparse": {
		Description: "six slow, heavy arms",
		Apply: func(c *Config) {
			c.Physics.Instances = 6
			c.Physics.Mass1 = 20
			c.Physics.Mass2 = 20
			c.Render.DotRadius = 6
		},
	},
	"dense": {
		Description: "ninety arms with faint strokes",
		Apply: func(c *Config) {
			c.Physics.Instances = 90
			c.Render.StrokeAlpha = 0.2
			c.Render.DotRadius = 2
			c.Render.HueSpeed = 0.5
		},
	},
	"frictionless": {
		Description: "no damping, the bloom never settles",
		Apply: func(c *Config) {
			c.Physics.Damping = 1.0
		},
	},
	"calm": {
		Description: "heavy damping and a gentle response to sound",
		Apply: func(c *Config) {
			c.Physics.Damping = 0.995
			c.Physics.Gravity = 0.1
			c.Render.MaxOffset = 20
			c.Audio.Ceiling = 0.1
		},
	},
}

// GetPreset returns the default config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
