package config

import (
	"sort"

	"github.com/san-kum/odelab/internal/physics"
)

var Presets = map[string]map[string]*Config{
	"decay": {
		"euler": {Model: "decay", Scheme: "euler"},
		"heun":  {Model: "decay", Scheme: "heun"},
		"slow": {
			Model: "decay", Scheme: "rk4", TMin: 0, TMax: 10, Step: 0.05,
			Params: map[string]float64{"k": 0.5},
		},
	},
	"chain-decay": {
		"classic": {Model: "chain-decay", Scheme: "heun"},
	},
	"cooling": {
		"forensics": {Model: "cooling", Scheme: "heun"},
	},
	"vertical-drag": {
		"softball": {Model: "vertical-drag", Scheme: "heun", Stop: true},
		"hard-throw": {
			Model: "vertical-drag", Scheme: "rk4", Stop: true,
			Params: map[string]float64{"v0": 40},
		},
	},
	"projectile": {
		"pingpong": {Model: "projectile", Scheme: "heun", Stop: true},
		"football": projectilePreset(physics.NewFootball()),
	},
	"cyclist": {
		"hill": {Model: "cyclist", Scheme: "euler", Stop: true},
		"strong": {
			Model: "cyclist", Scheme: "rk4", Stop: true,
			Params: map[string]float64{"power": 600},
		},
	},
	"lorenz": {
		"classic": {Model: "lorenz", Scheme: "rk4"},
		"euler":   {Model: "lorenz", Scheme: "euler", TMin: 0, TMax: 100, Step: 0.01},
	},
	"rossler": {
		"classic": {Model: "rossler", Scheme: "rk4"},
	},
	"autocatalator": {
		"classic": {Model: "autocatalator", Scheme: "rk4"},
	},
	"driven-pendulum": {
		"chaotic": {Model: "driven-pendulum", Scheme: "rk4"},
		"period-one": {
			Model: "driven-pendulum", Scheme: "rk4",
			Params: map[string]float64{"drive": 0.5},
		},
	},
	"damped-spring": {
		"light": {Model: "damped-spring", Scheme: "rk4"},
	},
	"sine-ode": {
		"classic": {Model: "sine-ode", Scheme: "rk4"},
	},
	"orbit": {
		"eccentric": {Model: "orbit", Scheme: "rk4"},
		"circular": {
			Model: "orbit", Scheme: "rk4",
			Params: map[string]float64{"vfactor": 1, "zfactor": 0},
		},
	},
	"pitch": {
		"fastball":  pitchPreset(physics.Fastball),
		"curveball": pitchPreset(physics.Curveball),
		"slider":    pitchPreset(physics.Slider),
		"screwball": pitchPreset(physics.Screwball),
		"nospin":    pitchPreset(physics.NoSpin),
	},
}

func pitchPreset(t physics.PitchType) *Config {
	p := physics.NewPitch(t)
	return &Config{
		Model:  "pitch",
		Scheme: "rk4",
		Stop:   true,
		Params: map[string]float64{"speed": p.Speed, "phi": p.Phi, "spin": p.Spin},
	}
}

func projectilePreset(p *physics.Projectile) *Config {
	return &Config{
		Model:  "projectile",
		Scheme: "heun",
		Stop:   true,
		Params: map[string]float64{"g": p.G, "vt": p.Vt, "v0": p.V0, "angle": p.Angle, "height": p.Height},
	}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
