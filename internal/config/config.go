// Package config loads and saves run descriptions as YAML and resolves
// them against the physics registry.
package config

import (
	"fmt"
	"os"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel  = "lorenz"
	DefaultScheme = "rk4"
)

// Config describes one run. A zero Step keeps the model's default schedule
// and an empty Init keeps its default initial state.
type Config struct {
	Model  string             `yaml:"model"`
	Scheme string             `yaml:"scheme"`
	TMin   float64            `yaml:"t_min"`
	TMax   float64            `yaml:"t_max"`
	Step   float64            `yaml:"step"`
	Init   []float64          `yaml:"init,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
	// Stop applies the model's stop condition, e.g. ground contact.
	Stop bool `yaml:"stop"`
}

// Run is a Config resolved into the values the integrators consume.
type Run struct {
	Model    *physics.Model
	Scheme   dynamo.Scheme
	Schedule dynamo.Schedule
	Init     dynamo.State
}

func DefaultConfig() *Config {
	return &Config{
		Model:  DefaultModel,
		Scheme: DefaultScheme,
		Stop:   true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Schedule returns the configured grid, or def when no step is set.
func (c *Config) Schedule(def dynamo.Schedule) dynamo.Schedule {
	if c.Step == 0 {
		return def
	}
	return dynamo.Schedule{TMin: c.TMin, TMax: c.TMax, Step: c.Step}
}

// Build resolves the model, scheme, schedule and initial state and
// validates all of them.
func (c *Config) Build() (*Run, error) {
	scheme, err := dynamo.ParseScheme(c.Scheme)
	if err != nil {
		return nil, err
	}
	model, err := physics.Lookup(c.Model, c.Params)
	if err != nil {
		return nil, err
	}

	sched := c.Schedule(model.Schedule)
	if err := sched.Validate(); err != nil {
		return nil, err
	}

	init := model.Init
	if len(c.Init) > 0 {
		if len(c.Init) != len(model.Init) {
			return nil, fmt.Errorf("%w: %s needs %d initial values %v, got %d",
				dynamo.ErrDimensionMismatch, c.Model, len(model.Init), model.Labels, len(c.Init))
		}
		init = dynamo.State(c.Init).Clone()
	}
	if err := dynamo.ValidateInitial(init); err != nil {
		return nil, err
	}

	if !c.Stop {
		model.Stop = nil
	}
	return &Run{Model: model, Scheme: scheme, Schedule: sched, Init: init}, nil
}

func (c *Config) Validate() error {
	_, err := c.Build()
	return err
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Init = append([]float64(nil), c.Init...)
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}
