package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/postflight/internal/flight"
)

const (
	DefaultDtReport = 0.01
	DefaultDuration = 10.0
	DefaultRTol     = 1e-6
	DefaultATol     = 1e-8
	DefaultMaxSteps = 2_000_000
)

// Config is a complete scenario file: one vehicle, one environment, one
// initial condition, a reference aerodynamic model and the damaged model to
// judge against it.
type Config struct {
	Name string `yaml:"name"`

	Aircraft    flight.Aircraft    `yaml:"aircraft"`
	Environment flight.Environment `yaml:"environment"`

	Baseline flight.AeroModel `yaml:"baseline"`
	Damaged  flight.AeroModel `yaml:"damaged"`

	InitState InitStateConfig `yaml:"init_state"`
	Window    WindowConfig    `yaml:"window"`
}

// InitStateConfig mirrors flight.State with yaml tags.
type InitStateConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`

	U float64 `yaml:"u"`
	V float64 `yaml:"v"`
	W float64 `yaml:"w"`

	Phi   float64 `yaml:"phi"`
	Theta float64 `yaml:"theta"`
	Psi   float64 `yaml:"psi"`

	P float64 `yaml:"p"`
	Q float64 `yaml:"q"`
	R float64 `yaml:"r"`
}

func (c InitStateConfig) State() flight.State {
	return flight.State{
		X: c.X, Y: c.Y, Z: c.Z,
		U: c.U, V: c.V, W: c.W,
		Phi: c.Phi, Theta: c.Theta, Psi: c.Psi,
		P: c.P, Q: c.Q, R: c.R,
	}
}

// WindowConfig is the simulation window and solver tuning.
type WindowConfig struct {
	TStart   float64 `yaml:"t_start"`
	TEnd     float64 `yaml:"t_end"`
	DtReport float64 `yaml:"dt_report"`
	RTol     float64 `yaml:"rtol"`
	ATol     float64 `yaml:"atol"`
	MaxSteps int     `yaml:"max_steps"`

	// Integrator selects the scheme: rk45 (adaptive), rk4 or euler
	// (fixed-step, for accuracy comparisons).
	Integrator string `yaml:"integrator"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "level-cruise",
		Aircraft: flight.Aircraft{
			Mass: 1000,
			Ixx:  1000, Iyy: 2000, Izz: 3000, Ixz: 0,
			WingArea: 20, WingSpan: 10, Chord: 2,
		},
		Environment: flight.Environment{
			Rho:     1.225,
			Gravity: 9.81,
		},
		Baseline: flight.DefaultAeroModel(),
		Damaged:  flight.DefaultAeroModel(),
		InitState: InitStateConfig{
			Z: -1000,
			U: 100,
		},
		Window: WindowConfig{
			TEnd:       DefaultDuration,
			DtReport:   DefaultDtReport,
			RTol:       DefaultRTol,
			ATol:       DefaultATol,
			MaxSteps:   DefaultMaxSteps,
			Integrator: "rk45",
		},
	}
}

// Load reads a scenario file, overlaying it on the defaults so partial files
// stay valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
