package config

import "github.com/san-kum/postflight/internal/flight"

// Presets are ready-made damage scenarios. Each starts from the default
// airframe and perturbs the damaged aerodynamic model the way the upstream
// assessment stage typically reports it.
var Presets = map[string]func() *Config{
	// Nominal airframe flown against itself; the comparison should come
	// out flat. Useful as a sanity run.
	"undamaged": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "undamaged"
		return cfg
	},

	// Partial lift loss and extra drag on one wing: lift down, drag up,
	// rolling asymmetry from the damaged span.
	"wing-damage": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "wing-damage"
		cfg.Damaged.CL *= 0.7
		cfg.Damaged.CD *= 1.8
		cfg.Damaged.Cl = -0.05
		cfg.Damaged.ClBeta *= 0.5
		cfg.Damaged.ClP *= 0.6
		return cfg
	},

	// Reduced tail effectiveness: weaker pitch stiffness and damping,
	// weaker directional stability.
	"tail-damage": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "tail-damage"
		cfg.Damaged.CMAlpha *= 0.3
		cfg.Damaged.CMQ *= 0.4
		cfg.Damaged.CnBeta *= 0.2
		cfg.Damaged.CnR *= 0.4
		return cfg
	},

	// Unpowered descent from altitude with a mild initial pitch-up, the
	// standard ballistic reference case.
	"ballistic": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "ballistic"
		cfg.InitState = InitStateConfig{Z: -10000, U: 200, Theta: 0.087}
		cfg.Baseline = flight.AeroModel{}
		cfg.Damaged = flight.AeroModel{}
		return cfg
	},
}

// GetPreset returns a fresh copy of a named preset, or nil.
func GetPreset(name string) *Config {
	mk, ok := Presets[name]
	if !ok {
		return nil
	}
	return mk()
}

// ListPresets returns the preset names in map order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
