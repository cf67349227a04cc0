package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsRunnable(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Aircraft.Validate(); err != nil {
		t.Errorf("default aircraft invalid: %v", err)
	}
	if cfg.Window.TEnd <= cfg.Window.TStart {
		t.Errorf("default window [%g, %g] empty", cfg.Window.TStart, cfg.Window.TEnd)
	}
	if cfg.Window.DtReport <= 0 || cfg.Window.RTol <= 0 || cfg.Window.ATol <= 0 {
		t.Errorf("default solver tuning invalid: %+v", cfg.Window)
	}
	if !cfg.InitState.State().Valid() {
		t.Error("default initial state invalid")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := DefaultConfig()
	cfg.Name = "roundtrip"
	cfg.Damaged.CL = 0.35
	cfg.InitState.Theta = 0.087
	cfg.Window.TEnd = 25

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	// A partial file keeps every default it does not mention.
	path := filepath.Join(t.TempDir(), "partial.yaml")
	partial := "name: just-a-name\ninit_state:\n  u: 150\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "just-a-name" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.InitState.U != 150 {
		t.Errorf("u = %g, want 150", cfg.InitState.U)
	}
	def := DefaultConfig()
	if cfg.Aircraft != def.Aircraft {
		t.Errorf("aircraft lost defaults: %+v", cfg.Aircraft)
	}
	if cfg.Window != def.Window {
		t.Errorf("window lost defaults: %+v", cfg.Window)
	}
	if cfg.InitState.Z != def.InitState.Z {
		t.Errorf("z = %g, want default %g", cfg.InitState.Z, def.InitState.Z)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file loaded without error")
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("listed preset %q not retrievable", name)
		}
		if cfg.Name != name {
			t.Errorf("preset %q names itself %q", name, cfg.Name)
		}
		if err := cfg.Aircraft.Validate(); err != nil {
			t.Errorf("preset %q aircraft invalid: %v", name, err)
		}
	}

	if GetPreset("no-such-preset") != nil {
		t.Error("unknown preset returned a config")
	}
}

func TestPresetsAreIndependentCopies(t *testing.T) {
	a := GetPreset("wing-damage")
	a.Damaged.CL = -99

	b := GetPreset("wing-damage")
	if b.Damaged.CL == -99 {
		t.Error("presets share state between calls")
	}
}

func TestWingDamagePresetDegradesLift(t *testing.T) {
	cfg := GetPreset("wing-damage")

	if cfg.Damaged.CL >= cfg.Baseline.CL {
		t.Errorf("damaged CL %g not below baseline %g", cfg.Damaged.CL, cfg.Baseline.CL)
	}
	if cfg.Damaged.CD <= cfg.Baseline.CD {
		t.Errorf("damaged CD %g not above baseline %g", cfg.Damaged.CD, cfg.Baseline.CD)
	}
	if cfg.Damaged.Cl == 0 {
		t.Error("wing damage should introduce a rolling asymmetry")
	}
}

func TestBallisticPresetHasNoAero(t *testing.T) {
	cfg := GetPreset("ballistic")

	zero := cfg.Baseline
	if zero.CL != 0 || zero.CD != 0 || zero.CLAlpha != 0 || zero.CMAlpha != 0 {
		t.Errorf("ballistic baseline carries aero coefficients: %+v", zero)
	}
	if cfg.InitState.Z != -10000 || cfg.InitState.U != 200 {
		t.Errorf("ballistic initial condition changed: %+v", cfg.InitState)
	}
}
