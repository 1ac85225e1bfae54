package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Solver.Epsilon != 1e-6 {
		t.Errorf("expected epsilon 1e-6, got %g", cfg.Solver.Epsilon)
	}
	if cfg.Solver.MaxIterations <= 0 {
		t.Error("max iterations should be positive")
	}
	if cfg.Plot.Max <= cfg.Plot.Min {
		t.Error("plot range should not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("cubic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if got := cfg.Poly().String(); got != "1x^3 -2x^2 -11x + 12" {
		t.Errorf("unexpected polynomial %q", got)
	}
	if len(cfg.Guesses) != 3 {
		t.Errorf("expected 3 guesses, got %d", len(cfg.Guesses))
	}
	if cfg.Solver.Epsilon != 1e-6 {
		t.Errorf("expected default epsilon, got %g", cfg.Solver.Epsilon)
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("quadratic")
	cfg.Guesses[0] = 99
	cfg.Polynomial[0].Coefficient = 99

	again := GetPreset("quadratic")
	if again.Guesses[0] == 99 || again.Polynomial[0].Coefficient == 99 {
		t.Error("preset was modified through a returned config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poly.yaml")

	cfg := GetPreset("cubic")
	cfg.Solver.Epsilon = 1e-3
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !loaded.Poly().Equal(cfg.Poly()) {
		t.Errorf("polynomial mismatch: %q vs %q", loaded.Poly(), cfg.Poly())
	}
	if loaded.Solver.Epsilon != 1e-3 {
		t.Errorf("expected epsilon 1e-3, got %g", loaded.Solver.Epsilon)
	}
	if len(loaded.Guesses) != 3 || loaded.Guesses[2] != 2.35287527 {
		t.Errorf("guesses mismatch: %v", loaded.Guesses)
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("polynomial:\n  - {coefficient: 1, exponent: 2}\n  - {coefficient: -2, exponent: 0}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := cfg.Poly().String(); got != "1x^2 -2" {
		t.Errorf("unexpected polynomial %q", got)
	}
	if cfg.Solver.MaxIterations != DefaultConfig().Solver.MaxIterations {
		t.Errorf("max iterations not defaulted: %d", cfg.Solver.MaxIterations)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("solver:\n  epsilon: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative epsilon")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
