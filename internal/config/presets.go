package config

import (
	"sort"

	"github.com/san-kum/polyroot/internal/poly"
)

var Presets = map[string]*Config{
	"cubic": {
		Polynomial: []poly.Term{{Coefficient: 1, Exponent: 3}, {Coefficient: -2, Exponent: 2}, {Coefficient: -11, Exponent: 1}, {Coefficient: 12, Exponent: 0}},
		Guesses:    []float64{-4, 0, 2.35287527},
		Plot:       PlotConfig{Min: -5, Max: 6, Samples: DefaultPlotSamples},
		Scan:       ScanConfig{Min: -6, Max: 6, Steps: DefaultScanSteps},
	},
	"cubic_small": {
		Polynomial: []poly.Term{{Coefficient: 1, Exponent: 3}, {Coefficient: -2, Exponent: 2}, {Coefficient: -5, Exponent: 1}, {Coefficient: 6, Exponent: 0}},
		Guesses:    []float64{-3, 0, 4},
		Plot:       PlotConfig{Min: -4, Max: 5, Samples: DefaultPlotSamples},
		Scan:       ScanConfig{Min: -5, Max: 5, Steps: DefaultScanSteps},
	},
	"quartic": {
		Polynomial: []poly.Term{{Coefficient: 2, Exponent: 4}, {Coefficient: 7, Exponent: 3}, {Coefficient: 6, Exponent: 2}, {Coefficient: 8, Exponent: 1}, {Coefficient: 12, Exponent: 0}},
		Guesses:    []float64{0},
		Plot:       PlotConfig{Min: -4, Max: 1, Samples: DefaultPlotSamples},
		Scan:       ScanConfig{Min: -5, Max: 2, Steps: DefaultScanSteps},
	},
	"quadratic": {
		Polynomial: []poly.Term{{Coefficient: 1, Exponent: 2}, {Coefficient: -2, Exponent: 0}},
		Guesses:    []float64{-1, 1},
		Plot:       PlotConfig{Min: -3, Max: 3, Samples: DefaultPlotSamples},
		Scan:       ScanConfig{Min: -3, Max: 3, Steps: 16},
	},
}

// GetPreset returns a copy of the named preset with default solver settings
// filled in, or nil if no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Polynomial = append([]poly.Term(nil), p.Polynomial...)
	cfg.Guesses = append([]float64(nil), p.Guesses...)
	cfg.Plot = p.Plot
	cfg.Scan = p.Scan
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
