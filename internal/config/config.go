package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/polyroot/internal/newton"
	"github.com/san-kum/polyroot/internal/poly"
)

const (
	DefaultPlotMin     = -10.0
	DefaultPlotMax     = 10.0
	DefaultPlotSamples = 80
	DefaultScanSteps   = 64
)

type Config struct {
	Polynomial []poly.Term  `yaml:"polynomial"`
	Guesses    []float64    `yaml:"guesses"`
	Solver     SolverConfig `yaml:"solver"`
	Plot       PlotConfig   `yaml:"plot"`
	Scan       ScanConfig   `yaml:"scan"`
}

type SolverConfig struct {
	Epsilon         float64 `yaml:"epsilon"`
	MaxIterations   int     `yaml:"max_iterations"`
	DivergenceBound float64 `yaml:"divergence_bound"`
}

type PlotConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Samples int     `yaml:"samples"`
}

type ScanConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Steps   int     `yaml:"steps"`
	Workers int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Guesses: []float64{0},
		Solver: SolverConfig{
			Epsilon:         newton.DefaultEpsilon,
			MaxIterations:   newton.DefaultMaxIterations,
			DivergenceBound: newton.DefaultDivergenceBound,
		},
		Plot: PlotConfig{
			Min:     DefaultPlotMin,
			Max:     DefaultPlotMax,
			Samples: DefaultPlotSamples,
		},
		Scan: ScanConfig{
			Min:   DefaultPlotMin,
			Max:   DefaultPlotMax,
			Steps: DefaultScanSteps,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func (c *Config) Validate() error {
	if err := c.SolverConfig().Validate(); err != nil {
		return err
	}
	if c.Plot.Max <= c.Plot.Min {
		return fmt.Errorf("plot range [%g, %g] is empty", c.Plot.Min, c.Plot.Max)
	}
	return c.ScanConfig().Validate()
}

func (c *Config) Poly() poly.Poly {
	return poly.New(c.Polynomial...)
}

func (c *Config) SetPoly(p poly.Poly) {
	c.Polynomial = p.Terms()
}

func (c *Config) SolverConfig() newton.Config {
	return newton.Config{
		Epsilon:         c.Solver.Epsilon,
		MaxIterations:   c.Solver.MaxIterations,
		DivergenceBound: c.Solver.DivergenceBound,
	}
}

func (c *Config) ScanConfig() newton.ScanConfig {
	return newton.ScanConfig{
		Min:     c.Scan.Min,
		Max:     c.Scan.Max,
		Steps:   c.Scan.Steps,
		Workers: c.Scan.Workers,
	}
}
