package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rootlab/internal/experiment"
)

const (
	DefaultPlot       = "ascii"
	DefaultPlotWidth  = 60
	DefaultPlotHeight = 12
)

// Config is a solve request plus how its output is presented. The request
// fields sit at the top level of the YAML document.
type Config struct {
	experiment.Request `yaml:",inline"`
	Output             OutputConfig `yaml:"output"`
}

type OutputConfig struct {
	// Plot selects the diagnostics sink: ascii, svg or none.
	Plot   string `yaml:"plot"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// Save stores the run under the data directory.
	Save bool `yaml:"save"`
}

func DefaultConfig() *Config {
	return &Config{
		Request: experiment.DefaultRequest(),
		Output: OutputConfig{
			Plot:   DefaultPlot,
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
		},
	}
}

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

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Bracket != nil {
		out.Bracket = append([]float64(nil), c.Bracket...)
	}
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}
