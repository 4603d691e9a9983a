package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/solver"
	"github.com/san-kum/rootlab/internal/storage"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario is a scripted list of solves read from YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`

	// dir resolves relative SaveAs paths.
	dir string
}

// ScenarioStep is one solve. A non-empty SaveAs writes the run as JSON to
// that path, relative to the scenario file.
type ScenarioStep struct {
	Name               string `yaml:"name"`
	experiment.Request `yaml:",inline"`
	SaveAs             string `yaml:"save_as"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyScenario, path)
	}

	for i := range scenario.Steps {
		scenario.Steps[i].applyDefaults()
	}
	scenario.dir = filepath.Dir(path)
	return &scenario, nil
}

func (s *ScenarioStep) applyDefaults() {
	def := experiment.DefaultRequest()
	if s.Method == "" {
		s.Method = def.Method
	}
	if s.Tolerance == 0 {
		s.Tolerance = def.Tolerance
	}
	if s.Name == "" {
		s.Name = s.Title()
	}
}

// RunScenario solves every step in order. Solve outcomes, including invalid
// input, are reported in the runs; the error is reserved for cancellation
// and failures writing SaveAs files.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *log.Logger) ([]*experiment.Run, error) {
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	logger = orDefault(logger)

	runs := make([]*experiment.Run, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return runs, err
		}

		run := registry.Solve(step.Request)
		runs = append(runs, run)

		res := run.Result
		fields := []any{"step", fmt.Sprintf("%d/%d", i+1, len(scenario.Steps)), "status", res.Status, "iterations", res.Iterations}
		if res.Status == solver.Converged {
			logger.Info(step.Name, append(fields, "x", res.X)...)
		} else {
			logger.Warn(step.Name, append(fields, "cause", res.Cause)...)
		}

		if step.SaveAs == "" {
			continue
		}
		path := step.SaveAs
		if !filepath.IsAbs(path) {
			path = filepath.Join(scenario.dir, path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return runs, fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := storage.ExportJSONFile(path, run); err != nil {
			return runs, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Debug("saved", "step", i+1, "path", path)
	}

	return runs, nil
}

func orDefault(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
