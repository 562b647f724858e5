package algo_evolution

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Inputs at least this large switch to the reduced profile unless a full
// test is requested.
const LargeInputThreshold = 50000

type GAConfig struct {
	Population  int `toml:"population"`
	Generations int `toml:"generations"`
}

type SAConfig struct {
	Steps int     `toml:"steps"`
	T0    float64 `toml:"t0"`
	T1    float64 `toml:"t1"`
}

type OutputConfig struct {
	CSVPath    string `toml:"csv_path"`
	SQLitePath string `toml:"sqlite_path"`
}

// ExperimentConfig is the full description of an experiment. Algo is one of
// qs, ms or both; Optimizer is one of ga, sa or both.
type ExperimentConfig struct {
	Algo      string       `toml:"algo"`
	Optimizer string       `toml:"optimizer"`
	Eval      EvalConfig   `toml:"eval"`
	GA        GAConfig     `toml:"ga"`
	SA        SAConfig     `toml:"sa"`
	Output    OutputConfig `toml:"output"`
}

func DefaultExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		Algo:      "both",
		Optimizer: "both",
		Eval:      DefaultEvalConfig(),
		GA:        GAConfig{Population: 6, Generations: 2},
		SA:        SAConfig{Steps: 20, T0: 1.0, T1: 1e-3},
		Output:    OutputConfig{CSVPath: "results/evolution.csv"},
	}
}

// LoadExperimentConfig decodes path on top of the defaults.
func LoadExperimentConfig(path string) (ExperimentConfig, error) {
	config := DefaultExperimentConfig()
	conffile, err := os.Open(path)
	if err != nil {
		return config, fmt.Errorf("Unable to load config: %w", err)
	}
	defer conffile.Close()
	if _, err = toml.NewDecoder(conffile).Decode(&config); err != nil {
		return config, fmt.Errorf("Failed to unmarshal config: %w", err)
	}
	return config, nil
}

// ApplyFastProfile shrinks the experiment to a quick smoke run.
func (c *ExperimentConfig) ApplyFastProfile() {
	c.Eval.N = 1000
	c.Eval.TrialsPerDist = 1
	c.Eval.Distributions = []Distribution{Uniform}
	c.GA = GAConfig{Population: 6, Generations: 2}
	c.SA.Steps = 20
}

// ApplyLargeInputProfile reduces the workload for large inputs and reports
// whether it did.
func (c *ExperimentConfig) ApplyLargeInputProfile() bool {
	if c.Eval.N < LargeInputThreshold {
		return false
	}
	c.Eval.TrialsPerDist = 1
	c.Eval.Distributions = []Distribution{Uniform}
	c.GA = GAConfig{Population: 2, Generations: 1}
	return true
}

func (c ExperimentConfig) Validate() error {
	if _, err := c.Algorithms(); err != nil {
		return err
	}
	if _, err := c.Optimizers(); err != nil {
		return err
	}
	if err := c.Eval.Validate(); err != nil {
		return err
	}
	if c.runs(OptGenetic) {
		if c.GA.Population <= 0 {
			return fmt.Errorf("%w: ga.population must be positive, got %d", ErrInvalidConfig, c.GA.Population)
		}
		if c.GA.Generations < 0 {
			return fmt.Errorf("%w: ga.generations must not be negative, got %d", ErrInvalidConfig, c.GA.Generations)
		}
	}
	if c.runs(OptAnnealing) {
		if c.SA.Steps < 0 {
			return fmt.Errorf("%w: sa.steps must not be negative, got %d", ErrInvalidConfig, c.SA.Steps)
		}
		if c.SA.T0 <= 0 || c.SA.T1 <= 0 {
			return fmt.Errorf("%w: sa temperatures must be positive", ErrInvalidConfig)
		}
	}
	return nil
}

// Algorithms expands the algo selector.
func (c ExperimentConfig) Algorithms() ([]Algorithm, error) {
	switch strings.ToLower(c.Algo) {
	case "qs", "quicksort":
		return []Algorithm{AlgoQuicksort}, nil
	case "ms", "mergesort":
		return []Algorithm{AlgoMergesort}, nil
	case "both", "":
		return []Algorithm{AlgoQuicksort, AlgoMergesort}, nil
	}
	return nil, fmt.Errorf("%w: unknown algo %q", ErrInvalidConfig, c.Algo)
}

// Optimizers expands the optimizer selector.
func (c ExperimentConfig) Optimizers() ([]Optimizer, error) {
	switch strings.ToLower(c.Optimizer) {
	case "ga":
		return []Optimizer{OptGenetic}, nil
	case "sa":
		return []Optimizer{OptAnnealing}, nil
	case "both", "":
		return []Optimizer{OptGenetic, OptAnnealing}, nil
	}
	return nil, fmt.Errorf("%w: unknown optimizer %q", ErrInvalidConfig, c.Optimizer)
}

func (c ExperimentConfig) runs(o Optimizer) bool {
	opts, err := c.Optimizers()
	if err != nil {
		return false
	}
	for _, x := range opts {
		if x == o {
			return true
		}
	}
	return false
}
