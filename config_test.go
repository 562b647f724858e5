package algo_evolution

import (
	"os"
	"path/filepath"
	test "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultExperimentConfig(t *test.T) {
	c := DefaultExperimentConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, 100000, c.Eval.N)
	assert.Equal(t, 5, c.Eval.TrialsPerDist)
	assert.Equal(t, uint64(12345), c.Eval.Seed)
	assert.Equal(t, SyntheticDistributions, c.Eval.Distributions)
	assert.Equal(t, GAConfig{Population: 6, Generations: 2}, c.GA)
	assert.Equal(t, SAConfig{Steps: 20, T0: 1.0, T1: 1e-3}, c.SA)
}

func TestLoadExperimentConfig(t *test.T) {
	path := filepath.Join(t.TempDir(), "experiment.toml")
	data := `
algo = "qs"
optimizer = "sa"

[eval]
n = 2048
distributions = ["uniform", "reverse", "dups"]
jobs = 3

[sa]
steps = 50

[output]
sqlite_path = "out/runs.db"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadExperimentConfig(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 2048, c.Eval.N)
	assert.Equal(t, []Distribution{Uniform, Reverse, ManyDuplicates}, c.Eval.Distributions)
	assert.Equal(t, 3, c.Eval.Jobs)
	// Untouched keys keep their defaults.
	assert.Equal(t, 5, c.Eval.TrialsPerDist)
	assert.True(t, c.Eval.Precompute)
	assert.Equal(t, 50, c.SA.Steps)
	assert.Equal(t, 1.0, c.SA.T0)
	assert.Equal(t, "out/runs.db", c.Output.SQLitePath)

	algos, err := c.Algorithms()
	require.NoError(t, err)
	assert.Equal(t, []Algorithm{AlgoQuicksort}, algos)
	opts, err := c.Optimizers()
	require.NoError(t, err)
	assert.Equal(t, []Optimizer{OptAnnealing}, opts)
}

func TestLoadExperimentConfigErrors(t *test.T) {
	dir := t.TempDir()
	_, err := LoadExperimentConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[eval]
distributions = ["sideways"]
`), 0o644))
	_, err = LoadExperimentConfig(path)
	assert.Error(t, err)
}

func TestExperimentConfigValidate(t *test.T) {
	cases := map[string]func(*ExperimentConfig){
		"bad algo":       func(c *ExperimentConfig) { c.Algo = "heapsort" },
		"bad optimizer":  func(c *ExperimentConfig) { c.Optimizer = "pso" },
		"zero n":         func(c *ExperimentConfig) { c.Eval.N = 0 },
		"zero pop":       func(c *ExperimentConfig) { c.GA.Population = 0 },
		"negative gens":  func(c *ExperimentConfig) { c.GA.Generations = -1 },
		"negative steps": func(c *ExperimentConfig) { c.SA.Steps = -1 },
		"cold start":     func(c *ExperimentConfig) { c.SA.T0 = 0 },
	}
	for name, mutate := range cases {
		c := DefaultExperimentConfig()
		mutate(&c)
		assert.ErrorIs(t, c.Validate(), ErrInvalidConfig, name)
	}

	// GA settings are irrelevant when only annealing runs.
	c := DefaultExperimentConfig()
	c.Optimizer = "sa"
	c.GA.Population = 0
	assert.NoError(t, c.Validate())
}

func TestProfiles(t *test.T) {
	c := DefaultExperimentConfig()
	c.ApplyFastProfile()
	assert.Equal(t, 1000, c.Eval.N)
	assert.Equal(t, 1, c.Eval.TrialsPerDist)
	assert.Equal(t, []Distribution{Uniform}, c.Eval.Distributions)
	assert.Equal(t, GAConfig{Population: 6, Generations: 2}, c.GA)
	assert.Equal(t, 20, c.SA.Steps)
	assert.False(t, c.ApplyLargeInputProfile())

	c = DefaultExperimentConfig()
	assert.True(t, c.ApplyLargeInputProfile())
	assert.Equal(t, 1, c.Eval.TrialsPerDist)
	assert.Equal(t, []Distribution{Uniform}, c.Eval.Distributions)
	assert.Equal(t, GAConfig{Population: 2, Generations: 1}, c.GA)
}
