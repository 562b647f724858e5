package algo_evolution

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

// EvalConfig describes the trial battery every genome is timed against.
type EvalConfig struct {
	N             int            `toml:"n"`
	TrialsPerDist int            `toml:"trials_per_dist"`
	Distributions []Distribution `toml:"distributions"`
	Seed          uint64         `toml:"seed"`
	// Jobs is the worker count; 0 uses every available CPU.
	Jobs int `toml:"jobs"`
	// Precompute shares base arrays through an ArrayCache.
	Precompute  bool   `toml:"precompute"`
	DatasetPath string `toml:"dataset_path"`
}

func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		N:             100000,
		TrialsPerDist: 5,
		Distributions: append([]Distribution(nil), SyntheticDistributions...),
		Seed:          12345,
		Precompute:    true,
		DatasetPath:   "data/kaggle.csv",
	}
}

func (c EvalConfig) Validate() error {
	if c.N <= 0 {
		return fmt.Errorf("%w: n must be positive, got %d", ErrInvalidConfig, c.N)
	}
	if c.TrialsPerDist <= 0 {
		return fmt.Errorf("%w: trials_per_dist must be positive, got %d", ErrInvalidConfig, c.TrialsPerDist)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidConfig, c.Jobs)
	}
	if len(c.Distributions) == 0 {
		return fmt.Errorf("%w: at least one distribution is required", ErrInvalidConfig)
	}
	for _, d := range c.Distributions {
		if !d.Valid() {
			return fmt.Errorf("%w: unknown distribution %d", ErrInvalidConfig, int(d))
		}
		if d == Dataset && c.DatasetPath == "" {
			return fmt.Errorf("%w: dataset distribution needs dataset_path", ErrInvalidConfig)
		}
	}
	return nil
}

// UsesDataset reports whether the battery includes the external dataset.
func (c EvalConfig) UsesDataset() bool {
	for _, d := range c.Distributions {
		if d == Dataset {
			return true
		}
	}
	return false
}

// Mask is the distribution bitmask written to logs.
func (c EvalConfig) Mask() uint {
	return DistributionMask(c.Distributions)
}

func (c EvalConfig) cacheKey() CacheKey {
	return CacheKey{N: c.N, TrialsPerDist: c.TrialsPerDist, Seed: c.Seed, Dataset: c.UsesDataset()}
}

// TrialSeed derives the generator seed of one (distribution, trial) pair.
func (c EvalConfig) TrialSeed(d Distribution, trial int) uint64 {
	return c.Seed + uint64(d)*distributionSeedStride + uint64(trial)
}

// Evaluator times sorters over a fixed battery of inputs. Trials run on a
// bounded worker pool; Evaluate blocks until all of them finish.
type Evaluator struct {
	Config EvalConfig
	cache  *ArrayCache
	pool   *ants.Pool
	log    logrus.FieldLogger
}

// NewEvaluator validates config and starts the worker pool. cache may be nil,
// in which case inputs are regenerated on every evaluation. Close releases
// the pool.
func NewEvaluator(config EvalConfig, cache *ArrayCache, log logrus.FieldLogger) (*Evaluator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	jobs := config.Jobs
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}
	pool, err := ants.NewPool(jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to start worker pool: %w", err)
	}
	if !config.Precompute {
		cache = nil
	}
	return &Evaluator{
		Config: config,
		cache:  cache,
		pool:   pool,
		log:    log,
	}, nil
}

func (e *Evaluator) Close() {
	e.pool.Release()
}

// Evaluate times s against every (distribution, trial) input and reduces the
// timings to a geometric mean.
func (e *Evaluator) Evaluate(s Sorter) (EvaluationResult, error) {
	inputs := e.inputs()
	results := make([]trialResult, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i := range inputs {
		i := i
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = safeTrial(inputs[i], s)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return EvaluationResult{}, fmt.Errorf("failed to submit trial %d: %w", i, err)
		}
	}
	wg.Wait()

	if err := firstError(errs); err != nil {
		return EvaluationResult{}, err
	}

	res, err := reduceTrials(results)
	if err != nil {
		return EvaluationResult{}, err
	}
	e.log.WithFields(logrus.Fields{
		"fitness_ms":  res.FitnessMs,
		"comparisons": res.AverageComparisons,
		"moves":       res.AverageMoves,
		"trials":      res.Trials,
	}).Debug("evaluated")
	return res, nil
}

// EvaluateFunc adapts the evaluator to the optimizers' evaluate callback.
func EvaluateFunc[G Genome[G]](e *Evaluator) func(G) (EvaluationResult, error) {
	return func(g G) (EvaluationResult, error) {
		res, err := e.Evaluate(g)
		if err != nil {
			return res, fmt.Errorf("failed to evaluate %s genome [%s]: %w", g.Algorithm(), g, err)
		}
		return res, nil
	}
}

func (e *Evaluator) inputs() []trialInput {
	inputs := make([]trialInput, 0, len(e.Config.Distributions)*e.Config.TrialsPerDist)
	for _, d := range e.Config.Distributions {
		for t, base := range e.baseArrays(d) {
			inputs = append(inputs, trialInput{dist: d, trial: t, base: base})
		}
	}
	return inputs
}

func (e *Evaluator) baseArrays(d Distribution) [][]int {
	build := func() [][]int { return e.buildArrays(d) }
	if e.cache == nil {
		return build()
	}
	return e.cache.GetOrBuild(e.Config.cacheKey(), d, build)
}

func (e *Evaluator) buildArrays(d Distribution) [][]int {
	var column []int
	if d == Dataset {
		column = LoadDatasetColumn(e.Config.DatasetPath, e.Config.N)
		if len(column) == 0 {
			e.log.WithField("path", e.Config.DatasetPath).
				Warn("dataset unusable, falling back to uniform input")
		}
	}

	arrays := make([][]int, e.Config.TrialsPerDist)
	for t := range arrays {
		seed := e.Config.TrialSeed(d, t)
		switch {
		case d != Dataset:
			arrays[t] = MakeArray(e.Config.N, d, seed)
		case len(column) == 0:
			arrays[t] = MakeArray(e.Config.N, Uniform, seed)
		default:
			arrays[t] = padTo(column, e.Config.N)
		}
	}
	return arrays
}

// padTo cycles a short array up to n values.
func padTo(arr []int, n int) []int {
	if len(arr) >= n {
		return arr
	}
	return cycleTo(arr, n)
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
