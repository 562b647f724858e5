package algo_evolution

import (
	"errors"
	"math"

	"nickandperla.net/algo_evolution/sorting"
)

var ErrNoTrials = errors.New("no usable trials to evaluate")

// EvaluationResult is the reduced outcome of timing one genome over the
// whole trial battery. Lower FitnessMs is better.
type EvaluationResult struct {
	// FitnessMs is the geometric mean of per-trial wall-clock milliseconds.
	FitnessMs          float64
	AverageComparisons uint64
	AverageMoves       uint64
	Trials             int
}

type trialResult struct {
	ms      float64
	metrics sorting.Metrics
	skipped bool
}

// GeometricMeanMs averages timings in log space, flooring each at a tiny
// epsilon so a zero reading cannot send the mean to zero.
func GeometricMeanMs(ms []float64) float64 {
	if len(ms) == 0 {
		return 0
	}
	var logSum float64
	for _, v := range ms {
		logSum += math.Log(math.Max(v, fitnessEpsilonMs))
	}
	return math.Exp(logSum / float64(len(ms)))
}

// reduceTrials folds trial results in slice order, so the outcome does not
// depend on which worker finished first.
func reduceTrials(results []trialResult) (EvaluationResult, error) {
	var (
		logSum      float64
		comparisons uint64
		moves       uint64
		count       int
	)
	for _, r := range results {
		if r.skipped {
			continue
		}
		logSum += math.Log(math.Max(r.ms, fitnessEpsilonMs))
		comparisons += r.metrics.Comparisons
		moves += r.metrics.Moves
		count++
	}
	if count == 0 {
		return EvaluationResult{}, ErrNoTrials
	}
	return EvaluationResult{
		FitnessMs:          math.Exp(logSum / float64(count)),
		AverageComparisons: comparisons / uint64(count),
		AverageMoves:       moves / uint64(count),
		Trials:             count,
	}, nil
}
