package algo_evolution

import (
	"errors"
	"math/rand"
)

const (
	// GA operator settings.
	TournamentSize   = 3
	MutationRate     = 0.7
	CrossoverBias    = 0.5
	MutationMaxDelta = 3

	// Per-field mutation probabilities for quicksort genomes.
	qsPivotMutation  = 0.20
	qsSchemeMutation = 0.20
	qsCutoffMutation = 0.40
	qsDepthMutation  = 0.40
	qsTailMutation   = 0.30

	// Per-field mutation probabilities for mergesort genomes.
	msRunMutation       = 0.40
	msIterativeMutation = 0.20
	msReuseMutation     = 0.20

	// Cumulative nudge thresholds used by simulated annealing.
	qsNudgePivot  = 0.20
	qsNudgeScheme = 0.40
	qsNudgeCutoff = 0.65
	qsNudgeDepth  = 0.90
	msNudgeRun    = 0.55
	msNudgeIter   = 0.80

	// Timings are floored here before taking logs.
	fitnessEpsilonMs = 1e-12

	// Spacing between the seeds of consecutive distributions.
	distributionSeedStride = 1_000_003

	NoPopulationIndex = -1
)

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrEmptyPopulation = errors.New("population is empty")
)

// newRand returns a deterministic source for seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}

// delta draws a uniform integer in [-MutationMaxDelta, MutationMaxDelta].
func delta(r *rand.Rand) int {
	return r.Intn(2*MutationMaxDelta+1) - MutationMaxDelta
}
