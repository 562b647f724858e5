package algo_evolution

import (
	"errors"
	"math"
	test "testing"

	"nickandperla.net/algo_evolution/sorting"
)

func TestGeometricMean(t *test.T) {
	if got := GeometricMeanMs([]float64{1, 4}); math.Abs(got-2) > 1e-9 {
		t.Errorf("Expected 2, got %f", got)
	}
	if got := GeometricMeanMs([]float64{3, 3, 3}); math.Abs(got-3) > 1e-9 {
		t.Errorf("Expected 3, got %f", got)
	}
	if got := GeometricMeanMs(nil); got != 0 {
		t.Errorf("Expected 0 for no timings, got %f", got)
	}
}

func TestGeometricMeanFloorsZero(t *test.T) {
	got := GeometricMeanMs([]float64{0})
	if got != fitnessEpsilonMs {
		t.Errorf("Expected epsilon floor %g, got %g", fitnessEpsilonMs, got)
	}
	if got := GeometricMeanMs([]float64{0, 1}); got <= 0 || math.IsNaN(got) {
		t.Errorf("Expected a positive mean, got %g", got)
	}
}

func TestReduceTrials(t *test.T) {
	results := []trialResult{
		{ms: 1, metrics: sorting.Metrics{Comparisons: 10, Moves: 4}},
		{skipped: true},
		{ms: 9, metrics: sorting.Metrics{Comparisons: 20, Moves: 8}},
	}
	res, err := reduceTrials(results)
	if err != nil {
		t.Fatalf("reduceTrials returned error: %v", err)
	}
	if math.Abs(res.FitnessMs-3) > 1e-9 {
		t.Errorf("Expected fitness 3, got %f", res.FitnessMs)
	}
	if res.AverageComparisons != 15 || res.AverageMoves != 6 {
		t.Errorf("Unexpected averages: %+v", res)
	}
	if res.Trials != 2 {
		t.Errorf("Expected 2 trials, got %d", res.Trials)
	}
}

func TestReduceTrialsOrderIndependent(t *test.T) {
	a := []trialResult{{ms: 2}, {ms: 5}, {ms: 7}}
	b := []trialResult{{ms: 7}, {ms: 2}, {ms: 5}}
	ra, _ := reduceTrials(a)
	rb, _ := reduceTrials(b)
	if math.Abs(ra.FitnessMs-rb.FitnessMs) > 1e-12 {
		t.Errorf("Reduction depends on order: %g vs %g", ra.FitnessMs, rb.FitnessMs)
	}
}

func TestReduceTrialsAllSkipped(t *test.T) {
	if _, err := reduceTrials([]trialResult{{skipped: true}}); !errors.Is(err, ErrNoTrials) {
		t.Errorf("Expected ErrNoTrials, got %v", err)
	}
}

func TestRunTrialSkipsEmptyInput(t *test.T) {
	res := runTrial(trialInput{dist: Uniform}, DefaultQuicksortGenome())
	if !res.skipped {
		t.Errorf("Expected empty input to be skipped")
	}
}

func TestRunTrialLeavesBaseAlone(t *test.T) {
	base := []int{5, 3, 3, 1, 4, 1}
	orig := append([]int(nil), base...)
	res := runTrial(trialInput{dist: Uniform, base: base}, DefaultMergesortGenome())
	if res.skipped {
		t.Fatalf("Trial unexpectedly skipped")
	}
	for i := range orig {
		if base[i] != orig[i] {
			t.Fatalf("Base array modified: %v", base)
		}
	}
}
