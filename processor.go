package algo_evolution

import (
	"fmt"
	"time"

	"nickandperla.net/algo_evolution/sorting"
)

// trialInput is one (distribution, trial) pair of the battery. base is
// shared and must not be written.
type trialInput struct {
	dist  Distribution
	trial int
	base  []int
}

// runTrial warms up on a scratch prefix, then times exactly one sort of a
// private copy of base.
func runTrial(in trialInput, s Sorter) trialResult {
	if len(in.base) == 0 {
		return trialResult{skipped: true}
	}

	sorting.Warmup(in.base, s.Sort)

	work := make([]int, len(in.base))
	copy(work, in.base)

	var m sorting.Metrics
	start := time.Now()
	s.Sort(work, &m)
	elapsed := time.Since(start)

	return trialResult{
		ms:      float64(elapsed.Nanoseconds()) / float64(time.Millisecond),
		metrics: m,
	}
}

// safeTrial turns a panic inside a sorter into an error for its slot.
func safeTrial(in trialInput, s Sorter) (res trialResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("trial %s/%d panicked: %v", in.dist, in.trial, r)
		}
	}()
	return runTrial(in, s), nil
}
