package algo_evolution

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"nickandperla.net/algo_evolution/sorting"
)

// Verify sorts a fresh copy of every distribution's first trial input with
// s and checks the output is ordered and a permutation of the input.
func Verify(s Sorter, config EvalConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	ev := &Evaluator{Config: config, log: logrus.StandardLogger()}
	for _, d := range config.Distributions {
		base := ev.buildArrays(d)[0]
		out := append([]int(nil), base...)
		var m sorting.Metrics
		s.Sort(out, &m)
		if !sorting.IsSorted(out) {
			return fmt.Errorf("%s: output is not sorted", d)
		}
		if !sorting.SameMultiset(base, out) {
			return fmt.Errorf("%s: output is not a permutation of the input", d)
		}
	}
	return nil
}
