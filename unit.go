package algo_evolution

import (
	"fmt"
	"math/rand"

	"nickandperla.net/algo_evolution/sorting"
)

// Genome is the capability set both optimizers need from a configuration
// type. Every operator returns a new value; receivers are never modified.
type Genome[G any] interface {
	// Default returns the base configuration the searches start from.
	Default() G
	Mutate(r *rand.Rand) G
	Crossover(other G, r *rand.Rand) G
	// Nudge perturbs exactly one field.
	Nudge(r *rand.Rand) G
	Sort(s []int, m *sorting.Metrics)
	Algorithm() Algorithm
	// Annotate fills the genome columns of a log record.
	Annotate(rec *RunRecord)
	String() string
}

// Sorter is anything the Evaluator can time.
type Sorter interface {
	Sort(s []int, m *sorting.Metrics)
}

type Algorithm string

const (
	AlgoQuicksort Algorithm = "QS"
	AlgoMergesort Algorithm = "MS"
)

// QuicksortGenome is the searchable form of sorting.QuicksortDNA.
type QuicksortGenome sorting.QuicksortDNA

// MergesortGenome is the searchable form of sorting.MergesortDNA.
type MergesortGenome sorting.MergesortDNA

func DefaultQuicksortGenome() QuicksortGenome {
	return QuicksortGenome{
		Pivot:           sorting.PivotMedianOfThree,
		Scheme:          sorting.Hoare,
		InsertionCutoff: 16,
	}
}

func DefaultMergesortGenome() MergesortGenome {
	return MergesortGenome{
		RunThreshold: 16,
		Iterative:    true,
		ReuseBuffer:  true,
	}
}

func (QuicksortGenome) Default() QuicksortGenome { return DefaultQuicksortGenome() }
func (MergesortGenome) Default() MergesortGenome { return DefaultMergesortGenome() }

func (QuicksortGenome) Algorithm() Algorithm { return AlgoQuicksort }
func (MergesortGenome) Algorithm() Algorithm { return AlgoMergesort }

func (g QuicksortGenome) DNA() sorting.QuicksortDNA { return sorting.QuicksortDNA(g) }
func (g MergesortGenome) DNA() sorting.MergesortDNA { return sorting.MergesortDNA(g) }

func (g QuicksortGenome) Sort(s []int, m *sorting.Metrics) {
	sorting.Quicksort(s, g.DNA(), m)
}

func (g MergesortGenome) Sort(s []int, m *sorting.Metrics) {
	sorting.Mergesort(s, g.DNA(), m)
}

func (g QuicksortGenome) String() string {
	return fmt.Sprintf("pivot=%s scheme=%s cutoff=%d depth=%d tail=%t",
		g.Pivot, g.Scheme, g.InsertionCutoff, g.DepthCap, g.TailRecursionElimination)
}

func (g MergesortGenome) String() string {
	return fmt.Sprintf("run=%d iterative=%t reuse=%t", g.RunThreshold, g.Iterative, g.ReuseBuffer)
}

func (g QuicksortGenome) Annotate(rec *RunRecord) {
	pivot, scheme := g.Pivot.String(), g.Scheme.String()
	cutoff, depth, tail := g.InsertionCutoff, g.DepthCap, g.TailRecursionElimination
	rec.Algo = string(AlgoQuicksort)
	rec.Pivot = &pivot
	rec.Scheme = &scheme
	rec.Cutoff = &cutoff
	rec.Depth = &depth
	rec.Tail = &tail
}

func (g MergesortGenome) Annotate(rec *RunRecord) {
	run, iterative, reuse := g.RunThreshold, g.Iterative, g.ReuseBuffer
	rec.Algo = string(AlgoMergesort)
	rec.RunThreshold = &run
	rec.Iterative = &iterative
	rec.ReuseBuffer = &reuse
}
