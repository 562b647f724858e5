package algo_evolution

import (
	"math/rand"

	"nickandperla.net/algo_evolution/sorting"
)

// Mutate flips each field independently with its own probability. Integer
// fields move by a bounded delta and are clamped back into range.
func (g QuicksortGenome) Mutate(r *rand.Rand) QuicksortGenome {
	if r.Float64() < qsPivotMutation {
		g.Pivot = sorting.Pivot(r.Intn(3))
	}
	if r.Float64() < qsSchemeMutation {
		g.Scheme = sorting.PartitionScheme(r.Intn(2))
	}
	if r.Float64() < qsCutoffMutation {
		g.InsertionCutoff = sorting.Clamp(g.InsertionCutoff+delta(r),
			sorting.MinInsertionCutoff, sorting.MaxInsertionCutoff)
	}
	if r.Float64() < qsDepthMutation {
		g.DepthCap = sorting.Clamp(g.DepthCap+delta(r), sorting.MinDepthCap, sorting.MaxDepthCap)
	}
	if r.Float64() < qsTailMutation {
		g.TailRecursionElimination = !g.TailRecursionElimination
	}
	return g
}

func (g MergesortGenome) Mutate(r *rand.Rand) MergesortGenome {
	if r.Float64() < msRunMutation {
		g.RunThreshold = sorting.Clamp(g.RunThreshold+delta(r),
			sorting.MinRunThreshold, sorting.MaxRunThreshold)
	}
	if r.Float64() < msIterativeMutation {
		g.Iterative = !g.Iterative
	}
	if r.Float64() < msReuseMutation {
		g.ReuseBuffer = !g.ReuseBuffer
	}
	return g
}

// Crossover is uniform: every field comes from g or other on a fair coin.
func (g QuicksortGenome) Crossover(other QuicksortGenome, r *rand.Rand) QuicksortGenome {
	child := g
	if r.Float64() < CrossoverBias {
		child.Pivot = other.Pivot
	}
	if r.Float64() < CrossoverBias {
		child.Scheme = other.Scheme
	}
	if r.Float64() < CrossoverBias {
		child.InsertionCutoff = other.InsertionCutoff
	}
	if r.Float64() < CrossoverBias {
		child.DepthCap = other.DepthCap
	}
	if r.Float64() < CrossoverBias {
		child.TailRecursionElimination = other.TailRecursionElimination
	}
	return QuicksortGenome(child.DNA().Clamp())
}

func (g MergesortGenome) Crossover(other MergesortGenome, r *rand.Rand) MergesortGenome {
	child := g
	if r.Float64() < CrossoverBias {
		child.RunThreshold = other.RunThreshold
	}
	if r.Float64() < CrossoverBias {
		child.Iterative = other.Iterative
	}
	if r.Float64() < CrossoverBias {
		child.ReuseBuffer = other.ReuseBuffer
	}
	return MergesortGenome(child.DNA().Clamp())
}

// Nudge changes a single field picked by weight: pivot 20%, scheme 20%,
// cutoff 25%, depth 25%, tail 10%.
func (g QuicksortGenome) Nudge(r *rand.Rand) QuicksortGenome {
	switch p := r.Float64(); {
	case p < qsNudgePivot:
		g.Pivot = sorting.Pivot(r.Intn(3))
	case p < qsNudgeScheme:
		g.Scheme = sorting.PartitionScheme(r.Intn(2))
	case p < qsNudgeCutoff:
		g.InsertionCutoff = sorting.Clamp(g.InsertionCutoff+delta(r),
			sorting.MinInsertionCutoff, sorting.MaxInsertionCutoff)
	case p < qsNudgeDepth:
		g.DepthCap = sorting.Clamp(g.DepthCap+delta(r), sorting.MinDepthCap, sorting.MaxDepthCap)
	default:
		g.TailRecursionElimination = !g.TailRecursionElimination
	}
	return g
}

// Nudge changes a single field: run threshold 55%, iterative 25%, reuse 20%.
func (g MergesortGenome) Nudge(r *rand.Rand) MergesortGenome {
	switch p := r.Float64(); {
	case p < msNudgeRun:
		g.RunThreshold = sorting.Clamp(g.RunThreshold+delta(r),
			sorting.MinRunThreshold, sorting.MaxRunThreshold)
	case p < msNudgeIter:
		g.Iterative = !g.Iterative
	default:
		g.ReuseBuffer = !g.ReuseBuffer
	}
	return g
}
