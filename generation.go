package algo_evolution

import "math"

// GenerationStats summarises one generation of a genetic run.
type GenerationStats struct {
	Generation int
	BestMs     float64
	WorstMs    float64
	MeanMs     float64
	// Diversity is the mean pairwise edit distance between genome encodings.
	Diversity float64
	// BestSoFarMs is the lowest fitness seen up to and including this
	// generation.
	BestSoFarMs float64
}

func newGenerationStats[G Genome[G]](generation int, p Population[G], bestSoFar float64) GenerationStats {
	stats := GenerationStats{
		Generation:  generation,
		BestMs:      math.Inf(1),
		WorstMs:     math.Inf(-1),
		BestSoFarMs: bestSoFar,
	}
	if len(p) == 0 {
		return stats
	}
	var sum float64
	for _, ind := range p {
		stats.BestMs = math.Min(stats.BestMs, ind.Fitness)
		stats.WorstMs = math.Max(stats.WorstMs, ind.Fitness)
		sum += ind.Fitness
	}
	stats.MeanMs = sum / float64(len(p))
	stats.Diversity = Diversity(p)
	return stats
}
