package algo_evolution

import "math/rand"

// TournamentIndex draws k slots uniformly, with replacement, and returns the
// one with the lowest fitness. The first drawn wins ties.
func TournamentIndex[G any](p Population[G], k int, r *rand.Rand) int {
	best := r.Intn(len(p))
	for i := 1; i < k; i++ {
		j := r.Intn(len(p))
		if p[j].Fitness < p[best].Fitness {
			best = j
		}
	}
	return best
}
