package algo_evolution

import "math/rand"

// Breed produces one offspring: two tournament winners are crossed and the
// child is mutated with probability MutationRate.
func Breed[G Genome[G]](p Population[G], r *rand.Rand) G {
	a := TournamentIndex(p, TournamentSize, r)
	b := TournamentIndex(p, TournamentSize, r)
	child := p[a].Genome.Crossover(p[b].Genome, r)
	if r.Float64() < MutationRate {
		child = child.Mutate(r)
	}
	return child
}

// InitialGenomes builds the starting population by mutating the default
// genome once per slot.
func InitialGenomes[G Genome[G]](size int, r *rand.Rand) []G {
	var zero G
	base := zero.Default()
	out := make([]G, size)
	for i := range out {
		out[i] = base.Mutate(r)
	}
	return out
}
