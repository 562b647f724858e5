package algo_evolution

import "sort"

// Individual is one evaluated genome.
type Individual[G any] struct {
	Genome  G
	Fitness float64
	Result  EvaluationResult
}

// Population holds the individuals of one generation in slot order.
type Population[G any] []Individual[G]

// SortByFitness orders the population best (lowest fitness) first. Ties
// keep their slot order.
func (p Population[G]) SortByFitness() {
	sort.SliceStable(p, func(i, j int) bool {
		return p[i].Fitness < p[j].Fitness
	})
}

// Best returns the individual with the lowest fitness, the first one on ties.
func (p Population[G]) Best() (Individual[G], error) {
	if len(p) == 0 {
		return Individual[G]{}, ErrEmptyPopulation
	}
	best := 0
	for i := 1; i < len(p); i++ {
		if p[i].Fitness < p[best].Fitness {
			best = i
		}
	}
	return p[best], nil
}

func (p Population[G]) Fitnesses() []float64 {
	out := make([]float64, len(p))
	for i, ind := range p {
		out[i] = ind.Fitness
	}
	return out
}
