package algo_evolution

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// EvaluateFn scores one genome. Lower fitness is better.
type EvaluateFn[G any] func(g G) (EvaluationResult, error)

// GeneticAlgorithm is a generational, elitist minimisation search.
type GeneticAlgorithm[G Genome[G]] struct {
	PopulationSize int
	Generations    int
	Seed           uint64
	// Hook sees every individual of every generation; generation 0 is the
	// initial population.
	Hook EvaluationHook[G]
	Log  logrus.FieldLogger
}

// GAResult is the outcome of a genetic run.
type GAResult[G Genome[G]] struct {
	// Best is the lowest-fitness individual seen in any generation.
	Best Individual[G]
	// Final is the last generation, best first.
	Final Population[G]
	// History holds each generation's fitness vector in slot order,
	// starting with generation 1.
	History [][]float64
	Stats   []GenerationStats
}

// Run evaluates the initial population, then for each generation keeps the
// single best individual and fills the remaining slots with bred offspring.
// Cancellation is checked between evaluations.
func (ga *GeneticAlgorithm[G]) Run(ctx context.Context, evaluate EvaluateFn[G]) (*GAResult[G], error) {
	if evaluate == nil {
		panic("GeneticAlgorithm.Run: evaluate cannot be nil")
	}
	if ga.PopulationSize <= 0 {
		return nil, fmt.Errorf("%w: population size must be positive, got %d", ErrInvalidConfig, ga.PopulationSize)
	}
	if ga.Generations < 0 {
		return nil, fmt.Errorf("%w: generations must not be negative, got %d", ErrInvalidConfig, ga.Generations)
	}
	log := ga.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := newRand(ga.Seed)
	res := &GAResult[G]{Best: Individual[G]{Fitness: math.Inf(1)}}

	pop := make(Population[G], 0, ga.PopulationSize)
	for i, g := range InitialGenomes[G](ga.PopulationSize, r) {
		ind, err := ga.evaluate(ctx, evaluate, g)
		if err != nil {
			return nil, err
		}
		pop = append(pop, ind)
		if err := ga.notify(0, i, ind); err != nil {
			return nil, err
		}
	}
	res.track(0, pop)
	log.WithFields(logrus.Fields{
		"generation": 0,
		"best_ms":    res.Best.Fitness,
	}).Info("initial population evaluated")

	for gen := 1; gen <= ga.Generations; gen++ {
		pop.SortByFitness()
		next := make(Population[G], 1, ga.PopulationSize)
		next[0] = pop[0]
		for len(next) < ga.PopulationSize {
			ind, err := ga.evaluate(ctx, evaluate, Breed(pop, r))
			if err != nil {
				return nil, err
			}
			next = append(next, ind)
		}
		pop = next

		res.History = append(res.History, pop.Fitnesses())
		for i, ind := range pop {
			if err := ga.notify(gen, i, ind); err != nil {
				return nil, err
			}
		}
		stats := res.track(gen, pop)
		log.WithFields(logrus.Fields{
			"generation":  gen,
			"best_ms":     stats.BestMs,
			"mean_ms":     stats.MeanMs,
			"best_so_far": stats.BestSoFarMs,
			"diversity":   stats.Diversity,
		}).Info("generation complete")
	}

	pop.SortByFitness()
	res.Final = pop
	return res, nil
}

func (ga *GeneticAlgorithm[G]) evaluate(ctx context.Context, evaluate EvaluateFn[G], g G) (Individual[G], error) {
	if err := ctx.Err(); err != nil {
		return Individual[G]{}, err
	}
	r, err := evaluate(g)
	if err != nil {
		return Individual[G]{}, err
	}
	return Individual[G]{Genome: g, Fitness: r.FitnessMs, Result: r}, nil
}

func (ga *GeneticAlgorithm[G]) notify(gen, idx int, ind Individual[G]) error {
	if ga.Hook == nil {
		return nil
	}
	return ga.Hook(gen, idx, ind.Genome, ind.Result, 0)
}

// track folds a generation into the global best and appends its stats.
func (res *GAResult[G]) track(gen int, p Population[G]) GenerationStats {
	if best, err := p.Best(); err == nil && best.Fitness < res.Best.Fitness {
		res.Best = best
	}
	stats := newGenerationStats(gen, p, res.Best.Fitness)
	res.Stats = append(res.Stats, stats)
	return stats
}

// RunGA runs a genetic search with the given shape and returns the best
// genome seen.
func RunGA[G Genome[G]](ctx context.Context, evaluate EvaluateFn[G], populationSize, generations int, seed uint64) (G, error) {
	ga := &GeneticAlgorithm[G]{
		PopulationSize: populationSize,
		Generations:    generations,
		Seed:           seed,
	}
	res, err := ga.Run(ctx, evaluate)
	if err != nil {
		var zero G
		return zero, err
	}
	return res.Best.Genome, nil
}
