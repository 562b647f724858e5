package algo_evolution

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// SimulatedAnnealing walks single-field neighbours of the default genome
// under an exponentially cooling temperature.
type SimulatedAnnealing[G Genome[G]] struct {
	Steps int
	T0    float64
	T1    float64
	Seed  uint64
	// Hook sees the starting genome at step 0 and every proposed
	// neighbour after it, with population index NoPopulationIndex.
	Hook EvaluationHook[G]
	Log  logrus.FieldLogger
	// LogEvery controls progress logging; zero logs about ten times per run.
	LogEvery int
}

// AnnealResult is the outcome of an annealing run. Final is where the
// trajectory ended; BestSoFar is the best state it visited.
type AnnealResult[G any] struct {
	Final       G
	FinalResult EvaluationResult
	BestSoFar   G
	BestResult  EvaluationResult
	// History is the current fitness after each step, starting with the
	// initial evaluation.
	History []float64
	// Accepted counts accepted proposals.
	Accepted int
}

// Temperature is t0*(t1/t0)^(step/steps).
func Temperature(t0, t1 float64, step, steps int) float64 {
	if steps <= 0 {
		return t1
	}
	return t0 * math.Pow(t1/t0, float64(step)/float64(steps))
}

// metropolisAccept accepts improvements outright and worse candidates with
// probability exp(-delta/temperature).
func metropolisAccept(delta, temperature float64, r *rand.Rand) bool {
	if delta < 0 {
		return true
	}
	if temperature <= 0 {
		return false
	}
	return r.Float64() < math.Exp(-delta/temperature)
}

func (sa *SimulatedAnnealing[G]) validate() error {
	if sa.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, sa.Steps)
	}
	if sa.T0 <= 0 || sa.T1 <= 0 {
		return fmt.Errorf("%w: temperatures must be positive, got t0=%g t1=%g", ErrInvalidConfig, sa.T0, sa.T1)
	}
	return nil
}

// Run starts from the default genome and performs Steps proposals.
// Cancellation is checked between evaluations.
func (sa *SimulatedAnnealing[G]) Run(ctx context.Context, evaluate EvaluateFn[G]) (*AnnealResult[G], error) {
	if evaluate == nil {
		panic("SimulatedAnnealing.Run: evaluate cannot be nil")
	}
	if err := sa.validate(); err != nil {
		return nil, err
	}
	log := sa.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	every := sa.LogEvery
	if every <= 0 {
		every = sa.Steps/10 + 1
	}

	r := newRand(sa.Seed)
	var zero G
	current := zero.Default()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	currentRes, err := evaluate(current)
	if err != nil {
		return nil, err
	}
	if err := sa.notify(0, current, currentRes, sa.T0); err != nil {
		return nil, err
	}

	res := &AnnealResult[G]{
		BestSoFar:  current,
		BestResult: currentRes,
		History:    make([]float64, 1, sa.Steps+1),
	}
	res.History[0] = currentRes.FitnessMs

	for step := 1; step <= sa.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		temp := Temperature(sa.T0, sa.T1, step, sa.Steps)
		candidate := current.Nudge(r)
		candRes, err := evaluate(candidate)
		if err != nil {
			return nil, err
		}
		if err := sa.notify(step, candidate, candRes, temp); err != nil {
			return nil, err
		}

		if metropolisAccept(candRes.FitnessMs-currentRes.FitnessMs, temp, r) {
			current, currentRes = candidate, candRes
			res.Accepted++
			if currentRes.FitnessMs < res.BestResult.FitnessMs {
				res.BestSoFar, res.BestResult = current, currentRes
			}
		}
		res.History = append(res.History, currentRes.FitnessMs)

		if step%every == 0 || step == sa.Steps {
			log.WithFields(logrus.Fields{
				"step":        step,
				"temperature": temp,
				"current_ms":  currentRes.FitnessMs,
				"best_ms":     res.BestResult.FitnessMs,
			}).Info("annealing progress")
		}
	}

	res.Final, res.FinalResult = current, currentRes
	return res, nil
}

func (sa *SimulatedAnnealing[G]) notify(step int, g G, r EvaluationResult, temp float64) error {
	if sa.Hook == nil {
		return nil
	}
	return sa.Hook(step, NoPopulationIndex, g, r, temp)
}

// RunSA runs an annealing search and returns the trajectory's final genome.
// Use SimulatedAnnealing.Run for the best state visited.
func RunSA[G Genome[G]](ctx context.Context, evaluate EvaluateFn[G], steps int, t0, t1 float64, seed uint64) (G, error) {
	sa := &SimulatedAnnealing[G]{Steps: steps, T0: t0, T1: t1, Seed: seed}
	res, err := sa.Run(ctx, evaluate)
	if err != nil {
		var zero G
		return zero, err
	}
	return res.Final, nil
}
