package algo_evolution

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Experiment runs every configured algorithm against every configured
// optimizer over one shared evaluator.
type Experiment struct {
	Config   ExperimentConfig
	RunID    string
	Recorder Recorder
	Log      logrus.FieldLogger
	cache    *ArrayCache
}

// Outcome is the result of one algorithm/optimizer pairing.
type Outcome struct {
	Algo      Algorithm
	Optimizer Optimizer
	// Best is the lowest-fitness genome visited.
	Best       Sorter
	BestGenome string
	BestResult EvaluationResult
	// FinalGenome is where an annealing trajectory ended; empty for the
	// genetic algorithm.
	FinalGenome string
	FinalResult EvaluationResult
	Evaluations int
	Elapsed     time.Duration
}

type Summary struct {
	RunID    string
	Outcomes []Outcome
}

// NewExperiment validates config and assigns a fresh run id. rec may be nil.
func NewExperiment(config ExperimentConfig, rec Recorder, log logrus.FieldLogger) (*Experiment, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	id := uuid.New().String()
	return &Experiment{
		Config:   config,
		RunID:    id,
		Recorder: rec,
		Log:      log.WithField("run_id", id),
		cache:    NewArrayCache(),
	}, nil
}

func (x *Experiment) Run(ctx context.Context) (*Summary, error) {
	algos, _ := x.Config.Algorithms()
	opts, _ := x.Config.Optimizers()

	ev, err := NewEvaluator(x.Config.Eval, x.cache, x.Log)
	if err != nil {
		return nil, err
	}
	defer ev.Close()

	summary := &Summary{RunID: x.RunID}
	for _, algo := range algos {
		for _, opt := range opts {
			var out Outcome
			switch algo {
			case AlgoQuicksort:
				out, err = runPairing[QuicksortGenome](ctx, x, ev, opt)
			case AlgoMergesort:
				out, err = runPairing[MergesortGenome](ctx, x, ev, opt)
			}
			if err != nil {
				return summary, fmt.Errorf("Failed to run %s/%s: %w", algo, opt, err)
			}
			x.Log.WithFields(logrus.Fields{
				"algo":        out.Algo,
				"opt":         out.Optimizer,
				"best_ms":     out.BestResult.FitnessMs,
				"genome":      out.BestGenome,
				"evaluations": out.Evaluations,
			}).Info("search finished")
			summary.Outcomes = append(summary.Outcomes, out)
		}
	}
	return summary, nil
}

// baseRecord carries the run-wide columns of every log row.
func (x *Experiment) baseRecord(opt Optimizer) RunRecord {
	return RunRecord{
		RunID:         x.RunID,
		Optimizer:     string(opt),
		N:             x.Config.Eval.N,
		TrialsPerDist: x.Config.Eval.TrialsPerDist,
		DistMask:      x.Config.Eval.Mask(),
	}
}

func runPairing[G Genome[G]](ctx context.Context, x *Experiment, ev *Evaluator, opt Optimizer) (Outcome, error) {
	var zero G
	out := Outcome{Algo: zero.Algorithm(), Optimizer: opt}
	log := x.Log.WithFields(logrus.Fields{"algo": out.Algo, "opt": opt})

	inner := EvaluateFunc[G](ev)
	evaluate := func(g G) (EvaluationResult, error) {
		out.Evaluations++
		return inner(g)
	}
	var hook EvaluationHook[G]
	if x.Recorder != nil {
		hook = RecordingHook[G](x.Recorder, x.baseRecord(opt))
	}

	start := time.Now()
	switch opt {
	case OptGenetic:
		ga := &GeneticAlgorithm[G]{
			PopulationSize: x.Config.GA.Population,
			Generations:    x.Config.GA.Generations,
			Seed:           x.Config.Eval.Seed,
			Hook:           hook,
			Log:            log,
		}
		res, err := ga.Run(ctx, evaluate)
		if err != nil {
			return out, err
		}
		out.Best, out.BestGenome, out.BestResult = res.Best.Genome, res.Best.Genome.String(), res.Best.Result
	case OptAnnealing:
		sa := &SimulatedAnnealing[G]{
			Steps: x.Config.SA.Steps,
			T0:    x.Config.SA.T0,
			T1:    x.Config.SA.T1,
			Seed:  x.Config.Eval.Seed,
			Hook:  hook,
			Log:   log,
		}
		res, err := sa.Run(ctx, evaluate)
		if err != nil {
			return out, err
		}
		out.Best, out.BestGenome, out.BestResult = res.BestSoFar, res.BestSoFar.String(), res.BestResult
		out.FinalGenome, out.FinalResult = res.Final.String(), res.FinalResult
	default:
		return out, fmt.Errorf("%w: unknown optimizer %q", ErrInvalidConfig, opt)
	}
	out.Elapsed = time.Since(start)
	return out, nil
}
