package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"nickandperla.net/algo_evolution"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

var (
	configPath   = flag.String("config", "", "Experiment config path (TOML); defaults apply when empty")
	algo         = flag.String("algo", "", "Algorithm to evolve: qs, ms or both")
	opt          = flag.String("opt", "", "Optimizer: ga, sa or both")
	outPath      = flag.String("out", "", "CSV log path")
	dbPath       = flag.String("db", "", "SQLite run store path")
	n            = flag.Int("n", 0, "Array size")
	trials       = flag.Int("trials-per-dist", 0, "Trials per distribution")
	seed         = flag.Uint64("seed", 0, "Master seed")
	jobs         = flag.Int("jobs", -1, "Worker count (0 = all CPUs)")
	noPrecompute = flag.Bool("no-precompute", false, "Regenerate inputs on every evaluation")
	dists        = flag.String("dists", "", "Comma separated distributions (uniform,nearly_sorted,reverse,many_duplicates,dataset)")
	dataset      = flag.String("dataset", "", "CSV dataset path; adds the dataset distribution")
	gens         = flag.Int("gens", -1, "GA generations")
	pop          = flag.Int("pop", 0, "GA population size")
	steps        = flag.Int("steps", -1, "SA steps")
	fast         = flag.Bool("fast", false, "Quick profile: n=1000, one trial, uniform only")
	fullTest     = flag.Bool("full-test", false, "Keep the full workload for large n")
	verbose      = flag.Bool("verbose", false, "Log every evaluation")
	silent       = flag.Bool("silent", false, "Only log warnings and errors")
	verify       = flag.Bool("verify", false, "Check the winning genomes sort every distribution correctly")
)

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05"})
	switch {
	case *verbose:
		log.SetLevel(logrus.DebugLevel)
	case *silent:
		log.SetLevel(logrus.WarnLevel)
	}

	config := algo_evolution.DefaultExperimentConfig()
	if *configPath != "" {
		var err error
		if config, err = algo_evolution.LoadExperimentConfig(*configPath); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if err := applyFlags(&config); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}
	if *fast {
		config.ApplyFastProfile()
	} else if !*fullTest && config.ApplyLargeInputProfile() {
		log.WithField("n", config.Eval.N).Info("large input, using reduced profile (pass -full-test to disable)")
	}

	rec, err := openRecorders(config.Output)
	if err != nil {
		log.Fatalf("Failed to open output: %v", err)
	}

	x, err := algo_evolution.NewExperiment(config, rec, log)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.WithFields(logrus.Fields{
		"run_id": x.RunID,
		"n":      humanize.Comma(int64(config.Eval.N)),
		"trials": config.Eval.TrialsPerDist,
		"dists":  len(config.Eval.Distributions),
	}).Info("starting experiment")

	summary, runErr := x.Run(ctx)
	if err := rec.Close(); err != nil {
		log.Errorf("Failed to close output: %v", err)
	}
	if runErr != nil {
		log.Fatalf("Experiment failed: %v", runErr)
	}

	fmt.Printf("Run %s\n", summary.RunID)
	for _, o := range summary.Outcomes {
		fmt.Printf("  %s/%s  best %s ms  [%s]\n", o.Algo, o.Optimizer,
			humanize.FormatFloat("#,###.######", o.BestResult.FitnessMs), o.BestGenome)
		fmt.Printf("    comparisons %s  moves %s  evaluations %d  took %s\n",
			humanize.Comma(int64(o.BestResult.AverageComparisons)),
			humanize.Comma(int64(o.BestResult.AverageMoves)),
			o.Evaluations, o.Elapsed.Round(time.Millisecond))
		if o.FinalGenome != "" {
			fmt.Printf("    final %s ms  [%s]\n",
				humanize.FormatFloat("#,###.######", o.FinalResult.FitnessMs), o.FinalGenome)
		}
	}

	if *verify {
		failed := false
		for _, o := range summary.Outcomes {
			if err := algo_evolution.Verify(o.Best, config.Eval); err != nil {
				log.Errorf("%s/%s [%s] failed verification: %v", o.Algo, o.Optimizer, o.BestGenome, err)
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
		fmt.Println("All winning genomes verified.")
	}
}

func applyFlags(c *algo_evolution.ExperimentConfig) error {
	if *algo != "" {
		c.Algo = *algo
	}
	if *opt != "" {
		c.Optimizer = *opt
	}
	if *outPath != "" {
		c.Output.CSVPath = *outPath
	}
	if *dbPath != "" {
		c.Output.SQLitePath = *dbPath
	}
	if *n > 0 {
		c.Eval.N = *n
	}
	if *trials > 0 {
		c.Eval.TrialsPerDist = *trials
	}
	if *seed != 0 {
		c.Eval.Seed = *seed
	}
	if *jobs >= 0 {
		c.Eval.Jobs = *jobs
	}
	if *noPrecompute {
		c.Eval.Precompute = false
	}
	if *dists != "" {
		c.Eval.Distributions = nil
		for _, name := range strings.Split(*dists, ",") {
			d, err := algo_evolution.ParseDistribution(strings.TrimSpace(name))
			if err != nil {
				return err
			}
			c.Eval.Distributions = append(c.Eval.Distributions, d)
		}
	}
	if *dataset != "" {
		c.Eval.DatasetPath = *dataset
		if !c.Eval.UsesDataset() {
			c.Eval.Distributions = append(c.Eval.Distributions, algo_evolution.Dataset)
		}
	}
	if *gens >= 0 {
		c.GA.Generations = *gens
	}
	if *pop > 0 {
		c.GA.Population = *pop
	}
	if *steps >= 0 {
		c.SA.Steps = *steps
	}
	return nil
}

func openRecorders(out algo_evolution.OutputConfig) (algo_evolution.MultiRecorder, error) {
	var recs algo_evolution.MultiRecorder
	if out.CSVPath != "" {
		csvRec, err := algo_evolution.CreateCSVRecorder(out.CSVPath)
		if err != nil {
			return nil, err
		}
		recs = append(recs, csvRec)
	}
	if out.SQLitePath != "" {
		dir, name := filepath.Split(out.SQLitePath)
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			recs.Close()
			return nil, err
		}
		dbRec, err := algo_evolution.NewSQLiteRecorder(&algo_evolution.PersistenceConfig{
			Name:          name,
			Path:          dir,
			SQLitePragmas: []string{"journal_mode(WAL)", "synchronous(NORMAL)"},
			BatchSize:     100,
		})
		if err != nil {
			recs.Close()
			return nil, err
		}
		recs = append(recs, dbRec)
	}
	return recs, nil
}
