package algo_evolution

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	cp "github.com/jinzhu/copier"
)

type Optimizer string

const (
	OptGenetic   Optimizer = "GA"
	OptAnnealing Optimizer = "SA"
)

// EvaluationHook observes every evaluation an optimizer performs. index is
// the population slot for the genetic algorithm and NoPopulationIndex for
// annealing; temperature is zero for the genetic algorithm. A returned error
// stops the run.
type EvaluationHook[G any] func(step, index int, genome G, result EvaluationResult, temperature float64) error

// RunRecord is one logged evaluation. Genome columns of the other algorithm
// stay nil.
type RunRecord struct {
	ID                 uint
	RunID              string `gorm:"index"`
	Step               int
	Algo               string
	Optimizer          string `gorm:"column:opt"`
	Pivot              *string
	Scheme             *string
	Cutoff             *int
	Depth              *int
	Tail               *bool
	RunThreshold       *int
	Iterative          *bool
	ReuseBuffer        *bool
	FitnessMs          float64
	AverageComparisons uint64 `gorm:"column:comparisons"`
	AverageMoves       uint64 `gorm:"column:swaps"`
	N                  int
	TrialsPerDist      int
	DistMask           uint
	PopIdx             int
	Temperature        float64 `gorm:"column:temp"`
}

// Recorder persists run records.
type Recorder interface {
	Record(rec *RunRecord) error
	Close() error
}

// NewRunRecord combines the run-wide fields in base with one evaluation.
func NewRunRecord[G Genome[G]](base RunRecord, step, index int, g G, res EvaluationResult, temperature float64) (*RunRecord, error) {
	rec := base
	if err := cp.Copy(&rec, &res); err != nil {
		return nil, fmt.Errorf("failed to copy evaluation result: %w", err)
	}
	g.Annotate(&rec)
	rec.Step = step
	rec.PopIdx = index
	rec.Temperature = temperature
	return &rec, nil
}

// RecordingHook adapts a Recorder into an EvaluationHook.
func RecordingHook[G Genome[G]](r Recorder, base RunRecord) EvaluationHook[G] {
	return func(step, index int, g G, res EvaluationResult, temperature float64) error {
		rec, err := NewRunRecord(base, step, index, g, res, temperature)
		if err != nil {
			return err
		}
		return r.Record(rec)
	}
}

var csvHeader = []string{
	"run_id", "step", "algo", "opt",
	"pivot", "scheme", "cutoff", "depth", "tail",
	"run_threshold", "iterative", "reuse_buffer",
	"fitness_ms", "comparisons", "swaps",
	"n", "trials_per_dist", "dist_mask", "pop_idx", "temp",
}

// CSVRecorder writes one row per record in the experiment log schema.
type CSVRecorder struct {
	w      *csv.Writer
	closer io.Closer
	rows   int
}

// NewCSVRecorder writes the header immediately.
func NewCSVRecorder(w io.Writer) (*CSVRecorder, error) {
	cr := &CSVRecorder{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		cr.closer = c
	}
	if err := cr.w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	cr.w.Flush()
	return cr, cr.w.Error()
}

// CreateCSVRecorder creates path, and its parent directories, for writing.
func CreateCSVRecorder(path string) (*CSVRecorder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	cr, err := NewCSVRecorder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return cr, nil
}

func (cr *CSVRecorder) Record(rec *RunRecord) error {
	row := []string{
		rec.RunID,
		strconv.Itoa(rec.Step),
		rec.Algo,
		rec.Optimizer,
		optString(rec.Pivot),
		optString(rec.Scheme),
		optInt(rec.Cutoff),
		optInt(rec.Depth),
		optBool(rec.Tail),
		optInt(rec.RunThreshold),
		optBool(rec.Iterative),
		optBool(rec.ReuseBuffer),
		strconv.FormatFloat(rec.FitnessMs, 'f', 6, 64),
		strconv.FormatUint(rec.AverageComparisons, 10),
		strconv.FormatUint(rec.AverageMoves, 10),
		strconv.Itoa(rec.N),
		strconv.Itoa(rec.TrialsPerDist),
		strconv.FormatUint(uint64(rec.DistMask), 10),
		strconv.Itoa(rec.PopIdx),
		strconv.FormatFloat(rec.Temperature, 'f', 6, 64),
	}
	if err := cr.w.Write(row); err != nil {
		return err
	}
	cr.rows++
	if cr.rows%10 == 0 {
		cr.w.Flush()
	}
	return cr.w.Error()
}

func (cr *CSVRecorder) Close() error {
	cr.w.Flush()
	err := cr.w.Error()
	if cr.closer != nil {
		if cerr := cr.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optBool(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "1"
	}
	return "0"
}

// MultiRecorder fans records out to several recorders.
type MultiRecorder []Recorder

func (m MultiRecorder) Record(rec *RunRecord) error {
	for _, r := range m {
		if err := r.Record(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiRecorder) Close() error {
	var first error
	for _, r := range m {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
