package algo_evolution

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"pragmas"`
	SQLiteOptions []string `toml:"options"`
	BatchSize     int      `toml:"batch_size"`
}

// DSN assembles the sqlite connection string, pragmas first.
func (c *PersistenceConfig) DSN() string {
	params := make([]string, 0, len(c.SQLitePragmas)+len(c.SQLiteOptions))
	for _, prag := range c.SQLitePragmas {
		params = append(params, "_pragma="+prag)
	}
	params = append(params, c.SQLiteOptions...)

	var path strings.Builder
	path.WriteString(filepath.Join(c.Path, c.Name))
	if len(params) > 0 {
		path.WriteRune('?')
		path.WriteString(strings.Join(params, "&"))
	}
	return path.String()
}

// SQLiteRecorder stores run records in a sqlite database through gorm.
// Records are buffered and written in batches.
type SQLiteRecorder struct {
	Config  *PersistenceConfig
	DB      *gorm.DB
	pending []*RunRecord
}

func NewSQLiteRecorder(config *PersistenceConfig) (*SQLiteRecorder, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}
	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	db, err := gorm.Open(sqlite.Open(config.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	batch := config.BatchSize
	if batch <= 0 {
		batch = 100
	}
	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: batch})

	r := &SQLiteRecorder{Config: config, DB: db}
	if err = r.initialize(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRecorder) initialize() error {
	return r.DB.AutoMigrate(&RunRecord{})
}

func (r *SQLiteRecorder) Record(rec *RunRecord) error {
	r.pending = append(r.pending, rec)
	if len(r.pending) >= r.batchSize() {
		return r.Flush()
	}
	return nil
}

// Flush writes every buffered record.
func (r *SQLiteRecorder) Flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	if result := r.DB.Create(r.pending); result.Error != nil {
		return fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}
	r.pending = r.pending[:0]
	return nil
}

func (r *SQLiteRecorder) Close() error {
	err := r.Flush()
	sqldb, derr := r.DB.DB()
	if derr != nil {
		return fmt.Errorf("Failed to retrieve raw DB: %w", derr)
	}
	if cerr := sqldb.Close(); err == nil {
		err = cerr
	}
	return err
}

func (r *SQLiteRecorder) batchSize() int {
	if r.Config.BatchSize > 0 {
		return r.Config.BatchSize
	}
	return 100
}

// BestRecord is the fastest logged evaluation of one run and
// algorithm/optimizer pair.
type BestRecord struct {
	RunID       string
	Algo        string
	Optimizer   string
	Step        int
	FitnessMs   float64
	Comparisons uint64
	Moves       uint64
	Genome      string
	Evaluations int
}

// QueryBestRecords reads a run store with plain SQL and returns the best
// evaluation per (run, algo, optimizer). An empty runID selects every run.
func QueryBestRecords(db *sql.DB, runID string) ([]BestRecord, error) {
	rows, err := db.Query(`SELECT r.run_id, r.algo, r.opt, r.step, r.fitness_ms,
		r.comparisons, r.swaps, r.pivot, r.scheme, r.cutoff, r.depth, r.tail,
		r.run_threshold, r.iterative, r.reuse_buffer, agg.evaluations
		FROM run_records r
		JOIN (
			SELECT run_id, algo, opt, MIN(fitness_ms) AS best, COUNT(*) AS evaluations
			FROM run_records
			WHERE ? = '' OR run_id = ?
			GROUP BY run_id, algo, opt
		) agg ON r.run_id = agg.run_id AND r.algo = agg.algo AND r.opt = agg.opt
			AND r.fitness_ms = agg.best
		GROUP BY r.run_id, r.algo, r.opt
		ORDER BY r.run_id, r.algo, r.opt`, runID, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query best records: %w", err)
	}
	defer rows.Close()

	var out []BestRecord
	for rows.Next() {
		var (
			b                          BestRecord
			pivot, scheme              sql.NullString
			cutoff, depth, runThresh   sql.NullInt64
			tail, iterative, reuseBuff sql.NullBool
		)
		if err := rows.Scan(&b.RunID, &b.Algo, &b.Optimizer, &b.Step, &b.FitnessMs,
			&b.Comparisons, &b.Moves, &pivot, &scheme, &cutoff, &depth, &tail,
			&runThresh, &iterative, &reuseBuff, &b.Evaluations); err != nil {
			return nil, err
		}
		if b.Algo == string(AlgoQuicksort) {
			b.Genome = fmt.Sprintf("pivot=%s scheme=%s cutoff=%d depth=%d tail=%t",
				pivot.String, scheme.String, cutoff.Int64, depth.Int64, tail.Bool)
		} else {
			b.Genome = fmt.Sprintf("run=%d iterative=%t reuse=%t",
				runThresh.Int64, iterative.Bool, reuseBuff.Bool)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
