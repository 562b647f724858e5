package algo_evolution

import (
	"database/sql"
	"path/filepath"
	test "testing"

	_ "github.com/glebarez/go-sqlite"
)

func testPersistenceConfig(t *test.T) *PersistenceConfig {
	return &PersistenceConfig{
		Name:          "runs.db",
		Path:          t.TempDir(),
		SQLitePragmas: []string{"journal_mode(WAL)"},
		BatchSize:     2,
	}
}

func TestPersistenceDSN(t *test.T) {
	config := &PersistenceConfig{
		Name:          "runs.db",
		Path:          "results",
		SQLitePragmas: []string{"journal_mode(WAL)", "synchronous(NORMAL)"},
		SQLiteOptions: []string{"cache=shared"},
	}
	want := filepath.Join("results", "runs.db") + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&cache=shared"
	if got := config.DSN(); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestNewSQLiteRecorderNeedsLocation(t *test.T) {
	if _, err := NewSQLiteRecorder(nil); err == nil {
		t.Errorf("Expected error for nil config")
	}
	if _, err := NewSQLiteRecorder(&PersistenceConfig{Name: "x.db"}); err == nil {
		t.Errorf("Expected error for missing path")
	}
	if _, err := NewSQLiteRecorder(&PersistenceConfig{Path: t.TempDir()}); err == nil {
		t.Errorf("Expected error for missing name")
	}
}

func TestSQLiteRecorderStoresRecords(t *test.T) {
	config := testPersistenceConfig(t)
	rec, err := NewSQLiteRecorder(config)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder returned error: %v", err)
	}

	records := sampleRecords(t)
	qsWorse := *records[0]
	qsWorse.FitnessMs = 9
	qsWorse.Step = 3
	records = append(records, &qsWorse)
	for _, r := range records {
		if err := rec.Record(r); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(config.Path, config.Name))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM run_records").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("Expected 3 rows, got %d", count)
	}

	var nullPivot sql.NullString
	if err := db.QueryRow("SELECT pivot FROM run_records WHERE algo = 'MS'").Scan(&nullPivot); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if nullPivot.Valid {
		t.Errorf("Mergesort rows should have a NULL pivot, got %q", nullPivot.String)
	}

	best, err := QueryBestRecords(db, "")
	if err != nil {
		t.Fatalf("QueryBestRecords returned error: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("Expected 2 best records, got %d: %+v", len(best), best)
	}
	// Ordered by algo tag, so MS comes first.
	ms, qs := best[0], best[1]
	if qs.Algo != "QS" || qs.FitnessMs != 1.5 || qs.Step != 2 || qs.Evaluations != 2 {
		t.Errorf("Unexpected quicksort best: %+v", qs)
	}
	if qs.Genome != DefaultQuicksortGenome().String() {
		t.Errorf("Expected genome %q, got %q", DefaultQuicksortGenome().String(), qs.Genome)
	}
	if ms.Algo != "MS" || ms.Optimizer != "SA" || ms.Genome != DefaultMergesortGenome().String() {
		t.Errorf("Unexpected mergesort best: %+v", ms)
	}

	none, err := QueryBestRecords(db, "other-run")
	if err != nil {
		t.Fatalf("QueryBestRecords returned error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no records for an unknown run, got %d", len(none))
	}
}
