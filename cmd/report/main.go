package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"nickandperla.net/algo_evolution"

	"github.com/dustin/go-humanize"
	_ "github.com/glebarez/go-sqlite"
)

var dbPath = flag.String("db", "./results/evolution.db", "SQLite run store written by evolve -db")
var runID = flag.String("run", "", "Only report this run id")

func main() {
	flag.Parse()

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("Unable to open run store: %v", err)
	}
	defer db.Close()

	best, err := algo_evolution.QueryBestRecords(db, *runID)
	if err != nil {
		log.Fatalf("Report failed: %v", err)
	}
	if len(best) == 0 {
		fmt.Println("No runs recorded.")
		return
	}

	last := ""
	for _, b := range best {
		if b.RunID != last {
			fmt.Printf("Run %s:\n", b.RunID)
			last = b.RunID
		}
		fmt.Printf("  %s/%s  best %s ms at step %d of %s evaluations\n", b.Algo, b.Optimizer,
			humanize.FormatFloat("#,###.######", b.FitnessMs), b.Step, humanize.Comma(int64(b.Evaluations)))
		fmt.Printf("    genome       %s\n", b.Genome)
		fmt.Printf("    comparisons  %s\n", humanize.Comma(int64(b.Comparisons)))
		fmt.Printf("    moves        %s\n", humanize.Comma(int64(b.Moves)))
	}
}
