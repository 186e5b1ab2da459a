package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/arcanastate/engine-go/internal/logging"
	"github.com/arcanastate/engine-go/internal/replay"
	"github.com/arcanastate/engine-go/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to arcana_state.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	saveDB := flag.String("save-db", "", "persist the replayed state and rounds into this DB (fixture mode)")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/arcana_state.db")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json [--save-db path/to/arcana_state.db]")
		os.Exit(2)
	}
	if *saveDB != "" && *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "--save-db requires --fixture")
		os.Exit(2)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath, *saveDB, logger)
	} else {
		exitCode = runDBMode(*dbPath, logger)
	}
	os.Exit(exitCode)
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(2)
	}
	return logger
}

// #endregion main

// #region db-extract

func runDBMode(dbPath string, logger *zap.Logger) int {
	st, err := store.NewStore(dbPath)
	if err != nil {
		logger.Error("open db", zap.Error(err))
		return 2
	}
	defer st.Close()

	records, err := loadSelectionRecords(st.DB())
	if err != nil {
		logger.Error("load provenance", zap.Error(err))
		return 2
	}
	if len(records) == 0 {
		logger.Error("no selection records found in provenance_log")
		return 2
	}
	logger.Debug("loaded provenance records", zap.Int("count", len(records)))

	fixture := &replay.Fixture{
		Description: fmt.Sprintf("provenance replay of %s", dbPath),
		Rounds:      replay.RoundsFromRecords(records),
	}

	results, summary, err := replay.Replay(fixture)
	if err != nil {
		logger.Error("replay", zap.Error(err))
		return 2
	}
	return printComparison(results, summary)
}

// loadSelectionRecords reads all parseable selection records from the
// provenance log in chronological order.
func loadSelectionRecords(db *sql.DB) ([]logging.SelectionRecord, error) {
	rows, err := db.Query(
		`SELECT candidates_json FROM provenance_log
		 WHERE candidates_json IS NOT NULL ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query provenance: %w", err)
	}
	defer rows.Close()

	var records []logging.SelectionRecord
	for rows.Next() {
		var candidatesJSON string
		if err := rows.Scan(&candidatesJSON); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var rec logging.SelectionRecord
		if err := json.Unmarshal([]byte(candidatesJSON), &rec); err != nil {
			continue
		}
		if rec.RoundID == "" || len(rec.Candidates) == 0 {
			continue // not SelectionRecord format
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion db-extract

// #region output

func runFixtureMode(path, saveDB string, logger *zap.Logger) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		logger.Error("load fixture", zap.Error(err))
		return 2
	}
	logger.Debug("loaded fixture",
		zap.String("description", f.Description),
		zap.Int("seed_traces", len(f.SeedTraces)),
		zap.Int("rounds", len(f.Rounds)))

	results, summary, engine, err := replay.ReplayWithEngine(f)
	if err != nil {
		logger.Error("replay", zap.Error(err))
		return 2
	}

	if saveDB != "" {
		st, err := store.NewStore(saveDB)
		if err != nil {
			logger.Error("open save db", zap.Error(err))
			return 2
		}
		defer st.Close()

		snap, err := replay.Persist(st, f, results, engine)
		if err != nil {
			logger.Error("persist replay", zap.Error(err))
			return 2
		}
		fmt.Printf("Saved snapshot %s with %d provenance rounds to %s\n",
			snap.VersionID, len(results), saveDB)
	}

	return printComparison(results, summary)
}

// printComparison outputs an expected/actual comparison table and returns
// the exit code: 0 when every round matches, 1 on any divergence.
func printComparison(results []replay.RoundResult, summary replay.Summary) int {
	fmt.Printf("%-12s| %-15s| %-15s| %8s| %s\n", "Round", "Expected", "Replayed", "Score", "Match")
	fmt.Printf("%-12s+%-16s+%-16s+%9s+%s\n",
		"------------", "----------------", "----------------", "---------", "------")

	for _, r := range results {
		match := "DIFF"
		if r.Match {
			match = "OK"
		}
		fmt.Printf("%-12s| %-15s| %-15s| %8.4f| %s\n",
			r.RoundID, r.ExpectedWinner, r.ActualWinner, r.Score, match)
	}

	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n",
		summary.TotalRounds, summary.Matches, summary.Divergences)
	fmt.Printf("Final vacuum: R=%.4f A=%.4f zpe=%.4f over %d traces\n",
		summary.FinalVacuum.Resistance, summary.FinalVacuum.Acceptance,
		summary.FinalVacuum.ZeroPoint, summary.FinalStats.Total)

	if summary.Divergences > 0 {
		return 1
	}
	return 0
}

// #endregion output
