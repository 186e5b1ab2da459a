package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/arcanastate/engine-go/internal/config"
	"github.com/arcanastate/engine-go/internal/logging"
	"github.com/arcanastate/engine-go/internal/replay"
	"github.com/arcanastate/engine-go/internal/selector"
	"github.com/arcanastate/engine-go/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to arcana_state.db")
	last := flag.Int("last", 4, "number of most recent provenance rounds to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	configPath := flag.String("config", "", "optional YAML config path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --out path/to/fixture.json [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *configPath, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath, configPath string, last int, outPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

	db := st.DB()

	// Initial snapshot (first version with no parent) provides the seed traces
	var initVersionID string
	err = db.QueryRow(
		`SELECT version_id FROM engine_snapshots WHERE parent_id IS NULL ORDER BY created_at ASC LIMIT 1`,
	).Scan(&initVersionID)
	if err != nil {
		return fmt.Errorf("find initial snapshot: %w", err)
	}

	initSnap, err := st.Get(initVersionID)
	if err != nil {
		return fmt.Errorf("get initial snapshot: %w", err)
	}

	seeds, err := seedTracesFromBlob(cfg, initSnap.StateBlob)
	if err != nil {
		return fmt.Errorf("decode initial snapshot: %w", err)
	}

	// Query last N rounds (DESC then reverse for chronological order)
	rows, err := db.Query(
		`SELECT candidates_json FROM (
			SELECT candidates_json, created_at FROM provenance_log
			WHERE candidates_json IS NOT NULL
			ORDER BY created_at DESC LIMIT ?
		) sub ORDER BY created_at ASC`, last,
	)
	if err != nil {
		return fmt.Errorf("query provenance: %w", err)
	}
	defer rows.Close()

	var records []logging.SelectionRecord
	for rows.Next() {
		var candidatesJSON sql.NullString
		if err := rows.Scan(&candidatesJSON); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		if !candidatesJSON.Valid || candidatesJSON.String == "" {
			continue
		}

		var rec logging.SelectionRecord
		if err := json.Unmarshal([]byte(candidatesJSON.String), &rec); err != nil {
			continue
		}
		if rec.RoundID == "" || len(rec.Candidates) == 0 {
			continue // not SelectionRecord format
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}

	if len(records) == 0 {
		return fmt.Errorf("no SelectionRecord-format rows found in last %d provenance entries", last)
	}

	fmt.Printf("Found %d selection rounds\n", len(records))

	fixture := buildFixture(cfg, seeds, records)
	return writeFixture(fixture, outPath)
}

// seedTracesFromBlob rehydrates an engine from a snapshot blob and dumps its
// trace history as fixture seeds.
func seedTracesFromBlob(cfg config.Config, blob []byte) ([]replay.FixtureTrace, error) {
	engine := selector.NewEngine(cfg.Selector, cfg.Patterns)
	if err := engine.ImportState(blob); err != nil {
		return nil, err
	}
	traces := engine.Traces()
	seeds := make([]replay.FixtureTrace, len(traces))
	for i, t := range traces {
		seeds[i] = replay.FixtureTrace{Text: t.Text, Accepted: t.Accepted}
	}
	return seeds, nil
}

// #endregion extract

// #region output

func buildFixture(cfg config.Config, seeds []replay.FixtureTrace, records []logging.SelectionRecord) replay.Fixture {
	return replay.Fixture{
		Description: fmt.Sprintf("Real session export: %d selection rounds from production DB", len(records)),
		Config: replay.FixtureConfig{
			PriorScaleBits:      cfg.Selector.PriorScaleBits,
			VacuumWeight:        cfg.Selector.VacuumWeight,
			RedundancyNeighbors: cfg.Selector.RedundancyNeighbors,
			MaxZeroPoint:        cfg.Selector.Vacuum.MaxZeroPoint,
		},
		SeedTraces: seeds,
		Rounds:     replay.RoundsFromRecords(records),
	}
}

func writeFixture(fixture replay.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("Wrote fixture to %s (%d bytes, %d rounds)\n", outPath, len(data), len(fixture.Rounds))
	return nil
}

// #endregion output
