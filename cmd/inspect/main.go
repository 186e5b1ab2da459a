package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/arcanastate/engine-go/internal/config"
	"github.com/arcanastate/engine-go/internal/patterns"
	"github.com/arcanastate/engine-go/internal/selector"
	"github.com/arcanastate/engine-go/internal/store"
	"github.com/arcanastate/engine-go/internal/trace"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to arcana_state.db")
	last := flag.Int("last", 20, "show N most recent snapshots")
	version := flag.String("version", "", "show single snapshot detail")
	topPatterns := flag.Int("patterns", 10, "number of mined patterns to show in detail mode")
	configPath := flag.String("config", "", "optional YAML config path")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/arcana_state.db [--last N] [--version id] [--patterns N] [--json]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *version != "" {
		err = runDetailMode(st, cfg, *version, *topPatterns, *jsonOut)
	} else {
		err = runListMode(st, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	VersionID string `json:"version_id"`
	ParentID  string `json:"parent_id,omitempty"`
	Traces    int    `json:"traces"`
	Accepted  int    `json:"accepted"`
	Rejected  int    `json:"rejected"`
	CreatedAt string `json:"created_at"`
}

func runListMode(st *store.Store, last int, jsonOut bool) error {
	snaps, err := st.List(last)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(os.Stderr, "no snapshots found")
		return nil
	}

	// Store returns DESC; reverse for chronological order
	rows := make([]listRow, len(snaps))
	for i, snap := range snaps {
		var stats trace.Statistics
		if snap.StatsJSON != "" {
			json.Unmarshal([]byte(snap.StatsJSON), &stats)
		}
		rows[len(snaps)-1-i] = listRow{
			VersionID: snap.VersionID,
			ParentID:  snap.ParentID,
			Traces:    stats.Total,
			Accepted:  stats.Accepted,
			Rejected:  stats.Rejected,
			CreatedAt: snap.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-12s  %-12s  %7s  %9s  %9s  %s\n",
		"Version", "Parent", "Traces", "Accepted", "Rejected", "Time")
	fmt.Printf("%-12s+-%-12s+-%7s+-%9s+-%9s+-%s\n",
		"------------", "------------", "-------", "---------", "---------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-12s  %-12s  %7d  %9d  %9d  %s\n",
			shortID(r.VersionID), shortID(r.ParentID), r.Traces, r.Accepted, r.Rejected, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	VersionID  string                  `json:"version_id"`
	ParentID   string                  `json:"parent_id,omitempty"`
	CreatedAt  string                  `json:"created_at"`
	Statistics trace.Statistics        `json:"statistics"`
	Vacuum     vacuumDetail            `json:"vacuum"`
	Patterns   []patterns.Significance `json:"patterns,omitempty"`
}

type vacuumDetail struct {
	TraceCount int     `json:"trace_count"`
	Resistance float64 `json:"resistance"`
	Acceptance float64 `json:"acceptance"`
	ZeroPoint  float64 `json:"zero_point"`
}

func runDetailMode(st *store.Store, cfg config.Config, versionID string, topPatterns int, jsonOut bool) error {
	snap, err := st.Get(versionID)
	if err != nil {
		return err
	}

	// Rehydrate an engine from the snapshot blob to read its state back
	engine := selector.NewEngine(cfg.Selector, cfg.Patterns)
	if err := engine.ImportState(snap.StateBlob); err != nil {
		return fmt.Errorf("import snapshot blob: %w", err)
	}

	vs := engine.VacuumState()
	mined := engine.SignificantPatterns(cfg.Mining.MinFrequency)
	if len(mined) > topPatterns {
		mined = mined[:topPatterns]
	}

	out := detailOutput{
		VersionID:  snap.VersionID,
		ParentID:   snap.ParentID,
		CreatedAt:  snap.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Statistics: engine.Statistics(),
		Vacuum: vacuumDetail{
			TraceCount: vs.TraceCount,
			Resistance: vs.Resistance,
			Acceptance: vs.Acceptance,
			ZeroPoint:  vs.ZeroPoint,
		},
		Patterns: mined,
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Version:    %s\n", out.VersionID)
	fmt.Printf("Parent:     %s\n", out.ParentID)
	fmt.Printf("Created:    %s\n", out.CreatedAt)
	fmt.Printf("Traces:     %d (%d accepted, %d rejected)\n",
		out.Statistics.Total, out.Statistics.Accepted, out.Statistics.Rejected)
	fmt.Printf("Mean K:     %.2f bits\n", out.Statistics.MeanComplexity)

	fmt.Printf("\nVacuum state:\n")
	fmt.Printf("  Resistance:  %.4f\n", out.Vacuum.Resistance)
	fmt.Printf("  Acceptance:  %.4f\n", out.Vacuum.Acceptance)
	fmt.Printf("  Zero Point:  %.4f\n", out.Vacuum.ZeroPoint)

	if len(out.Patterns) > 0 {
		fmt.Printf("\nTop patterns (K×f):\n")
		fmt.Printf("  %-40s  %5s  %8s  %8s\n", "Pattern", "Freq", "K", "Score")
		for _, p := range out.Patterns {
			fmt.Printf("  %-40s  %5d  %8.2f  %8.2f\n", truncate(p.Pattern, 40), p.Frequency, p.Complexity, p.Score)
		}
	}

	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// #endregion output
