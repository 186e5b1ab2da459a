package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/arcanastate/engine-go/internal/config"
	"github.com/arcanastate/engine-go/internal/graph"
	"github.com/arcanastate/engine-go/internal/selector"
	"github.com/arcanastate/engine-go/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to arcana_state.db")
	configPath := flag.String("config", "", "optional YAML config path")
	decay := flag.Bool("decay", false, "apply edge decay after seeding")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: bootstrap-patterns --db path/to/arcana_state.db [--config path] [--decay]")
		os.Exit(2)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", zap.Error(err))
		os.Exit(1)
	}

	fmt.Println("=== Pattern Graph Bootstrap ===")
	fmt.Printf("  DB: %s | min frequency: %d | seed delta: %.2f\n",
		*dbPath, cfg.Mining.MinFrequency, cfg.Graph.SeedDelta)

	st, err := store.NewStore(*dbPath)
	if err != nil {
		logger.Error("open db", zap.Error(err))
		os.Exit(1)
	}
	defer st.Close()

	// Rehydrate the engine from the active snapshot
	snap, err := st.Current()
	if err != nil {
		logger.Error("load active snapshot", zap.Error(err))
		os.Exit(1)
	}

	engine := selector.NewEngine(cfg.Selector, cfg.Patterns)
	if err := engine.ImportState(snap.StateBlob); err != nil {
		logger.Error("import snapshot blob", zap.Error(err))
		os.Exit(1)
	}

	stats := engine.Statistics()
	fmt.Printf("  Snapshot %s: %d traces (%d accepted)\n",
		shortID(snap.VersionID), stats.Total, stats.Accepted)

	// Phase 1: mine significant patterns from the trace corpus
	fmt.Println("\n--- Phase 1: Pattern Mining ---")
	mined := engine.SignificantPatterns(cfg.Mining.MinFrequency)
	fmt.Printf("  Mined %d patterns (K x f >= %.1f)\n", len(mined), cfg.Patterns.MinScore)
	if len(mined) == 0 {
		fmt.Println("No patterns to seed. Done.")
		return
	}
	for _, p := range mined {
		logger.Debug("mined pattern",
			zap.String("pattern", p.Pattern),
			zap.Int("frequency", p.Frequency),
			zap.Float64("score", p.Score))
	}

	// Phase 2: seed co-occurrence edges among the mined patterns
	fmt.Println("\n--- Phase 2: Co-occurrence Seeding ---")
	g, err := graph.NewCooccurrenceGraph(st.DB())
	if err != nil {
		logger.Error("init graph", zap.Error(err))
		os.Exit(1)
	}

	names := make([]string, len(mined))
	for i, p := range mined {
		names[i] = p.Pattern
	}
	if err := g.SeedCooccurrence(names, cfg.Graph.SeedDelta); err != nil {
		logger.Error("seed co-occurrence", zap.Error(err))
		os.Exit(1)
	}
	edgeCount := len(names) * (len(names) - 1)
	fmt.Printf("  Seeded %d directed edges among %d patterns\n", edgeCount, len(names))

	// Phase 3 (optional): decay stale edges
	deleted := int64(0)
	if *decay {
		fmt.Println("\n--- Phase 3: Edge Decay ---")
		deleted, err = g.DecayAll(cfg.Graph.HalfLifeHours)
		if err != nil {
			logger.Error("decay edges", zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("  Deleted %d edges below threshold (half-life %.0fh)\n",
			deleted, cfg.Graph.HalfLifeHours)
	}

	fmt.Printf("\n=== Bootstrap Complete ===\n")
	fmt.Printf("  Patterns: %d\n", len(names))
	fmt.Printf("  Edges touched: %d\n", edgeCount)
	if *decay {
		fmt.Printf("  Edges deleted: %d\n", deleted)
	}
}

// #endregion main

// #region helpers

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

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion helpers
