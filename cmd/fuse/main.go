package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/arcanastate/engine-go/internal/config"
	"github.com/arcanastate/engine-go/internal/fusion"
)

// #region main

func main() {
	inputPath := flag.String("input", "", "path to fusion input JSON")
	configPath := flag.String("config", "", "optional YAML config path")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fuse --input path/to/input.json [--config path] [--json]")
		os.Exit(2)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", zap.Error(err))
		os.Exit(1)
	}

	input, err := loadInput(*inputPath)
	if err != nil {
		logger.Error("load input", zap.Error(err))
		os.Exit(1)
	}
	logger.Debug("loaded input",
		zap.Int("cards", len(input.Reading.Cards)),
		zap.Int("history", len(input.User.History)),
		zap.Bool("cross_session", input.User.CrossSession != nil),
		zap.Bool("journal", input.User.Journal != nil))

	engine := fusion.NewEngine(cfg.Fusion)
	result := engine.Fuse(input)

	check := fusion.Check(result)
	if !check.Passed {
		logger.Warn("fusion result failed self-check", zap.String("reason", check.Reason))
	}

	if *jsonOut {
		printJSON(result)
		if !check.Passed {
			os.Exit(1)
		}
		return
	}

	printResult(result, check)
	if !check.Passed {
		os.Exit(1)
	}
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

func loadInput(path string) (fusion.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fusion.Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	var input fusion.Input
	if err := json.Unmarshal(data, &input); err != nil {
		return fusion.Input{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return input, nil
}

// #endregion main

// #region output

func printResult(result fusion.Result, check fusion.CheckResult) {
	fmt.Printf("Dominant:    %s\n", result.Dominant)
	fmt.Printf("Confidence:  %.4f\n", result.Confidence)
	fmt.Printf("Position:    [%.4f, %.4f, %.4f]\n",
		result.Position[0], result.Position[1], result.Position[2])

	fmt.Printf("\nDomain weights:\n")
	for _, domain := range fusion.DomainOrder {
		bar := weightBar(result.Weights[domain])
		fmt.Printf("  %-20s  %.4f  %s\n", domain, result.Weights[domain], bar)
	}

	fmt.Printf("\nState vector:  [")
	for i, v := range result.Vector {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%.4f", v)
	}
	fmt.Println("]")

	printList("Pattern insights", result.PatternInsights)
	printList("Shadow work", result.ShadowWork)
	printList("Growth indicators", result.GrowthIndicators)
	printList("Guidance", result.Guidance)

	fmt.Printf("\nProvenance:  %s\n", result.Provenance)

	status := "PASS"
	if !check.Passed {
		status = "FAIL"
	}
	fmt.Printf("Self-check:  %s (%s)\n", status, check.Reason)
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}

// weightBar renders a 20-char proportional bar for a weight in [0,1].
func weightBar(w float64) string {
	n := int(w * 20)
	if n > 20 {
		n = 20
	}
	bar := make([]byte, n)
	for i := range bar {
		bar[i] = '#'
	}
	return string(bar)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal json: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

// #endregion output
