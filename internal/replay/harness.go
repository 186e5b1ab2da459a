package replay

import (
	"fmt"

	"github.com/arcanastate/engine-go/internal/patterns"
	"github.com/arcanastate/engine-go/internal/selector"
	"github.com/arcanastate/engine-go/internal/trace"
	"github.com/arcanastate/engine-go/internal/vacuum"
)

// #region types

// RoundResult captures the outcome of replaying one selection round.
type RoundResult struct {
	RoundID          string
	ExpectedWinner   string
	ActualWinner     string
	Score            float64
	VacuumAdjustment float64
	ZeroPoint        float64
	TraceCount       int
	Match            bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalRounds int
	Matches     int
	Divergences int
	FinalVacuum vacuum.State
	FinalStats  trace.Statistics
}

// #endregion types

// #region replay

// Replay runs a fixture through a fresh selection engine: seed traces first,
// then each round in order, recording outcomes exactly as the original
// session did. Operates entirely in-memory.
func Replay(fixture *Fixture) ([]RoundResult, Summary, error) {
	results, summary, _, err := ReplayWithEngine(fixture)
	return results, summary, err
}

// ReplayWithEngine is Replay plus the final engine, for callers that persist
// the replayed state afterwards.
func ReplayWithEngine(fixture *Fixture) ([]RoundResult, Summary, *selector.Engine, error) {
	engine := selector.NewEngine(fixture.Config.ToSelectorConfig(), patterns.DefaultConfig())

	for _, seed := range fixture.SeedTraces {
		engine.AddTrace(seed.Text, seed.Accepted, nil)
	}

	results := make([]RoundResult, 0, len(fixture.Rounds))
	for _, round := range fixture.Rounds {
		candidates := make([]selector.Candidate, len(round.Candidates))
		for i, fc := range round.Candidates {
			candidates[i] = fc.ToCandidate()
		}

		selection, err := engine.Select(candidates, nil)
		if err != nil {
			return results, Summary{}, engine, fmt.Errorf("round %s: %w", round.RoundID, err)
		}

		results = append(results, RoundResult{
			RoundID:          round.RoundID,
			ExpectedWinner:   round.ExpectedWinner,
			ActualWinner:     selection.Winner.ID,
			Score:            selection.Winner.Score,
			VacuumAdjustment: selection.Provenance.VacuumAdjustment,
			ZeroPoint:        selection.Provenance.ZeroPoint,
			TraceCount:       selection.Provenance.TraceCount,
			Match:            selection.Winner.ID == round.ExpectedWinner,
		})

		if round.RecordOutcome {
			engine.AddTrace(selection.Winner.Text, round.AcceptWinner, map[string]string{
				"round_id": round.RoundID,
			})
		}
	}

	return results, Summarize(results, engine), engine, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []RoundResult, engine *selector.Engine) Summary {
	s := Summary{
		TotalRounds: len(results),
		FinalVacuum: engine.VacuumState(),
		FinalStats:  engine.Statistics(),
	}
	for _, r := range results {
		if r.Match {
			s.Matches++
		} else {
			s.Divergences++
		}
	}
	return s
}

// #endregion replay
