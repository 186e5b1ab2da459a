package replay

import (
	"errors"
	"testing"

	"github.com/arcanastate/engine-go/internal/selector"
)

// helper: a fixture with one trivially decidable round.
func singleRoundFixture() *Fixture {
	return &Fixture{
		Description: "one round",
		Rounds: []FixtureRound{
			{
				RoundID: "r1",
				Candidates: []FixtureCandidate{
					{ID: "only", Text: "Keep going.", Resonance: 0.8},
				},
				ExpectedWinner: "only",
			},
		},
	}
}

// 1. Match path: the single candidate wins and matches the expectation.
func TestReplay_Match(t *testing.T) {
	results, summary, err := Replay(singleRoundFixture())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Match {
		t.Errorf("expected match, got winner %s", results[0].ActualWinner)
	}
	if summary.Matches != 1 || summary.Divergences != 0 {
		t.Errorf("summary mismatch: %+v", summary)
	}
}

// 2. Divergence path: wrong expectation registers as a divergence, not an error.
func TestReplay_Divergence(t *testing.T) {
	f := singleRoundFixture()
	f.Rounds[0].ExpectedWinner = "someone-else"

	results, summary, err := Replay(f)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if results[0].Match {
		t.Error("expected divergence")
	}
	if summary.Divergences != 1 {
		t.Errorf("expected 1 divergence, got %d", summary.Divergences)
	}
}

// 3. Recorded outcomes feed the trace history and the vacuum.
func TestReplay_RecordsOutcomes(t *testing.T) {
	f := singleRoundFixture()
	f.Rounds[0].RecordOutcome = true
	f.Rounds[0].AcceptWinner = false

	_, summary, err := Replay(f)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if summary.FinalStats.Total != 1 {
		t.Fatalf("expected 1 recorded trace, got %d", summary.FinalStats.Total)
	}
	if summary.FinalStats.Rejected != 1 {
		t.Errorf("expected a rejected trace, got %+v", summary.FinalStats)
	}
	if summary.FinalVacuum.Resistance <= 0 {
		t.Error("a rejected outcome should raise resistance")
	}
}

// 4. Seed traces prime the history before any round runs.
func TestReplay_SeedTraces(t *testing.T) {
	f := singleRoundFixture()
	f.SeedTraces = []FixtureTrace{
		{Text: "earlier accepted reading", Accepted: true},
		{Text: "earlier rejected reading", Accepted: false},
	}

	_, summary, err := Replay(f)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if summary.FinalStats.Total != 2 {
		t.Fatalf("expected 2 seeded traces, got %d", summary.FinalStats.Total)
	}
}

// 5. An empty candidate list surfaces the engine's hard failure.
func TestReplay_EmptyRound(t *testing.T) {
	f := &Fixture{
		Rounds: []FixtureRound{{RoundID: "r1"}},
	}
	_, _, err := Replay(f)
	if !errors.Is(err, selector.ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

// 6. Deterministic: replaying the same fixture twice gives identical results.
func TestReplay_Deterministic(t *testing.T) {
	fixture := &Fixture{
		SeedTraces: []FixtureTrace{{Text: "a prior reading about patience", Accepted: true}},
		Rounds: []FixtureRound{
			{
				RoundID: "r1",
				Candidates: []FixtureCandidate{
					{ID: "a", Text: "Change is coming soon.", Resonance: 0.6},
					{ID: "b", Text: "Stay the course for now.", Resonance: 0.6},
				},
			},
		},
	}

	first, _, err := Replay(fixture)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	second, _, err := Replay(fixture)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if first[0].ActualWinner != second[0].ActualWinner || first[0].Score != second[0].Score {
		t.Errorf("replay not deterministic: %+v vs %+v", first[0], second[0])
	}
}
