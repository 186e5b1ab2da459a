package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arcanastate/engine-go/internal/logging"
)

// #region fixture-tests

// TestFixture_SelectionRounds loads the recorded-session fixture, runs
// Replay(), and compares each round's winner against the expected winner.
// This is the primary regression test — if scoring parameters change, this
// catches drift.
func TestFixture_SelectionRounds(t *testing.T) {
	fixturePath := filepath.Join("testdata", "selection_rounds.json")
	f, err := LoadFixture(fixturePath)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	results, summary, err := Replay(f)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	if len(results) != len(f.Rounds) {
		t.Fatalf("expected %d results, got %d", len(f.Rounds), len(results))
	}

	for i, result := range results {
		if result.RoundID != f.Rounds[i].RoundID {
			t.Errorf("round %d: expected round_id=%s, got %s", i, f.Rounds[i].RoundID, result.RoundID)
		}
		if !result.Match {
			t.Errorf("round %d (%s): expected winner=%s, got winner=%s (score %.4f)",
				i, result.RoundID, result.ExpectedWinner, result.ActualWinner, result.Score)
		}
	}

	if summary.Divergences != 0 {
		t.Errorf("expected 0 divergences, got %d", summary.Divergences)
	}
	// 2 seed traces + 2 recorded rounds (r3 does not record)
	if summary.FinalStats.Total != 4 {
		t.Errorf("expected 4 traces after replay, got %d", summary.FinalStats.Total)
	}
	if summary.FinalVacuum.Resistance <= 0 {
		t.Error("a rejected round should leave resistance pressure behind")
	}
}

func TestLoadFixtureMissing(t *testing.T) {
	if _, err := LoadFixture(filepath.Join("testdata", "does_not_exist.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestLoadFixtureMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected error for malformed fixture")
	}
}

func TestToSelectorConfigDefaults(t *testing.T) {
	var fc FixtureConfig
	config := fc.ToSelectorConfig()
	if config.PriorScaleBits != 128 {
		t.Errorf("expected default prior scale, got %f", config.PriorScaleBits)
	}
	if config.Vacuum.MaxZeroPoint != 0.5 {
		t.Errorf("expected default max zero point, got %f", config.Vacuum.MaxZeroPoint)
	}
}

func TestToSelectorConfigOverrides(t *testing.T) {
	fc := FixtureConfig{PriorScaleBits: 64, VacuumWeight: 2.0, RedundancyNeighbors: 3, MaxZeroPoint: 0.25}
	config := fc.ToSelectorConfig()
	if config.PriorScaleBits != 64 || config.VacuumWeight != 2.0 ||
		config.RedundancyNeighbors != 3 || config.Vacuum.MaxZeroPoint != 0.25 {
		t.Errorf("overrides not applied: %+v", config)
	}
}

func TestRoundsFromRecords(t *testing.T) {
	records := []logging.SelectionRecord{
		{
			RoundID: "r1",
			Candidates: []logging.CandidateDigest{
				{ID: "a", Text: "first", Resonance: 0.5},
				{ID: "b", Text: "second", Resonance: 0.9},
			},
			WinnerID:      "b",
			RecordOutcome: true,
			AcceptWinner:  true,
		},
	}

	rounds := RoundsFromRecords(records)
	if len(rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(rounds))
	}
	r := rounds[0]
	if r.RoundID != "r1" || r.ExpectedWinner != "b" || !r.RecordOutcome || !r.AcceptWinner {
		t.Fatalf("round fields did not carry over: %+v", r)
	}
	if len(r.Candidates) != 2 || r.Candidates[1].Resonance != 0.9 {
		t.Fatalf("candidates did not carry over: %+v", r.Candidates)
	}
}

// #endregion fixture-tests
