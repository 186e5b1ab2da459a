package replay

import (
	"encoding/json"
	"fmt"

	"github.com/arcanastate/engine-go/internal/logging"
	"github.com/arcanastate/engine-go/internal/selector"
	"github.com/arcanastate/engine-go/internal/store"
)

// #region persist

// Persist writes a completed replay into a snapshot store: one snapshot of
// the final engine state (chained to the current active snapshot, if any)
// plus one provenance row per round. The rows round-trip through
// RoundsFromRecords, so a persisted replay can itself be replayed from the
// database.
func Persist(st *store.Store, fixture *Fixture, results []RoundResult, engine *selector.Engine) (store.Snapshot, error) {
	if len(results) != len(fixture.Rounds) {
		return store.Snapshot{}, fmt.Errorf("results/rounds mismatch: %d vs %d", len(results), len(fixture.Rounds))
	}

	blob, err := engine.ExportState()
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("export state: %w", err)
	}
	statsJSON, err := json.Marshal(engine.Statistics())
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("marshal stats: %w", err)
	}

	parentID := ""
	if current, err := st.Current(); err == nil {
		parentID = current.VersionID
	}

	snap, err := st.SaveSnapshot(parentID, blob, string(statsJSON))
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}

	for i, round := range fixture.Rounds {
		record := recordFromRound(round, results[i])
		recordJSON, err := json.Marshal(record)
		if err != nil {
			return snap, fmt.Errorf("marshal record %s: %w", round.RoundID, err)
		}

		entry := logging.SelectionEntry{
			VersionID:        snap.VersionID,
			RoundID:          round.RoundID,
			Method:           "solomonoff_casimir",
			WinnerID:         results[i].ActualWinner,
			WinnerText:       winnerText(round, results[i].ActualWinner),
			Score:            results[i].Score,
			VacuumAdjustment: results[i].VacuumAdjustment,
			CandidatesJSON:   string(recordJSON),
		}
		if err := logging.LogSelection(st.DB(), entry); err != nil {
			return snap, fmt.Errorf("log round %s: %w", round.RoundID, err)
		}
	}

	return snap, nil
}

func recordFromRound(round FixtureRound, result RoundResult) logging.SelectionRecord {
	digests := make([]logging.CandidateDigest, len(round.Candidates))
	for i, c := range round.Candidates {
		digests[i] = logging.CandidateDigest{
			ID:        c.ID,
			Text:      c.Text,
			Resonance: c.Resonance,
		}
	}
	return logging.SelectionRecord{
		RoundID:          round.RoundID,
		Candidates:       digests,
		WinnerID:         result.ActualWinner,
		WinnerScore:      result.Score,
		VacuumAdjustment: result.VacuumAdjustment,
		ZeroPoint:        result.ZeroPoint,
		TraceCount:       result.TraceCount,
		RecordOutcome:    round.RecordOutcome,
		AcceptWinner:     round.AcceptWinner,
	}
}

func winnerText(round FixtureRound, winnerID string) string {
	for _, c := range round.Candidates {
		if c.ID == winnerID {
			return c.Text
		}
	}
	return ""
}

// #endregion persist
