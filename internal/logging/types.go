package logging

import "time"

// #region selection-entry
// SelectionEntry is a single row in the provenance_log table.
type SelectionEntry struct {
	VersionID        string
	RoundID          string
	Method           string
	WinnerID         string
	WinnerText       string
	Score            float64
	VacuumAdjustment float64
	CandidatesJSON   string
	Reason           string
	CreatedAt        time.Time
}
// #endregion selection-entry

// #region selection-record
// SelectionRecord captures the complete inputs and outcome of one selection
// round. Serialized as JSON into provenance_log.candidates_json for
// deterministic replay. Mirrors the selector types to avoid a package cycle.
type SelectionRecord struct {
	RoundID    string            `json:"round_id"`
	Candidates []CandidateDigest `json:"candidates"`

	// Selection output
	WinnerID         string  `json:"winner_id"`
	WinnerScore      float64 `json:"winner_score"`
	VacuumAdjustment float64 `json:"vacuum_adjustment"`
	ZeroPoint        float64 `json:"zero_point"`
	TraceCount       int     `json:"trace_count"`

	// Whether the caller recorded the outcome and how
	RecordOutcome bool `json:"record_outcome"`
	AcceptWinner  bool `json:"accept_winner"`
}

// CandidateDigest captures one candidate as it was scored at runtime.
type CandidateDigest struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Resonance float64 `json:"resonance"`
	Score     float64 `json:"score"`
}
// #endregion selection-record
