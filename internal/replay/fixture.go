package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arcanastate/engine-go/internal/logging"
	"github.com/arcanastate/engine-go/internal/selector"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: engine
// config, seed traces to prime the history, and recorded selection rounds.
type Fixture struct {
	Description string         `json:"description"`
	Config      FixtureConfig  `json:"config"`
	SeedTraces  []FixtureTrace `json:"seed_traces"`
	Rounds      []FixtureRound `json:"rounds"`
}

// FixtureTrace is one seed entry for the trace history.
type FixtureTrace struct {
	Text     string `json:"text"`
	Accepted bool   `json:"accepted"`
}

// FixtureCandidate mirrors selector.Candidate with JSON tags.
type FixtureCandidate struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Resonance float64 `json:"resonance"`
}

// FixtureRound is one recorded selection round with its expected outcome.
type FixtureRound struct {
	RoundID        string             `json:"round_id"`
	Candidates     []FixtureCandidate `json:"candidates"`
	ExpectedWinner string             `json:"expected_winner"`

	// Whether the original session recorded the winner back into the trace
	// history, and as what outcome. Replaying these keeps the vacuum state
	// evolving the same way it did live.
	RecordOutcome bool `json:"record_outcome"`
	AcceptWinner  bool `json:"accept_winner"`
}

// FixtureConfig mirrors the selection engine's scoring parameters with JSON
// tags. Zero values fall back to engine defaults.
type FixtureConfig struct {
	PriorScaleBits      float64 `json:"prior_scale_bits"`
	VacuumWeight        float64 `json:"vacuum_weight"`
	RedundancyNeighbors int     `json:"redundancy_neighbors"`
	MaxZeroPoint        float64 `json:"max_zero_point"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToSelectorConfig converts a FixtureConfig to a domain selector.Config,
// filling unset fields from the defaults.
func (fc *FixtureConfig) ToSelectorConfig() selector.Config {
	config := selector.DefaultConfig()
	if fc.PriorScaleBits > 0 {
		config.PriorScaleBits = fc.PriorScaleBits
	}
	if fc.VacuumWeight > 0 {
		config.VacuumWeight = fc.VacuumWeight
	}
	if fc.RedundancyNeighbors > 0 {
		config.RedundancyNeighbors = fc.RedundancyNeighbors
	}
	if fc.MaxZeroPoint > 0 {
		config.Vacuum.MaxZeroPoint = fc.MaxZeroPoint
	}
	return config
}

// ToCandidate converts a FixtureCandidate to a domain selector.Candidate.
func (fc FixtureCandidate) ToCandidate() selector.Candidate {
	return selector.Candidate{
		ID:        fc.ID,
		Text:      fc.Text,
		Resonance: fc.Resonance,
	}
}

// RoundsFromRecords rebuilds fixture rounds from provenance selection
// records, in the order given.
func RoundsFromRecords(records []logging.SelectionRecord) []FixtureRound {
	rounds := make([]FixtureRound, len(records))
	for i, rec := range records {
		candidates := make([]FixtureCandidate, len(rec.Candidates))
		for j, c := range rec.Candidates {
			candidates[j] = FixtureCandidate{
				ID:        c.ID,
				Text:      c.Text,
				Resonance: c.Resonance,
			}
		}
		rounds[i] = FixtureRound{
			RoundID:        rec.RoundID,
			Candidates:     candidates,
			ExpectedWinner: rec.WinnerID,
			RecordOutcome:  rec.RecordOutcome,
			AcceptWinner:   rec.AcceptWinner,
		}
	}
	return rounds
}

// #endregion fixture-loader
