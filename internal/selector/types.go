package selector

import (
	"github.com/arcanastate/engine-go/internal/trace"
	"github.com/arcanastate/engine-go/internal/vacuum"
)

// #region candidate

// Candidate is one generated interpretation offered for selection. Resonance
// is supplied by the caller's generator and is clamped to [0, 1] on use.
type Candidate struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Resonance float64 `json:"resonance"`
}

// #endregion candidate

// #region scored-candidate

// ScoredCandidate augments a candidate with its score breakdown.
type ScoredCandidate struct {
	Candidate
	Score      float64 `json:"score"`
	Complexity float64 `json:"complexity"`
	Prior      float64 `json:"prior"`
	Redundancy float64 `json:"redundancy"`
}

// #endregion scored-candidate

// #region provenance

// Provenance records how a selection was made.
type Provenance struct {
	Method           string  `json:"method"`
	VacuumAdjustment float64 `json:"vacuum_adjustment"`
	ZeroPoint        float64 `json:"zero_point"`
	TraceCount       int     `json:"trace_count"`
}

// #endregion provenance

// #region result

// Result is the winning candidate plus scored, descending alternatives.
type Result struct {
	Winner       ScoredCandidate   `json:"winner"`
	Alternatives []ScoredCandidate `json:"alternatives"`
	Provenance   Provenance        `json:"provenance"`
}

// #endregion result

// #region options

// Options tweaks a single selection call. The zero value uses engine config.
type Options struct {
	// IgnoreVacuum skips the zero-point adjustment for this call.
	IgnoreVacuum bool
	// RedundancyNeighbors overrides the configured neighbor count when > 0.
	RedundancyNeighbors int
}

// #endregion options

// #region config

// Config holds the scoring parameters for a selection engine.
type Config struct {
	// PriorScaleBits normalizes the Solomonoff prior.
	PriorScaleBits float64 `yaml:"prior_scale_bits"`
	// VacuumWeight scales the zero-point energy into the subtracted penalty.
	VacuumWeight float64 `yaml:"vacuum_weight"`
	// RedundancyNeighbors is how many similar accepted traces feed the
	// redundancy penalty.
	RedundancyNeighbors int `yaml:"redundancy_neighbors"`

	Trace  trace.StoreConfig `yaml:"trace"`
	Vacuum vacuum.Config     `yaml:"vacuum"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PriorScaleBits:      128,
		VacuumWeight:        1.0,
		RedundancyNeighbors: 5,
		Trace:               trace.DefaultStoreConfig(),
		Vacuum:              vacuum.DefaultConfig(),
	}
}

// #endregion config
