package selector

import (
	"errors"
	"sort"

	"github.com/arcanastate/engine-go/internal/complexity"
)

// #region errors

// ErrNoCandidates is returned when selection is asked to choose from an
// empty candidate list — the one hard failure in the selection path.
var ErrNoCandidates = errors.New("no candidates to select from")

// #endregion errors

// #region select

// Select scores every candidate and returns the best plus ranked
// alternatives. Scoring:
//
//	score = resonance × prior × (1 − redundancy) − vacuumAdjustment
//
// where prior favors simpler text, redundancy penalizes similarity to the
// accepted history, and the vacuum adjustment is a uniform penalty derived
// from the zero-point energy. Ties break toward lower complexity. Performs
// no mutation; recording the outcome is the caller's separate decision via
// AddTrace.
func (e *Engine) Select(candidates []Candidate, opts *Options) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrNoCandidates
	}

	var o Options
	if opts != nil {
		o = *opts
	}
	neighbors := o.RedundancyNeighbors
	if neighbors <= 0 {
		neighbors = e.config.RedundancyNeighbors
	}

	zeroPoint := e.vacuum.ZeroPointEnergy()
	adjustment := e.config.VacuumWeight * zeroPoint
	if o.IgnoreVacuum {
		adjustment = 0
	}

	scored := make([]ScoredCandidate, len(candidates))
	for i, c := range candidates {
		k := complexity.Estimate(c.Text)
		prior := complexity.PriorFromBits(k, e.config.PriorScaleBits)
		redundancy := e.redundancy(c.Text, neighbors)
		resonance := clamp01(c.Resonance)

		scored[i] = ScoredCandidate{
			Candidate:  c,
			Score:      resonance*prior*(1-redundancy) - adjustment,
			Complexity: k,
			Prior:      prior,
			Redundancy: redundancy,
		}
	}

	// Descending score; equal scores fall back to simplicity, then ID for a
	// stable order.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Complexity != scored[j].Complexity {
			return scored[i].Complexity < scored[j].Complexity
		}
		return scored[i].ID < scored[j].ID
	})

	return Result{
		Winner:       scored[0],
		Alternatives: scored[1:],
		Provenance: Provenance{
			Method:           "solomonoff_casimir",
			VacuumAdjustment: adjustment,
			ZeroPoint:        zeroPoint,
			TraceCount:       e.traces.Len(),
		},
	}, nil
}

// #endregion select
