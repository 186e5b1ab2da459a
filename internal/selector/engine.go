package selector

import (
	"github.com/arcanastate/engine-go/internal/patterns"
	"github.com/arcanastate/engine-go/internal/trace"
	"github.com/arcanastate/engine-go/internal/vacuum"
)

// #region engine

// Engine is the interpretation-selection engine: an append-only trace
// history, a vacuum tracker derived from it, and the scoring machinery on
// top. One instance per logical session; not safe for concurrent use.
type Engine struct {
	config   Config
	patterns patterns.Config
	traces   *trace.Store
	vacuum   *vacuum.Tracker
}

// NewEngine creates an engine with empty history.
func NewEngine(config Config, patternConfig patterns.Config) *Engine {
	return &Engine{
		config:   config,
		patterns: patternConfig,
		traces:   trace.NewStore(config.Trace),
		vacuum:   vacuum.NewTracker(config.Vacuum),
	}
}

// #endregion engine

// #region add-trace

// AddTrace records an interpretation outcome: it estimates complexity,
// appends to the trace history, and folds the outcome into the vacuum
// accumulators.
func (e *Engine) AddTrace(text string, accepted bool, metadata map[string]string) trace.Trace {
	t := e.traces.Add(text, accepted, metadata)
	e.vacuum.Observe(t.Complexity, accepted)
	return t
}

// #endregion add-trace

// #region read

// Traces returns a copy of the stored trace sequence in insertion order.
func (e *Engine) Traces() []trace.Trace {
	return e.traces.Traces()
}

// FindSimilarTraces returns up to k stored traces by ascending compression
// distance to text.
func (e *Engine) FindSimilarTraces(text string, k int) []trace.ScoredTrace {
	return e.traces.FindSimilar(text, k)
}

// VacuumState snapshots the current vacuum accumulators.
func (e *Engine) VacuumState() vacuum.State {
	return e.vacuum.State()
}

// Statistics summarizes the trace history.
func (e *Engine) Statistics() trace.Statistics {
	return e.traces.Stats()
}

// #endregion read

// #region redundancy

// Redundancy measures how similar text is to the accepted history, in [0, 1].
// It averages 1 − distance over the nearest accepted traces; no history
// means no redundancy.
func (e *Engine) Redundancy(text string) float64 {
	return e.redundancy(text, e.config.RedundancyNeighbors)
}

func (e *Engine) redundancy(text string, neighbors int) float64 {
	if neighbors <= 0 {
		neighbors = DefaultConfig().RedundancyNeighbors
	}
	similar := e.traces.FindSimilarAccepted(text, neighbors)
	if len(similar) == 0 {
		return 0
	}
	var sum float64
	for _, st := range similar {
		sum += clamp01(1 - st.Distance)
	}
	return clamp01(sum / float64(len(similar)))
}

// #endregion redundancy

// #region vacuum-ops

// ResetVacuum zeroes the vacuum accumulators without touching the trace
// sequence; similarity lookups keep working over the full history.
func (e *Engine) ResetVacuum() {
	e.vacuum.Reset()
}

// ClearTraces discards the trace history. Explicitly separate from
// ResetVacuum per the state ownership contract.
func (e *Engine) ClearTraces() {
	e.traces.Clear()
}

// #endregion vacuum-ops

// #region patterns

// PatternSignificance scores a single pattern at an observed frequency by
// the K×f rule.
func (e *Engine) PatternSignificance(pattern string, frequency int) patterns.Significance {
	return patterns.Score(pattern, frequency)
}

// SignificantPatterns mines the accepted trace texts for recurring
// sub-sequences seen at least minFrequency times, sorted by descending
// significance.
func (e *Engine) SignificantPatterns(minFrequency int) []patterns.Significance {
	var accepted []string
	for _, t := range e.traces.Traces() {
		if t.Accepted {
			accepted = append(accepted, t.Text)
		}
	}
	return patterns.Extract(accepted, minFrequency, e.patterns)
}

// #endregion patterns

// #region helpers

// clamp01 restricts v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
