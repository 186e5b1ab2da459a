package trace

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/arcanastate/engine-go/internal/complexity"
)

// #region store

// Store holds the append-only trace history. Not safe for concurrent use;
// each engine instance owns exactly one store.
type Store struct {
	config StoreConfig
	traces []Trace
}

// NewStore creates an empty store.
func NewStore(config StoreConfig) *Store {
	return &Store{config: config}
}

// #endregion store

// #region add

// Add computes the complexity estimate for text, appends a new trace, and
// returns it. Metadata is copied; the caller keeps ownership of its map.
func (s *Store) Add(text string, accepted bool, metadata map[string]string) Trace {
	var meta map[string]string
	if len(metadata) > 0 {
		meta = make(map[string]string, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}

	t := Trace{
		ID:         uuid.New().String(),
		Text:       text,
		Accepted:   accepted,
		Complexity: complexity.Estimate(text),
		CreatedAt:  time.Now().UTC(),
		Metadata:   meta,
	}
	s.traces = append(s.traces, t)
	return t
}

// #endregion add

// #region read

// Traces returns a copy of the stored sequence in insertion order.
func (s *Store) Traces() []Trace {
	out := make([]Trace, len(s.traces))
	copy(out, s.traces)
	return out
}

// Len returns the number of stored traces.
func (s *Store) Len() int {
	return len(s.traces)
}

// Stats aggregates acceptance counts and the mean complexity estimate.
func (s *Store) Stats() Statistics {
	stats := Statistics{Total: len(s.traces)}
	var sum float64
	for _, t := range s.traces {
		if t.Accepted {
			stats.Accepted++
		} else {
			stats.Rejected++
		}
		sum += t.Complexity
	}
	if stats.Total > 0 {
		stats.MeanComplexity = sum / float64(stats.Total)
	}
	return stats
}

// #endregion read

// #region find-similar

// FindSimilar returns up to k stored traces ordered by ascending compression
// distance to text.
func (s *Store) FindSimilar(text string, k int) []ScoredTrace {
	return s.findSimilar(text, k, false)
}

// FindSimilarAccepted is FindSimilar restricted to accepted traces.
func (s *Store) FindSimilarAccepted(text string, k int) []ScoredTrace {
	return s.findSimilar(text, k, true)
}

// findSimilar scores every eligible trace and keeps the k nearest.
// Eligibility mirrors retrieval gating: non-empty text, within the length
// cap, one entry per distinct text (nearest wins).
func (s *Store) findSimilar(text string, k int, acceptedOnly bool) []ScoredTrace {
	if k <= 0 || len(s.traces) == 0 {
		return nil
	}

	nearest := make(map[string]ScoredTrace)
	for _, t := range s.traces {
		if acceptedOnly && !t.Accepted {
			continue
		}
		if t.Text == "" {
			continue
		}
		if s.config.MaxTextLen > 0 && len(t.Text) > s.config.MaxTextLen {
			continue
		}
		d := complexity.Distance(text, t.Text)
		if prev, ok := nearest[t.Text]; ok && prev.Distance <= d {
			continue
		}
		nearest[t.Text] = ScoredTrace{Trace: t, Distance: d}
	}

	scored := make([]ScoredTrace, 0, len(nearest))
	for _, st := range nearest {
		scored = append(scored, st)
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Distance != scored[j].Distance {
			return scored[i].Distance < scored[j].Distance
		}
		return scored[i].Trace.ID < scored[j].Trace.ID
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// #endregion find-similar

// #region mutate

// Clear discards all stored traces. Distinct from a vacuum reset, which
// leaves the trace sequence intact.
func (s *Store) Clear() {
	s.traces = nil
}

// Restore replaces the stored sequence wholesale. Used by state import.
func (s *Store) Restore(traces []Trace) {
	s.traces = make([]Trace, len(traces))
	copy(s.traces, traces)
}

// #endregion mutate
