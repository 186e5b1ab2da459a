package vacuum

// #region config

// Config bounds the adaptive score floor.
type Config struct {
	// MaxZeroPoint caps the zero-point energy as rejection pressure grows.
	MaxZeroPoint float64 `yaml:"max_zero_point"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxZeroPoint: 0.5}
}

// #endregion config

// #region state

// State is the serializable accumulator snapshot.
type State struct {
	TraceCount int     `json:"trace_count"`
	Resistance float64 `json:"resistance"` // summed complexity of rejected traces
	Acceptance float64 `json:"acceptance"` // summed complexity of accepted traces
	ZeroPoint  float64 `json:"zero_point"` // derived; recomputed on restore
}

// #endregion state

// #region tracker

// Tracker accumulates accept/reject complexity mass and derives the
// zero-point energy floor. Not safe for concurrent use.
type Tracker struct {
	config     Config
	count      int
	resistance float64
	acceptance float64
}

// NewTracker creates a tracker with zeroed accumulators.
func NewTracker(config Config) *Tracker {
	return &Tracker{config: config}
}

// #endregion tracker

// #region observe

// Observe folds one trace outcome into the accumulators. Rejected traces
// raise resistance; accepted traces raise acceptance.
func (t *Tracker) Observe(complexityBits float64, accepted bool) {
	if complexityBits < 0 {
		complexityBits = 0
	}
	if accepted {
		t.acceptance += complexityBits
	} else {
		t.resistance += complexityBits
	}
	t.count++
}

// #endregion observe

// #region zero-point

// ZeroPointEnergy derives the current score floor:
//
//	zpe = MaxZeroPoint × R / (R + A + 1)
//
// Monotone in the resistance share, bounded by MaxZeroPoint, and zero while
// nothing has been rejected.
func (t *Tracker) ZeroPointEnergy() float64 {
	denom := t.resistance + t.acceptance + 1.0
	return t.config.MaxZeroPoint * t.resistance / denom
}

// #endregion zero-point

// #region snapshot

// State snapshots the accumulators, including the derived floor.
func (t *Tracker) State() State {
	return State{
		TraceCount: t.count,
		Resistance: t.resistance,
		Acceptance: t.acceptance,
		ZeroPoint:  t.ZeroPointEnergy(),
	}
}

// Restore replaces the accumulators from a snapshot. The stored ZeroPoint is
// ignored; it is always derived from the accumulators.
func (t *Tracker) Restore(s State) {
	t.count = s.TraceCount
	t.resistance = s.Resistance
	t.acceptance = s.Acceptance
	if t.count < 0 {
		t.count = 0
	}
	if t.resistance < 0 {
		t.resistance = 0
	}
	if t.acceptance < 0 {
		t.acceptance = 0
	}
}

// Reset zeroes both accumulators and the count. The trace sequence the
// observations came from is owned elsewhere and is untouched.
func (t *Tracker) Reset() {
	t.count = 0
	t.resistance = 0
	t.acceptance = 0
}

// #endregion snapshot
