package trace

import "time"

// #region trace

// Trace is one recorded interpretation outcome. Immutable once stored.
type Trace struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	Accepted   bool              `json:"accepted"`
	Complexity float64           `json:"complexity"` // estimated bits
	CreatedAt  time.Time         `json:"created_at"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// #endregion trace

// #region scored-trace

// ScoredTrace pairs a stored trace with its compression distance to a query.
type ScoredTrace struct {
	Trace    Trace
	Distance float64
}

// #endregion scored-trace

// #region statistics

// Statistics summarizes the store contents.
type Statistics struct {
	Total          int     `json:"total"`
	Accepted       int     `json:"accepted"`
	Rejected       int     `json:"rejected"`
	MeanComplexity float64 `json:"mean_complexity"`
}

// #endregion statistics

// #region store-config

// StoreConfig bounds what the store will consider during similarity search.
type StoreConfig struct {
	// MaxTextLen excludes overlong traces from similarity results. 0 = no cap.
	MaxTextLen int `yaml:"max_text_len"`
}

// DefaultStoreConfig returns sensible defaults.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{MaxTextLen: 4096}
}

// #endregion store-config
