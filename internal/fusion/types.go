package fusion

import "time"

// #region reading

// CardDraw describes one drawn card inside a reading.
type CardDraw struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Reversed bool   `json:"reversed"`
	Position string `json:"position"`
}

// ReadingContext is the current reading being interpreted.
type ReadingContext struct {
	Cards     []CardDraw `json:"cards"`
	Spread    string     `json:"spread"`
	Intention string     `json:"intention,omitempty"`
}

// ReadingRecord is one historical reading in the user's log.
type ReadingRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Spread    string    `json:"spread"`
	CardNames []string  `json:"card_names"`
}

// #endregion reading

// #region user-context

// Preferences is the user's stored preference record.
type Preferences struct {
	FavoriteSpread string   `json:"favorite_spread,omitempty"`
	Topics         []string `json:"topics,omitempty"`
	Tone           string   `json:"tone,omitempty"`
}

// UserContext aggregates everything known about the user. Every field is
// optional; absence lowers confidence rather than failing.
type UserContext struct {
	MBTIType      string                `json:"mbti_type,omitempty"`
	ZodiacSign    string                `json:"zodiac_sign,omitempty"`
	ChineseZodiac string                `json:"chinese_zodiac,omitempty"`
	Birthdate     *time.Time            `json:"birthdate,omitempty"`
	History       []ReadingRecord       `json:"history,omitempty"`
	Preferences   *Preferences          `json:"preferences,omitempty"`
	CrossSession  *CrossSessionAnalysis `json:"cross_session,omitempty"`
	Journal       *JournalAnalysis      `json:"journal,omitempty"`
}

// #endregion user-context

// #region collaborator-results

// SessionPattern is one recurring pattern found by the upstream
// cross-session analyzer.
type SessionPattern struct {
	Type           string  `json:"type"`
	CardIndices    []int   `json:"card_indices,omitempty"`
	Significance   float64 `json:"significance"`
	Frequency      int     `json:"frequency"`
	Interpretation string  `json:"interpretation"`
}

// CrossSessionAnalysis is the typed output of the cross-session pattern
// analyzer, consumed as-is.
type CrossSessionAnalysis struct {
	Patterns        []SessionPattern `json:"patterns"`
	Insights        []string         `json:"insights,omitempty"`
	ShadowWork      []string         `json:"shadow_work,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
	SessionCount    int              `json:"session_count"`
	TimeSpanDays    int              `json:"time_span_days"`
}

// EntryCorrelation links one journal entry to the reading themes.
type EntryCorrelation struct {
	EntryID        string  `json:"entry_id"`
	ThemeAlignment float64 `json:"theme_alignment"`
	MoodDelta      float64 `json:"mood_delta"`
}

// LongitudinalPattern is a trend the journal analyzer found across entries.
type LongitudinalPattern struct {
	Name       string   `json:"name"`
	Confidence float64  `json:"confidence"`
	EntryIDs   []string `json:"entry_ids,omitempty"`
}

// JournalAnalysis is the typed output of the journal-correlation analyzer,
// consumed as-is.
type JournalAnalysis struct {
	Correlations     []EntryCorrelation    `json:"correlations,omitempty"`
	Longitudinal     []LongitudinalPattern `json:"longitudinal,omitempty"`
	GrowthIndicators []string              `json:"growth_indicators,omitempty"`
	Warnings         []string              `json:"warnings,omitempty"`
	Summary          string                `json:"summary,omitempty"`
}

// #endregion collaborator-results

// #region input

// Input carries everything a fusion call operates on. Traits maps the five
// TraitKeys to values in [0, 1]; unknown keys are ignored.
type Input struct {
	Query   string             `json:"query"`
	Reading ReadingContext     `json:"reading"`
	User    UserContext        `json:"user"`
	Traits  map[string]float64 `json:"traits,omitempty"`
}

// #endregion input

// #region result

// Result is the normalized semantic representation produced by one fusion
// call.
type Result struct {
	Vector     [VectorDim]float64 `json:"vector"`
	Weights    map[Domain]float64 `json:"weights"`
	Position   [3]float64         `json:"position"`
	Dominant   Domain             `json:"dominant"`
	Confidence float64            `json:"confidence"`

	PatternInsights  []string `json:"pattern_insights"`
	ShadowWork       []string `json:"shadow_work"`
	GrowthIndicators []string `json:"growth_indicators"`
	Guidance         []string `json:"guidance"`

	Provenance string `json:"provenance"`
}

// #endregion result

// #region config

// Config holds the fusion parameters.
type Config struct {
	// BaselineWeight is the evidentiary floor every domain keeps even with no
	// supporting input, so normalization never divides by zero and absent
	// signals degrade instead of vanishing.
	BaselineWeight float64 `yaml:"baseline_weight"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{BaselineWeight: 0.05}
}

// #endregion config
