package fusion

import (
	"fmt"
	"strings"
)

// #region engine

// Engine fuses the eight personalization domains into one normalized
// semantic representation. Stateless and deterministic: identical inputs
// produce identical results.
type Engine struct {
	config Config
}

// NewEngine creates a fusion engine.
func NewEngine(config Config) *Engine {
	if config.BaselineWeight <= 0 {
		config.BaselineWeight = DefaultConfig().BaselineWeight
	}
	return &Engine{config: config}
}

// #endregion engine

// #region fuse

// Fuse combines the reading, user context and traits into a FusionResult.
// Missing optional fields never fail; they lower the evidence for their
// domain and the overall confidence.
func (e *Engine) Fuse(input Input) Result {
	weights := e.domainWeights(input)

	var vector [VectorDim]float64
	for _, d := range DomainOrder {
		basis := domainBasis[d]
		w := weights[d]
		for i := 0; i < VectorDim; i++ {
			vector[i] += w * basis[i]
		}
	}
	for i := range vector {
		vector[i] = clamp01(vector[i])
	}

	var position [3]float64
	for axis, domains := range positionAxes {
		var sum float64
		for _, d := range domains {
			sum += weights[d]
		}
		position[axis] = clamp01(sum)
	}

	dominant := DomainOrder[0]
	for _, d := range DomainOrder[1:] {
		if weights[d] > weights[dominant] {
			dominant = d
		}
	}

	return Result{
		Vector:           vector,
		Weights:          weights,
		Position:         position,
		Dominant:         dominant,
		Confidence:       e.confidence(input),
		PatternInsights:  patternInsights(input.User.CrossSession),
		ShadowWork:       shadowWork(input.User.CrossSession),
		GrowthIndicators: growthIndicators(input.User.Journal),
		Guidance:         guidance(input.User.Journal),
		Provenance:       e.provenance(input, dominant),
	}
}

// #endregion fuse

// #region weights

// domainWeights computes the normalized weight distribution. Each domain
// starts from the baseline floor and gains evidence from whatever input
// fields support it; the eight weights are then normalized to sum to 1.
func (e *Engine) domainWeights(input Input) map[Domain]float64 {
	raw := map[Domain]float64{
		DomainTarot:              e.config.BaselineWeight + tarotEvidence(input.Reading),
		DomainPsychology:         e.config.BaselineWeight + psychologyEvidence(input.User, input.Traits),
		DomainNeuroscience:       e.config.BaselineWeight + neuroscienceEvidence(input.Traits),
		DomainLinguistics:        e.config.BaselineWeight + linguisticsEvidence(input.Query, input.Reading),
		DomainSanskrit:           e.config.BaselineWeight + sanskritEvidence(input.User),
		DomainUserHistory:        e.config.BaselineWeight + historyEvidence(input.User),
		DomainCrossSession:       e.config.BaselineWeight + crossSessionEvidence(input.User.CrossSession),
		DomainJournalCorrelation: e.config.BaselineWeight + journalEvidence(input.User.Journal),
	}

	var total float64
	for _, d := range DomainOrder {
		total += raw[d]
	}
	weights := make(map[Domain]float64, len(DomainOrder))
	for _, d := range DomainOrder {
		weights[d] = raw[d] / total
	}
	return weights
}

// tarotEvidence grows with the richness of the reading itself.
func tarotEvidence(reading ReadingContext) float64 {
	cards := len(reading.Cards)
	if cards > 3 {
		cards = 3
	}
	ev := 0.10 * float64(cards)
	if reading.Spread != "" {
		ev += 0.10
	}
	if reading.Intention != "" {
		ev += 0.10
	}
	return ev
}

// psychologyEvidence combines typing data with supplied trait values.
func psychologyEvidence(user UserContext, traits map[string]float64) float64 {
	var ev float64
	if user.MBTIType != "" {
		ev += 0.25
	}
	ev += 0.05 * float64(presentTraits(traits))
	return ev
}

// neuroscienceEvidence keys off how complete the trait profile is.
func neuroscienceEvidence(traits map[string]float64) float64 {
	return 0.04 * float64(presentTraits(traits))
}

// linguisticsEvidence grows with the query text and a stated intention.
func linguisticsEvidence(query string, reading ReadingContext) float64 {
	words := len(strings.Fields(query))
	if words > 20 {
		words = 20
	}
	ev := 0.015 * float64(words)
	if reading.Intention != "" {
		ev += 0.05
	}
	return ev
}

// sanskritEvidence keys off the symbolic metadata fields.
func sanskritEvidence(user UserContext) float64 {
	var ev float64
	if user.ZodiacSign != "" {
		ev += 0.12
	}
	if user.ChineseZodiac != "" {
		ev += 0.12
	}
	if user.Birthdate != nil {
		ev += 0.08
	}
	return ev
}

// historyEvidence grows with the reading log and a preference record.
func historyEvidence(user UserContext) float64 {
	n := len(user.History)
	if n > 10 {
		n = 10
	}
	ev := 0.03 * float64(n)
	if user.Preferences != nil {
		ev += 0.08
	}
	return ev
}

// crossSessionEvidence grows with how many sessions the analysis spans.
func crossSessionEvidence(cs *CrossSessionAnalysis) float64 {
	if cs == nil {
		return 0
	}
	sessions := cs.SessionCount
	if sessions > 10 {
		sessions = 10
	}
	return 0.20 + 0.02*float64(sessions)
}

// journalEvidence grows with the number of correlated entries.
func journalEvidence(j *JournalAnalysis) float64 {
	if j == nil {
		return 0
	}
	entries := len(j.Correlations)
	if entries > 5 {
		entries = 5
	}
	return 0.20 + 0.03*float64(entries)
}

// presentTraits counts how many of the five recognized trait keys are set.
func presentTraits(traits map[string]float64) int {
	var n int
	for _, k := range TraitKeys {
		if _, ok := traits[k]; ok {
			n++
		}
	}
	return n
}

// #endregion weights

// #region confidence

// confidence scores how much concrete evidence backed this fusion, in
// [0, 1]. Minimal input stays well below 0.8; a fully populated context
// lands above 0.5.
func (e *Engine) confidence(input Input) float64 {
	c := 0.30

	optional := []bool{
		input.User.MBTIType != "",
		input.User.ZodiacSign != "",
		input.User.ChineseZodiac != "",
		input.User.Birthdate != nil,
		input.User.Preferences != nil,
		input.Reading.Intention != "",
	}
	for _, present := range optional {
		if present {
			c += 0.06
		}
	}

	history := 0.015 * float64(len(input.User.History))
	if history > 0.12 {
		history = 0.12
	}
	c += history

	if input.User.CrossSession != nil {
		c += 0.08
	}
	if input.User.Journal != nil {
		c += 0.08
	}

	cards := len(input.Reading.Cards)
	if cards > 3 {
		cards = 3
	}
	c += 0.02 * float64(cards)

	return clamp01(c)
}

// #endregion confidence

// #region provenance

// provenance summarizes which signals fed the fusion, for humans.
func (e *Engine) provenance(input Input, dominant Domain) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("cards=%d", len(input.Reading.Cards)))
	if input.User.MBTIType != "" {
		parts = append(parts, "mbti")
	}
	if input.User.ZodiacSign != "" || input.User.ChineseZodiac != "" {
		parts = append(parts, "zodiac")
	}
	if n := len(input.User.History); n > 0 {
		parts = append(parts, fmt.Sprintf("history=%d", n))
	}
	if input.User.CrossSession != nil {
		parts = append(parts, "cross_session")
	}
	if input.User.Journal != nil {
		parts = append(parts, "journal")
	}
	return fmt.Sprintf("fused %d domains, dominant=%s, evidence: %s",
		len(DomainOrder), dominant, strings.Join(parts, " "))
}

// #endregion provenance

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
