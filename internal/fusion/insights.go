package fusion

import (
	"fmt"
	"strings"
)

// #region pattern-insights

// patternInsights renders the cross-session patterns into human-readable
// strings. Returns an empty list when no analysis was supplied.
func patternInsights(cs *CrossSessionAnalysis) []string {
	if cs == nil {
		return []string{}
	}
	insights := make([]string, 0, len(cs.Patterns)+len(cs.Insights))
	for _, p := range cs.Patterns {
		if p.Interpretation == "" {
			continue
		}
		insights = append(insights, fmt.Sprintf("%s pattern (seen %dx): %s",
			humanizeTag(p.Type), p.Frequency, p.Interpretation))
	}
	insights = append(insights, cs.Insights...)
	return insights
}

// #endregion pattern-insights

// #region shadow-work

// shadowWork collects shadow-work suggestions from the cross-session
// analysis, including patterns the analyzer tagged as shadow themes.
func shadowWork(cs *CrossSessionAnalysis) []string {
	if cs == nil {
		return []string{}
	}
	work := make([]string, 0, len(cs.ShadowWork))
	work = append(work, cs.ShadowWork...)
	for _, p := range cs.Patterns {
		if strings.Contains(strings.ToLower(p.Type), "shadow") && p.Interpretation != "" {
			work = append(work, fmt.Sprintf("Recurring shadow theme: %s", p.Interpretation))
		}
	}
	return work
}

// #endregion shadow-work

// #region growth

// growthIndicators renders the journal analysis growth signals. High-confidence
// longitudinal patterns count as growth evidence alongside the analyzer's own
// indicator strings.
func growthIndicators(j *JournalAnalysis) []string {
	if j == nil {
		return []string{}
	}
	indicators := make([]string, 0, len(j.GrowthIndicators))
	indicators = append(indicators, j.GrowthIndicators...)
	for _, lp := range j.Longitudinal {
		if lp.Confidence >= 0.7 && lp.Name != "" {
			indicators = append(indicators, fmt.Sprintf("Sustained trend across %d entries: %s",
				len(lp.EntryIDs), humanizeTag(lp.Name)))
		}
	}
	return indicators
}

// #endregion growth

// #region guidance

// guidance builds the personalized guidance list from the journal analysis:
// the summary first, then warnings reframed as gentle cautions.
func guidance(j *JournalAnalysis) []string {
	if j == nil {
		return []string{}
	}
	out := make([]string, 0, len(j.Warnings)+1)
	if j.Summary != "" {
		out = append(out, j.Summary)
	}
	for _, w := range j.Warnings {
		if w == "" {
			continue
		}
		out = append(out, fmt.Sprintf("Worth watching: %s", w))
	}
	return out
}

// #endregion guidance

// #region helpers

// humanizeTag turns an analyzer tag like "card_repetition" into readable text.
func humanizeTag(tag string) string {
	return strings.ReplaceAll(strings.TrimSpace(tag), "_", " ")
}

// #endregion helpers
