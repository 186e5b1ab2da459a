package fusion

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

func threeCardReading() ReadingContext {
	return ReadingContext{
		Cards: []CardDraw{
			{Index: 0, Name: "The Fool", Position: "past"},
			{Index: 13, Name: "Death", Reversed: true, Position: "present"},
			{Index: 17, Name: "The Star", Position: "future"},
		},
		Spread: "three_card",
	}
}

func richUserContext() UserContext {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	return UserContext{
		MBTIType:      "INFJ",
		ZodiacSign:    "gemini",
		ChineseZodiac: "horse",
		Birthdate:     &birth,
		History: []ReadingRecord{
			{Timestamp: birth.AddDate(33, 0, 0), Spread: "three_card", CardNames: []string{"The Fool"}},
			{Timestamp: birth.AddDate(33, 0, 7), Spread: "celtic_cross", CardNames: []string{"The Tower"}},
			{Timestamp: birth.AddDate(33, 0, 14), Spread: "three_card", CardNames: []string{"The Star"}},
		},
		Preferences: &Preferences{FavoriteSpread: "three_card", Tone: "gentle"},
		CrossSession: &CrossSessionAnalysis{
			Patterns: []SessionPattern{
				{Type: "card_repetition", CardIndices: []int{13}, Significance: 0.8, Frequency: 4, Interpretation: "Death keeps returning to your readings"},
				{Type: "shadow_avoidance", Significance: 0.6, Frequency: 2, Interpretation: "questions about endings go unasked"},
			},
			Insights:     []string{"Your readings cluster around transitions"},
			ShadowWork:   []string{"Sit with the discomfort of endings"},
			SessionCount: 6,
			TimeSpanDays: 42,
		},
		Journal: &JournalAnalysis{
			Correlations: []EntryCorrelation{
				{EntryID: "e1", ThemeAlignment: 0.7, MoodDelta: 0.2},
				{EntryID: "e2", ThemeAlignment: 0.5, MoodDelta: -0.1},
			},
			Longitudinal: []LongitudinalPattern{
				{Name: "rising_acceptance", Confidence: 0.85, EntryIDs: []string{"e1", "e2"}},
				{Name: "weak_signal", Confidence: 0.3},
			},
			GrowthIndicators: []string{"More reflective language over time"},
			Warnings:         []string{"Mood dips after tower readings"},
			Summary:          "Your journaling shows steady movement toward acceptance.",
		},
	}
}

func TestFuseWeightsSumToOne(t *testing.T) {
	e := NewEngine(DefaultConfig())
	inputs := []Input{
		{},
		{Query: "what does this mean", Reading: threeCardReading()},
		{Query: "will change come", Reading: threeCardReading(), User: richUserContext(),
			Traits: map[string]float64{"openness": 0.8, "neuroticism": 0.4}},
	}
	for i, input := range inputs {
		result := e.Fuse(input)
		var sum float64
		for _, d := range DomainOrder {
			sum += result.Weights[d]
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("input %d: weights sum %.9f, want 1.0", i, sum)
		}
		for _, d := range DomainOrder {
			if result.Weights[d] <= 0 {
				t.Errorf("input %d: weight for %s not positive: %f", i, d, result.Weights[d])
			}
		}
	}
}

func TestFusePositionBounds(t *testing.T) {
	e := NewEngine(DefaultConfig())
	result := e.Fuse(Input{Reading: threeCardReading(), User: richUserContext()})
	for i, coord := range result.Position {
		if coord < 0 || coord > 1 {
			t.Errorf("position coordinate %d out of [0,1]: %f", i, coord)
		}
	}
	for i, v := range result.Vector {
		if v < 0 || v > 1 {
			t.Errorf("fused vector element %d out of [0,1]: %f", i, v)
		}
	}
}

func TestFuseDeterministic(t *testing.T) {
	e := NewEngine(DefaultConfig())
	input := Input{
		Query:   "what am i not seeing",
		Reading: threeCardReading(),
		User:    richUserContext(),
		Traits:  map[string]float64{"openness": 0.9},
	}
	first := e.Fuse(input)
	second := e.Fuse(input)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must produce identical results")
	}
}

func TestFuseMinimalInput(t *testing.T) {
	e := NewEngine(DefaultConfig())
	result := e.Fuse(Input{Reading: threeCardReading()})

	if result.Confidence >= 0.8 {
		t.Errorf("minimal input confidence %f, want < 0.8", result.Confidence)
	}
	if len(result.PatternInsights) != 0 {
		t.Errorf("no cross-session data, want empty pattern insights, got %v", result.PatternInsights)
	}
	if len(result.ShadowWork) != 0 {
		t.Errorf("no cross-session data, want empty shadow work, got %v", result.ShadowWork)
	}
	if len(result.GrowthIndicators) != 0 {
		t.Errorf("no journal data, want empty growth indicators, got %v", result.GrowthIndicators)
	}
	if len(result.Guidance) != 0 {
		t.Errorf("no journal data, want empty guidance, got %v", result.Guidance)
	}
}

func TestFuseRichInput(t *testing.T) {
	e := NewEngine(DefaultConfig())
	result := e.Fuse(Input{
		Query:   "where is this heading",
		Reading: threeCardReading(),
		User:    richUserContext(),
		Traits: map[string]float64{
			"openness": 0.8, "conscientiousness": 0.6, "extraversion": 0.3,
			"agreeableness": 0.7, "neuroticism": 0.4,
		},
	})

	if result.Confidence <= 0.5 {
		t.Errorf("rich input confidence %f, want > 0.5", result.Confidence)
	}
	if len(result.PatternInsights) == 0 {
		t.Error("cross-session data present, want non-empty pattern insights")
	}
	if len(result.ShadowWork) == 0 {
		t.Error("cross-session data present, want non-empty shadow work")
	}
	if len(result.GrowthIndicators) == 0 {
		t.Error("journal data present, want non-empty growth indicators")
	}
	if len(result.Guidance) == 0 {
		t.Error("journal data present, want non-empty guidance")
	}
}

func TestFuseDominantTieBreak(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// Empty input: every domain sits at the baseline, so the tie resolves to
	// the first entry of the fixed order.
	result := e.Fuse(Input{})
	if result.Dominant != DomainTarot {
		t.Errorf("all-baseline tie should resolve to tarot, got %s", result.Dominant)
	}
}

func TestFuseDominantTracksEvidence(t *testing.T) {
	e := NewEngine(DefaultConfig())
	result := e.Fuse(Input{Reading: ReadingContext{
		Cards:     threeCardReading().Cards,
		Spread:    "three_card",
		Intention: "clarity on a decision",
	}})
	if result.Dominant != DomainTarot {
		t.Errorf("a card-only input should be tarot-dominant, got %s", result.Dominant)
	}

	journalOnly := e.Fuse(Input{User: UserContext{Journal: &JournalAnalysis{
		Correlations: []EntryCorrelation{{EntryID: "e1"}, {EntryID: "e2"}, {EntryID: "e3"}},
	}}})
	if journalOnly.Dominant != DomainJournalCorrelation {
		t.Errorf("a journal-only input should be journal-dominant, got %s", journalOnly.Dominant)
	}
}

func TestFuseConfidenceGrowsWithEvidence(t *testing.T) {
	e := NewEngine(DefaultConfig())
	minimal := e.Fuse(Input{Reading: threeCardReading()})
	rich := e.Fuse(Input{Reading: threeCardReading(), User: richUserContext()})
	if rich.Confidence <= minimal.Confidence {
		t.Errorf("more evidence must raise confidence: %f vs %f",
			rich.Confidence, minimal.Confidence)
	}
}

func TestFuseProvenanceMentionsSources(t *testing.T) {
	e := NewEngine(DefaultConfig())
	result := e.Fuse(Input{Reading: threeCardReading(), User: richUserContext()})
	for _, want := range []string{"cards=3", "mbti", "history=3", "cross_session", "journal"} {
		if !strings.Contains(result.Provenance, want) {
			t.Errorf("provenance %q missing %q", result.Provenance, want)
		}
	}
}

func TestShadowWorkIncludesTaggedPatterns(t *testing.T) {
	work := shadowWork(&CrossSessionAnalysis{
		Patterns: []SessionPattern{
			{Type: "shadow_avoidance", Interpretation: "questions about endings go unasked"},
			{Type: "card_repetition", Interpretation: "same card again"},
		},
	})
	if len(work) != 1 {
		t.Fatalf("want 1 shadow item, got %d: %v", len(work), work)
	}
}

func TestGrowthIndicatorsConfidenceFloor(t *testing.T) {
	indicators := growthIndicators(&JournalAnalysis{
		Longitudinal: []LongitudinalPattern{
			{Name: "strong_trend", Confidence: 0.9, EntryIDs: []string{"a", "b"}},
			{Name: "noise", Confidence: 0.2},
		},
	})
	if len(indicators) != 1 {
		t.Fatalf("only high-confidence trends should register, got %v", indicators)
	}
}
