package patterns

import (
	"sort"
	"strings"

	"github.com/arcanastate/engine-go/internal/complexity"
)

// #region types

// Significance scores one recurring pattern by the K×f rule.
type Significance struct {
	Pattern    string  `json:"pattern"`
	Frequency  int     `json:"frequency"`
	Complexity float64 `json:"complexity"` // estimated bits
	Score      float64 `json:"score"`      // complexity × frequency
}

// Config bounds pattern extraction.
type Config struct {
	// MinWords and MaxWords bound the n-gram window, in tokens.
	MinWords int `yaml:"min_words"`
	MaxWords int `yaml:"max_words"`
	// MinScore prunes patterns below this significance floor.
	MinScore float64 `yaml:"min_score"`
	// MaxPatterns caps the returned list. 0 = no cap.
	MaxPatterns int `yaml:"max_patterns"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinWords:    2,
		MaxWords:    4,
		MinScore:    32,
		MaxPatterns: 50,
	}
}

// #endregion types

// #region score

// Score applies the K×f rule: a rare complex phrase and a frequent simple
// phrase can both register, and significance grows multiplicatively with
// either factor.
func Score(pattern string, frequency int) Significance {
	if frequency < 0 {
		frequency = 0
	}
	k := complexity.Estimate(pattern)
	return Significance{
		Pattern:    pattern,
		Frequency:  frequency,
		Complexity: k,
		Score:      k * float64(frequency),
	}
}

// #endregion score

// #region extract

// Extract enumerates contiguous word n-grams across texts, counts total
// occurrences, and returns the patterns seen at least minFrequency times,
// scored by K×f, pruned below the significance floor, sorted descending.
func Extract(texts []string, minFrequency int, config Config) []Significance {
	if minFrequency < 1 {
		minFrequency = 1
	}
	if config.MinWords < 1 {
		config.MinWords = 1
	}
	if config.MaxWords < config.MinWords {
		config.MaxWords = config.MinWords
	}

	counts := make(map[string]int)
	for _, text := range texts {
		tokens := tokenizeOrdered(text)
		for n := config.MinWords; n <= config.MaxWords; n++ {
			for i := 0; i+n <= len(tokens); i++ {
				window := tokens[i : i+n]
				if allStopwords(window) {
					continue
				}
				counts[strings.Join(window, " ")]++
			}
		}
	}

	var out []Significance
	for pattern, freq := range counts {
		if freq < minFrequency {
			continue
		}
		sig := Score(pattern, freq)
		if sig.Score < config.MinScore {
			continue
		}
		out = append(out, sig)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Pattern < out[j].Pattern
	})

	if config.MaxPatterns > 0 && len(out) > config.MaxPatterns {
		out = out[:config.MaxPatterns]
	}
	return out
}

// #endregion extract
