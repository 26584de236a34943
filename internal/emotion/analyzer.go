package emotion

import (
	"math"
	"strings"
	"unicode"
)

const (
	analyzerBase          = 20.0
	perWordContribution   = 0.5
	maxLengthContribution = 20.0
	exclamationWeight     = 5.0
	questionWeight        = 3.0
	emphasisBonus         = 20.0
	emphasisRatio         = 0.3
)

// Analyzer scores the emotional intensity of text with lexical and structural heuristics.
type Analyzer struct{}

// NewAnalyzer returns an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze returns the intensity of text in [10,100]. Empty or whitespace-only text scores 10.
func (a *Analyzer) Analyze(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return MinIntensity
	}

	score := analyzerBase
	score += math.Min(float64(len(words))*perWordContribution, maxLengthContribution)

	for _, word := range words {
		score += tierWeight(word)
	}

	score += exclamationWeight * float64(strings.Count(text, "!"))
	score += questionWeight * float64(strings.Count(text, "?"))

	if upperRatio(text) > emphasisRatio {
		score += emphasisBonus
	}

	return ClampIntensity(score)
}

// upperRatio is the share of uppercase runes among all runes of text.
func upperRatio(text string) float64 {
	total, upper := 0, 0
	for _, r := range text {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(upper) / float64(total)
}
