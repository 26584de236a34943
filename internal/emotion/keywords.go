package emotion

import (
	"slices"
	"strings"
	"unicode"
)

type tier struct {
	name     string
	weight   float64
	keywords []string
	// exact words only count as whole tokens, so "so" does not match "also".
	exact []string
}

const (
	highTierWeight   = 15
	mediumTierWeight = 8
	lowTierWeight    = 3
)

// Tiers are checked in order; the first tier with a keyword contained in a word,
// or an exact word equal to it, wins.
var tiers = []tier{
	{
		name:   "high",
		weight: highTierWeight,
		keywords: []string{
			"love",
			"hate",
			"amazing",
			"incredible",
			"terrible",
			"awful",
			"horrible",
			"furious",
			"ecstatic",
			"thrilled",
			"devastated",
			"heartbroken",
			"desperate",
			"panic",
			"terrified",
			"excited",
			"never",
			"always",
		},
	},
	{
		name:   "medium",
		weight: mediumTierWeight,
		keywords: []string{
			"happy",
			"sad",
			"angry",
			"upset",
			"worried",
			"anxious",
			"scared",
			"lonely",
			"frustrated",
			"stressed",
			"nervous",
			"glad",
			"miss",
			"hurt",
		},
		exact: []string{
			"so",
			"very",
			"really",
		},
	},
	{
		name:   "low",
		weight: lowTierWeight,
		keywords: []string{
			"fine",
			"okay",
			"good",
			"bad",
			"tired",
			"calm",
			"bored",
			"meh",
			"alright",
			"nice",
		},
	},
}

// tierWeight returns the weight of the first tier matching word, or 0.
func tierWeight(word string) float64 {
	lowered := strings.ToLower(word)
	bare := strings.TrimFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, t := range tiers {
		if containsAny(lowered, t.keywords) || slices.Contains(t.exact, bare) {
			return t.weight
		}
	}
	return 0
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
