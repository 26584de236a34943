// Package avatar maps companion mood, intensity and activity onto renderer parameters.
package avatar

import (
	"math"
	"time"

	"github.com/easeaico/virtual-companion/internal/emotion"
	"github.com/easeaico/virtual-companion/internal/types"
)

const (
	// BasePeriod is the pulse period at zero intensity.
	BasePeriod = 3000 * time.Millisecond
	// minPeriodRatio floors the pulse period at 30% of BasePeriod.
	minPeriodRatio = 0.3

	glowBaseAlpha  = 0.3
	glowAlphaRange = 0.4

	primaryScaleDivisor   = 1000.0
	secondaryScaleDivisor = 1200.0
)

// Map derives the visual state. It is pure: equal inputs give equal outputs.
// Mood outside 1-5 and intensity outside 10-100 are clamped first.
func Map(mood int, intensity float64, activity types.Activity) types.VisualState {
	mood = types.ClampMoodLevel(mood)
	intensity = emotion.ClampIntensity(intensity)

	p := selectPalette(mood, intensity, activity)
	return types.VisualState{
		Palette:   p.name,
		Primary:   p.primary,
		Secondary: p.secondary,
		Glow: types.RGBA{
			Color: glowColor,
			A:     glowAlpha(intensity),
		},
		AnimationPeriod: animationPeriod(intensity),
		PrimaryScale:    1 + intensity/primaryScaleDivisor,
		SecondaryScale:  1 + intensity/secondaryScaleDivisor,
	}
}

// selectPalette gives the busy state priority over affect.
func selectPalette(mood int, intensity float64, activity types.Activity) palette {
	if activity == types.ActivityThinking {
		return processingPalette
	}

	heightened := 0
	if IsHeightened(intensity) {
		heightened = 1
	}
	return palettes[moodBand(mood)][heightened]
}

// IsHeightened reports whether intensity selects the heightened palette variant.
func IsHeightened(intensity float64) bool {
	return emotion.Normalize(intensity) > emotion.HeightenedThreshold
}

func glowAlpha(intensity float64) float64 {
	return glowBaseAlpha + glowAlphaRange*emotion.Normalize(intensity)
}

func animationPeriod(intensity float64) time.Duration {
	ratio := math.Max(minPeriodRatio, 1-intensity/150)
	return time.Duration(math.Round(float64(BasePeriod) * ratio))
}
