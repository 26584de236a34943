package emotion

const (
	// MinIntensity and MaxIntensity bound every intensity value.
	MinIntensity = 10.0
	MaxIntensity = 100.0
	// BaseIntensity is the resting intensity and the floor of decay and draft previews.
	BaseIntensity = 30.0

	// HeightenedThreshold is the normalized intensity above which palettes switch to
	// their heightened variant.
	HeightenedThreshold = 0.7
)

// ClampIntensity bounds intensity to 10-100.
func ClampIntensity(score float64) float64 {
	switch {
	case score < MinIntensity:
		return MinIntensity
	case score > MaxIntensity:
		return MaxIntensity
	default:
		return score
	}
}

// Normalize maps intensity onto [0.1, 1].
func Normalize(intensity float64) float64 {
	return ClampIntensity(intensity) / MaxIntensity
}

// DraftPreviewFactor damps the intensity of unsent text.
const DraftPreviewFactor = 0.6

// Preview returns the avatar intensity while the user is still typing text
// scored at draftIntensity.
func Preview(draftIntensity float64) float64 {
	return max(draftIntensity*DraftPreviewFactor, BaseIntensity)
}
