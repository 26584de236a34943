package emotion

// MoodInstruction returns a short behavior guideline for the companion mood level.
func MoodInstruction(level int) string {
	switch level {
	case 1:
		return "The user has been feeling very low. Be gentle, patient and brief; do not push for cheerfulness."
	case 2:
		return "The user has been feeling down. Be warm and supportive, and ask softly how you can help."
	case 4:
		return "The user has been in good spirits. Match their warmth with light, affectionate energy."
	case 5:
		return "The user has been feeling great. Celebrate with them and keep the tone bright and playful."
	default:
		return ""
	}
}
