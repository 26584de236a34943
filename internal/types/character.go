package types

// Profile is the companion persona loaded from a profile file.
type Profile struct {
	Name         string `toml:"name" json:"name"`
	Description  string `toml:"description" json:"description"`
	Personality  string `toml:"personality" json:"personality"`
	Scenario     string `toml:"scenario" json:"scenario"`
	FirstMessage string `toml:"first_message" json:"first_message"`
	// ExampleDialogue may use the {{char}} and {{user}} placeholders.
	ExampleDialogue string `toml:"example_dialogue" json:"example_dialogue"`
	SystemPrompt    string `toml:"system_prompt" json:"system_prompt"`
	// FallbackMessage is appended when the reply call fails.
	FallbackMessage string `toml:"fallback_message" json:"fallback_message"`
}

const (
	// DefaultCompanionName is used when the profile leaves the name empty.
	DefaultCompanionName = "Aura"
	// DefaultFallbackMessage is the apology shown when no reply could be generated.
	DefaultFallbackMessage = "I'm sorry, I'm having trouble responding right now. Can we try again in a moment?"
)

// DefaultProfile returns the built-in persona.
func DefaultProfile() *Profile {
	return &Profile{
		Name:            DefaultCompanionName,
		Personality:     "warm, attentive, gently playful",
		Scenario:        "a quiet evening chat with someone you care about",
		FirstMessage:    "Hi, I'm {{char}}. How are you feeling today?",
		FallbackMessage: DefaultFallbackMessage,
	}
}

// Fallback returns the apology message, never empty.
func (p *Profile) Fallback() string {
	if p == nil || p.FallbackMessage == "" {
		return DefaultFallbackMessage
	}
	return p.FallbackMessage
}
