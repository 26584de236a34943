package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/easeaico/virtual-companion/internal/types"
)

// maxProfileFieldLen bounds each free-text persona field, in bytes.
const maxProfileFieldLen = 4000

// LoadProfile reads a persona from a TOML file. An empty path returns the
// built-in persona. Missing fields fall back to the built-in values.
func LoadProfile(path string) (*types.Profile, error) {
	if path == "" {
		return types.DefaultProfile(), nil
	}

	// #nosec G304 - path is provided by the CLI user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read profile", goerr.V("path", path))
	}

	profile, err := ParseProfile(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load profile", goerr.V("path", path))
	}
	return profile, nil
}

// ParseProfile decodes TOML persona data.
func ParseProfile(data []byte) (*types.Profile, error) {
	var profile types.Profile
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&profile); err != nil {
		return nil, goerr.Wrap(ErrInvalidProfile, "failed to parse TOML profile", goerr.V("cause", err.Error()))
	}

	applyProfileDefaults(&profile)
	if err := validateProfile(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func applyProfileDefaults(p *types.Profile) {
	defaults := types.DefaultProfile()
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = defaults.Name
	}
	if strings.TrimSpace(p.FallbackMessage) == "" {
		p.FallbackMessage = defaults.FallbackMessage
	}
	if p.Personality == "" && p.Description == "" && p.SystemPrompt == "" {
		p.Personality = defaults.Personality
	}
}

func validateProfile(p *types.Profile) error {
	fields := map[string]string{
		"name":             p.Name,
		"description":      p.Description,
		"personality":      p.Personality,
		"scenario":         p.Scenario,
		"first_message":    p.FirstMessage,
		"example_dialogue": p.ExampleDialogue,
		"system_prompt":    p.SystemPrompt,
		"fallback_message": p.FallbackMessage,
	}
	for name, value := range fields {
		if len(value) > maxProfileFieldLen {
			return goerr.Wrap(ErrInvalidProfile, "profile field is too long",
				goerr.V("field", name),
				goerr.V("length", len(value)),
				goerr.V("max", maxProfileFieldLen),
			)
		}
	}
	return nil
}
