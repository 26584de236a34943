package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/easeaico/virtual-companion/internal/config"
	"github.com/easeaico/virtual-companion/internal/types"
)

func validConfig() config.Config {
	cfg := config.Config{
		Provider:  "grok",
		XAIAPIKey: "xai-test",
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	var cfg config.Config
	cfg.ApplyDefaults()

	gt.Equal(t, cfg.Store, "memory")
	gt.Equal(t, cfg.Provider, "grok")
	gt.Equal(t, cfg.Model, "grok-4-fast")
	gt.Equal(t, cfg.UserID, "default")
	gt.Equal(t, cfg.HistoryWindow, 20)
	gt.Equal(t, cfg.LogLevel, "info")

	cfg = config.Config{Provider: " Gemini ", Model: "gemini-custom"}
	cfg.ApplyDefaults()
	gt.Equal(t, cfg.Provider, "gemini")
	gt.Equal(t, cfg.Model, "gemini-custom")
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	gt.NoError(t, cfg.Validate())

	cases := map[string]func(c *config.Config){
		"unknown provider":   func(c *config.Config) { c.Provider = "telepathy" },
		"missing key":        func(c *config.Config) { c.XAIAPIKey = "" },
		"wrong provider key": func(c *config.Config) { c.Provider = "openai"; c.Model = "gpt-4o-mini" },
		"postgres no dsn":    func(c *config.Config) { c.Store = "postgres" },
		"redis no addr":      func(c *config.Config) { c.Store = "redis" },
		"unknown store":      func(c *config.Config) { c.Store = "tape" },
		"temperature":        func(c *config.Config) { c.Temperature = 3 },
		"max tokens":         func(c *config.Config) { c.MaxTokens = -1 },
		"log level":          func(c *config.Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			gt.Error(t, cfg.Validate())
		})
	}
}

func TestValidateMissingKeyIsTyped(t *testing.T) {
	cfg := validConfig()
	cfg.XAIAPIKey = ""
	err := cfg.Validate()
	gt.True(t, errors.Is(err, config.ErrMissingAPIKey))
}

func TestAPIKeyFollowsProvider(t *testing.T) {
	cfg := config.Config{
		XAIAPIKey:        "x",
		OpenRouterAPIKey: "or",
		OpenAIAPIKey:     "oa",
		GoogleAPIKey:     "g",
	}
	for provider, want := range map[string]string{"grok": "x", "openrouter": "or", "openai": "oa", "gemini": "g"} {
		cfg.Provider = provider
		gt.Equal(t, cfg.APIKey(), want)
		gt.Equal(t, cfg.ClientConfig().APIKey, want)
	}
}

func TestStorageOptions(t *testing.T) {
	cfg := validConfig()
	cfg.Store = "redis"
	cfg.RedisAddr = "localhost:6379"
	cfg.RedisDB = 2
	cfg.UserID = "sam"

	opts := cfg.StorageOptions()
	gt.Equal(t, opts.Backend, "redis")
	gt.Equal(t, opts.RedisAddr, "localhost:6379")
	gt.Equal(t, opts.RedisDB, 2)
	gt.Equal(t, opts.UserID, "sam")
}

func TestLoadProfileDefault(t *testing.T) {
	p, err := config.LoadProfile("")
	gt.NoError(t, err)
	gt.Equal(t, p.Name, types.DefaultCompanionName)
	gt.Equal(t, p.Fallback(), types.DefaultFallbackMessage)
}

func TestLoadProfileFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nova.toml")
	data := `
name = "Nova"
personality = "bright, curious"
scenario = "late-night talks"
first_message = "Hey {{user}}, it's {{char}}."
example_dialogue = """
{{user}}: hi
{{char}}: hi yourself!
"""
`
	gt.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	p, err := config.LoadProfile(path)
	gt.NoError(t, err)
	gt.Equal(t, p.Name, "Nova")
	gt.Equal(t, p.Personality, "bright, curious")
	gt.Equal(t, p.FirstMessage, "Hey {{user}}, it's {{char}}.")
	gt.S(t, p.ExampleDialogue).Contains("{{char}}: hi yourself!")
	gt.Equal(t, p.FallbackMessage, types.DefaultFallbackMessage)
}

func TestParseProfileErrors(t *testing.T) {
	_, err := config.ParseProfile([]byte(`name = `))
	gt.True(t, errors.Is(err, config.ErrInvalidProfile))

	_, err = config.ParseProfile([]byte(`mood = "sunny"`))
	gt.True(t, errors.Is(err, config.ErrInvalidProfile))

	long := `personality = "` + strings.Repeat("a", 5000) + `"`
	_, err = config.ParseProfile([]byte(long))
	gt.True(t, errors.Is(err, config.ErrInvalidProfile))

	_, err = config.LoadProfile(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err)
}

func TestParseProfileFillsBlankFields(t *testing.T) {
	p, err := config.ParseProfile([]byte(`scenario = "a rainy afternoon"`))
	gt.NoError(t, err)
	gt.Equal(t, p.Name, types.DefaultCompanionName)
	gt.Equal(t, p.Personality, types.DefaultProfile().Personality)
	gt.Equal(t, p.Scenario, "a rainy afternoon")
}
