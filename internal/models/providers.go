package models

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// Provider names accepted by New.
const (
	ProviderGrok       = "grok"
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
)

const (
	grokBaseURL       = "https://api.x.ai/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderGrok, ProviderOpenRouter, ProviderOpenAI, ProviderGemini}
}

// New creates the chat model for provider.
func New(ctx context.Context, provider, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderGrok:
		return NewGrokModel(ctx, modelName, cfg)
	case ProviderOpenRouter:
		return NewOpenRouterModel(ctx, modelName, cfg)
	case ProviderOpenAI:
		return NewOpenAIModel(ctx, modelName, cfg)
	case ProviderGemini:
		return NewGeminiModel(ctx, modelName, cfg)
	default:
		return nil, goerr.New("unknown model provider",
			goerr.V("provider", provider),
			goerr.V("supported", Providers()),
		)
	}
}

// NewGrokModel creates a Grok model served through the x.ai OpenAI-compatible API
// (e.g. "grok-4-fast").
func NewGrokModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return newOpenAICompatible(modelName, cfg, grokBaseURL, "grok-go")
}

// NewOpenRouterModel creates a model routed through OpenRouter. modelName is
// the OpenRouter slug, e.g. "anthropic/claude-3.5-haiku".
func NewOpenRouterModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return newOpenAICompatible(modelName, cfg, openRouterBaseURL, "openrouter-go")
}

// NewOpenAIModel creates a model on the OpenAI API.
func NewOpenAIModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return newOpenAICompatible(modelName, cfg, "", "openai-go")
}

// NewGeminiModel creates a Gemini model through the adk gemini adapter.
func NewGeminiModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	if cfg == nil {
		return nil, goerr.New("config cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, goerr.New("API key is required", goerr.V("provider", ProviderGemini))
	}
	if modelName == "" {
		return nil, goerr.New("model name cannot be empty", goerr.V("provider", ProviderGemini))
	}

	llm, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: cfg.HTTPOptions,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gemini model", goerr.V("model", modelName))
	}
	return llm, nil
}
