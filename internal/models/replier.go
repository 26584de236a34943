package models

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/virtual-companion/internal/utils"
)

const (
	defaultTemperature = 0.8
	defaultMaxTokens   = 256

	replyRequest = "Write your next reply to the user now."
)

// Replier turns a model.LLM into a companion reply generator.
type Replier struct {
	llm         model.LLM
	temperature float32
	maxTokens   int32
}

// NewReplier wraps llm with the default sampling settings.
func NewReplier(llm model.LLM) *Replier {
	return &Replier{
		llm:         llm,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
}

// WithSampling overrides temperature and the output token limit. Zero values keep the defaults.
func (r *Replier) WithSampling(temperature float32, maxTokens int32) *Replier {
	if temperature > 0 {
		r.temperature = temperature
	}
	if maxTokens > 0 {
		r.maxTokens = maxTokens
	}
	return r
}

// Name returns the underlying model name.
func (r *Replier) Name() string {
	return r.llm.Name()
}

// GenerateReply sends promptContext as the system instruction and returns the
// normalized reply text.
func (r *Replier) GenerateReply(ctx context.Context, promptContext string) (string, error) {
	if strings.TrimSpace(promptContext) == "" {
		return "", goerr.New("prompt context is empty")
	}

	temperature := r.temperature
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(replyRequest, "user"),
		},
		Config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(promptContext, "system"),
			Temperature:       &temperature,
			MaxOutputTokens:   r.maxTokens,
		},
	}

	var sb strings.Builder
	for resp, err := range r.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return "", goerr.Wrap(err, "failed to generate reply", goerr.V("model", r.llm.Name()))
		}
		if resp == nil {
			continue
		}
		if resp.ErrorCode != "" {
			return "", goerr.New("model returned an error",
				goerr.V("model", r.llm.Name()),
				goerr.V("code", resp.ErrorCode),
				goerr.V("message", resp.ErrorMessage),
			)
		}
		sb.WriteString(utils.ExtractContentText(resp.Content))
	}

	return utils.NormalizeReply(sb.String())
}
