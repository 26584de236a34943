package models

import (
	"strings"

	"github.com/openai/openai-go/v3"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/virtual-companion/internal/utils"
)

// chatParams converts an adk request to chat completion parameters. The
// system instruction becomes the leading system message.
func chatParams(req *model.LLMRequest, modelName string) *openai.ChatCompletionNewParams {
	params := &openai.ChatCompletionNewParams{Model: modelName}
	if req.Model != "" {
		params.Model = req.Model
	}

	cfg := req.Config
	if cfg == nil {
		cfg = &genai.GenerateContentConfig{}
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if system := strings.TrimSpace(utils.ExtractContentText(cfg.SystemInstruction)); system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	params.Messages = append(messages, chatMessages(req.Contents)...)

	if cfg.Temperature != nil {
		params.Temperature = openai.Float(float64(*cfg.Temperature))
	}
	if cfg.TopP != nil {
		params.TopP = openai.Float(float64(*cfg.TopP))
	}
	if cfg.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(cfg.MaxOutputTokens))
	}
	return params
}

// chatMessages maps genai contents onto chat messages by role. Contents
// without visible text are dropped.
func chatMessages(contents []*genai.Content) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(contents))
	for _, content := range contents {
		text := utils.ExtractContentText(content)
		if strings.TrimSpace(text) == "" {
			continue
		}

		switch content.Role {
		case "model":
			messages = append(messages, openai.AssistantMessage(text))
		case "system":
			messages = append(messages, openai.SystemMessage(text))
		default:
			messages = append(messages, openai.UserMessage(text))
		}
	}
	return messages
}
