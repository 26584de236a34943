package models_test

import (
	"context"
	"iter"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/virtual-companion/internal/models"
	"github.com/easeaico/virtual-companion/internal/utils"
)

type mockLLM struct {
	responses []*model.LLMResponse
	err       error
	requests  []*model.LLMRequest
}

func (m *mockLLM) Name() string { return "mock" }

func (m *mockLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	m.requests = append(m.requests, req)
	return func(yield func(*model.LLMResponse, error) bool) {
		if m.err != nil {
			yield(nil, m.err)
			return
		}
		for _, resp := range m.responses {
			if !yield(resp, nil) {
				return
			}
		}
	}
}

func textResponse(text string) *model.LLMResponse {
	return &model.LLMResponse{Content: genai.NewContentFromText(text, "model")}
}

func TestReplierGenerateReply(t *testing.T) {
	llm := &mockLLM{responses: []*model.LLMResponse{
		textResponse("  That sounds like "),
		textResponse("a lovely day.  "),
	}}
	r := models.NewReplier(llm)

	reply, err := r.GenerateReply(context.Background(), "You are Aura.")
	gt.NoError(t, err)
	gt.Equal(t, reply, "That sounds like a lovely day.")

	gt.A(t, llm.requests).Length(1)
	req := llm.requests[0]
	gt.Equal(t, utils.ExtractContentText(req.Config.SystemInstruction), "You are Aura.")
	gt.A(t, req.Contents).Length(1)
	gt.Equal(t, req.Contents[0].Role, "user")
	gt.Equal(t, *req.Config.Temperature, float32(0.8))
}

func TestReplierUnwrapsStructuredReply(t *testing.T) {
	llm := &mockLLM{responses: []*model.LLMResponse{textResponse(`{"reply":"Hey you."}`)}}

	reply, err := models.NewReplier(llm).GenerateReply(context.Background(), "persona")
	gt.NoError(t, err)
	gt.Equal(t, reply, "Hey you.")
}

func TestReplierErrors(t *testing.T) {
	t.Run("model error", func(t *testing.T) {
		llm := &mockLLM{err: goerr.New("quota exceeded")}
		_, err := models.NewReplier(llm).GenerateReply(context.Background(), "persona")
		gt.Error(t, err)
	})

	t.Run("error code", func(t *testing.T) {
		llm := &mockLLM{responses: []*model.LLMResponse{{ErrorCode: "SAFETY", ErrorMessage: "blocked"}}}
		_, err := models.NewReplier(llm).GenerateReply(context.Background(), "persona")
		gt.Error(t, err)
	})

	t.Run("empty reply", func(t *testing.T) {
		llm := &mockLLM{responses: []*model.LLMResponse{textResponse("   ")}}
		_, err := models.NewReplier(llm).GenerateReply(context.Background(), "persona")
		gt.Error(t, err)
	})

	t.Run("empty prompt", func(t *testing.T) {
		llm := &mockLLM{}
		_, err := models.NewReplier(llm).GenerateReply(context.Background(), " ")
		gt.Error(t, err)
		gt.A(t, llm.requests).Length(0)
	})
}

func TestReplierWithSampling(t *testing.T) {
	llm := &mockLLM{responses: []*model.LLMResponse{textResponse("ok")}}
	r := models.NewReplier(llm).WithSampling(0.3, 64)

	_, err := r.GenerateReply(context.Background(), "persona")
	gt.NoError(t, err)
	gt.Equal(t, *llm.requests[0].Config.Temperature, float32(0.3))
	gt.Equal(t, llm.requests[0].Config.MaxOutputTokens, int32(64))
}
