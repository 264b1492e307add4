package llm

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"taskpilot-voice/internal/platform/config"
	"taskpilot-voice/internal/platform/errors"
	"taskpilot-voice/internal/util/retry"
)

// Generator produces an assistant reply for the given conversation.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// OpenAIGenerator calls the chat completion endpoint, one attempt per
// cycle. Failures surface as gateway errors so the caller can switch
// to the local fallback.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	policy      retry.Policy
}

func NewOpenAIGenerator(cfg config.LLMConfig) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
		policy:      retry.Single(),
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, messages []Message) (string, error) {
	chat := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chat = append(chat, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	var resp openai.ChatCompletionResponse
	err := retry.Do(ctx, g.policy, func(ctx context.Context) error {
		var callErr error
		resp, callErr = g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       g.model,
			Messages:    chat,
			MaxTokens:   g.maxTokens,
			Temperature: g.temperature,
		})
		return callErr
	})
	if err != nil {
		return "", errors.Wrap(errors.KindGateway, "generate", "completion request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(errors.KindGateway, "generate", "completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
