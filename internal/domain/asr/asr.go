// Package asr wraps the remote speech-to-text boundary.
package asr

import (
	"bytes"
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"taskpilot-voice/internal/platform/config"
	"taskpilot-voice/internal/platform/errors"
	"taskpilot-voice/internal/util/retry"
)

// Result carries the recognized text. Empty Text means no speech was
// detected and must not trigger any downstream action.
type Result struct {
	Text string
}

// Transcriber turns a finalized audio container into text.
type Transcriber interface {
	Transcribe(ctx context.Context, container []byte) (Result, error)
}

// OpenAITranscriber calls the hosted transcription endpoint with a
// single attempt per utterance.
type OpenAITranscriber struct {
	client   *openai.Client
	model    string
	language string
	policy   retry.Policy
}

func NewOpenAITranscriber(cfg config.ASRConfig) *OpenAITranscriber {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAITranscriber{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		language: cfg.Language,
		policy:   retry.Single(),
	}
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, container []byte) (Result, error) {
	var resp openai.AudioResponse
	err := retry.Do(ctx, t.policy, func(ctx context.Context) error {
		var callErr error
		resp, callErr = t.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    t.model,
			Reader:   bytes.NewReader(container),
			FilePath: "utterance.wav",
			Language: t.language,
		})
		return callErr
	})
	if err != nil {
		return Result{}, errors.Wrap(errors.KindGateway, "transcribe", "transcription request failed", err)
	}

	return Result{Text: strings.TrimSpace(resp.Text)}, nil
}
