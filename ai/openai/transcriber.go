package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/linkstash/linkstash/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Transcriber implements ai.Transcriber by sending audio to an
// audio-capable chat model as a binary content part.
type Transcriber struct {
	client llms.Model
	logger *slog.Logger
}

// newTranscriber is an internal constructor that returns the concrete type.
func newTranscriber(config *ai.Config) (*Transcriber, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.AudioModel),
	)
	if err != nil {
		return nil, err
	}

	return &Transcriber{
		client: client,
		logger: slog.Default().With("component", "openai-transcriber"),
	}, nil
}

// NewTranscriber creates a new transcriber using the provided configuration.
//
// Returns ai.Transcriber interface to enforce abstraction.
func NewTranscriber(config *ai.Config) (ai.Transcriber, error) {
	return newTranscriber(config)
}

// Transcribe converts spoken audio to text.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(transcribePrompt)},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart("Transcribe this audio."),
				llms.BinaryPart("audio/mpeg", audio),
			},
		},
	}

	response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		t.logger.Error("failed to transcribe audio", "bytes", len(audio), "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		t.logger.Debug("no choices returned from model")
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
