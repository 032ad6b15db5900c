package openai

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/linkstash/linkstash/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// ImageReader implements ai.ImageReader using a vision-capable chat model.
type ImageReader struct {
	client llms.Model
	logger *slog.Logger
}

// newImageReader is an internal constructor that returns the concrete type.
func newImageReader(config *ai.Config) (*ImageReader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.VisionModel),
	)
	if err != nil {
		return nil, err
	}

	return &ImageReader{
		client: client,
		logger: slog.Default().With("component", "openai-image-reader"),
	}, nil
}

// NewImageReader creates a new image reader using the provided configuration.
//
// Returns ai.ImageReader interface to enforce abstraction.
func NewImageReader(config *ai.Config) (ai.ImageReader, error) {
	return newImageReader(config)
}

// ExtractText extracts readable text and a concise content description
// from the image. The image is sent inline as a data URL.
func (r *ImageReader) ExtractText(ctx context.Context, image []byte) (string, error) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(extractImagePrompt)},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart("Extract text and describe key content from this image."),
				llms.ImageURLPart(dataURL),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.2))
	if err != nil {
		r.logger.Error("failed to read image", "bytes", len(image), "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		r.logger.Debug("no choices returned from model")
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
