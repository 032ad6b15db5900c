// Copyright 2025 The Linkstash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

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

// maxContentChars bounds how much raw note content is sent to the model.
const maxContentChars = 1000

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client llms.Model
	logger *slog.Logger
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client: client,
		logger: slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize generates a short summary and tags for the assembled input.
// The model response must be strict JSON; malformed output is retried
// and, if still unparseable, reported as an error.
func (s *Summarizer) Summarize(ctx context.Context, input ai.SummaryInput) (ai.Annotation, error) {
	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(summarizePrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart("Generate summary and tags for:\n" + buildSummaryContext(input))},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.2), llms.WithJSONMode())
		if err != nil {
			s.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return ai.Annotation{}, err
		}

		if len(response.Choices) < 1 {
			s.logger.Debug("no choices returned from model")
			return ai.Annotation{Tags: []string{}}, nil
		}

		annotation, err := parseAnnotation(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			s.logger.Warn("error parsing summarizer response",
				"attempt", attempt+1,
				"err", err)
			continue
		}
		return annotation, nil
	}

	s.logger.Error("failed to parse summarizer response after retries", "err", lastErr)
	return ai.Annotation{}, lastErr
}

// buildSummaryContext assembles the prompt body from whichever input
// fields are present.
func buildSummaryContext(input ai.SummaryInput) string {
	var parts []string
	if input.Title != "" {
		parts = append(parts, "Title: "+input.Title)
	}
	if input.Description != "" {
		parts = append(parts, "Description: "+input.Description)
	}
	if input.URL != "" {
		parts = append(parts, "URL: "+input.URL)
	}
	if input.Content != "" {
		content := input.Content
		if len(content) > maxContentChars {
			content = content[:maxContentChars]
		}
		parts = append(parts, "Content: "+content)
	}
	return strings.Join(parts, "\n")
}
