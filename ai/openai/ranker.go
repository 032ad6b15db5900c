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

// Ranker implements ai.Ranker using OpenAI-compatible chat APIs.
type Ranker struct {
	client llms.Model
	logger *slog.Logger
}

// newRanker is an internal constructor that returns the concrete type.
func newRanker(config *ai.Config) (*Ranker, error) {
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

	return &Ranker{
		client: client,
		logger: slog.Default().With("component", "openai-ranker"),
	}, nil
}

// NewRanker creates a new ranker using the provided configuration.
//
// Returns ai.Ranker interface to enforce abstraction.
func NewRanker(config *ai.Config) (ai.Ranker, error) {
	return newRanker(config)
}

// RankIndices asks the model for the digest indices most relevant to
// the query, in relevance order.
func (r *Ranker) RankIndices(ctx context.Context, query string, digests []string) ([]int, error) {
	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(rankPrompt)},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart("Query: " + query + "\n\nNotes:\n" + strings.Join(digests, "\n")),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			r.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			r.logger.Debug("no choices returned from model")
			return []int{}, nil
		}

		indices, err := parseIndices(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			r.logger.Warn("error parsing ranker response", "attempt", attempt+1, "err", err)
			continue
		}
		return indices, nil
	}

	r.logger.Error("failed to parse ranker response after retries", "err", lastErr)
	return nil, lastErr
}
