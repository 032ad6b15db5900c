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
	"log/slog"

	"github.com/linkstash/linkstash/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages the summarizer, transcriber, image reader and ranker
// instances, which share one configuration.
type Provider struct {
	config      *ai.Config
	summarizer  *Summarizer
	transcriber *Transcriber
	imageReader *ImageReader
	ranker      *Ranker
	logger      *slog.Logger
}

// NewProvider creates a new AI provider backed by OpenAI-compatible
// chat APIs. The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	summarizer, err := newSummarizer(config)
	if err != nil {
		return nil, err
	}

	transcriber, err := newTranscriber(config)
	if err != nil {
		return nil, err
	}

	imageReader, err := newImageReader(config)
	if err != nil {
		return nil, err
	}

	ranker, err := newRanker(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:      config,
		summarizer:  summarizer,
		transcriber: transcriber,
		imageReader: imageReader,
		ranker:      ranker,
		logger:      slog.Default().With("component", "openai-provider"),
	}, nil
}

// Summarizer returns the summary-and-tags service.
func (p *Provider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// Transcriber returns the audio transcription service.
func (p *Provider) Transcriber() ai.Transcriber {
	return p.transcriber
}

// ImageReader returns the image text extraction service.
func (p *Provider) ImageReader() ai.ImageReader {
	return p.imageReader
}

// Ranker returns the search ranking service.
func (p *Provider) Ranker() ai.Ranker {
	return p.ranker
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
