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


package mock

import "github.com/linkstash/linkstash/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock service instances.
type MockProvider struct {
	summarizer  *MockSummarizer
	transcriber *MockTranscriber
	imageReader *MockImageReader
	ranker      *MockRanker
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use the GetMockXxx accessors to reach concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		summarizer:  NewMockSummarizer(),
		transcriber: NewMockTranscriber(),
		imageReader: NewMockImageReader(),
		ranker:      NewMockRanker(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(summarizer *MockSummarizer, transcriber *MockTranscriber, imageReader *MockImageReader, ranker *MockRanker) ai.Provider {
	return &MockProvider{
		summarizer:  summarizer,
		transcriber: transcriber,
		imageReader: imageReader,
		ranker:      ranker,
	}
}

// Summarizer returns the mock summarizer.
func (p *MockProvider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// Transcriber returns the mock transcriber.
func (p *MockProvider) Transcriber() ai.Transcriber {
	return p.transcriber
}

// ImageReader returns the mock image reader.
func (p *MockProvider) ImageReader() ai.ImageReader {
	return p.imageReader
}

// Ranker returns the mock ranker.
func (p *MockProvider) Ranker() ai.Ranker {
	return p.ranker
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockSummarizer returns the underlying mock summarizer for test assertions.
func (p *MockProvider) GetMockSummarizer() *MockSummarizer {
	return p.summarizer
}

// GetMockTranscriber returns the underlying mock transcriber for test assertions.
func (p *MockProvider) GetMockTranscriber() *MockTranscriber {
	return p.transcriber
}

// GetMockImageReader returns the underlying mock image reader for test assertions.
func (p *MockProvider) GetMockImageReader() *MockImageReader {
	return p.imageReader
}

// GetMockRanker returns the underlying mock ranker for test assertions.
func (p *MockProvider) GetMockRanker() *MockRanker {
	return p.ranker
}
