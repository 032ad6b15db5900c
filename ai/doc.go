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


// Package ai provides abstractions for the AI services used by linkstash.
//
// It defines one interface per enrichment capability — summarization,
// audio transcription, image text extraction, and search ranking — plus
// a Provider aggregate that bundles them for initialization. The core
// pipeline and the search engine depend only on these abstractions,
// never on a concrete vendor client.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Each capability has a single operation that returns an explicit error.
// Callers in the pipeline treat any error as a degraded result and fall
// back to the neutral default (empty string, empty annotation, empty
// index list); provider failures are never surfaced to end users.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithToken(apiKey))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	ann, err := provider.Summarizer().Summarize(ctx, ai.SummaryInput{Content: text})
package ai
