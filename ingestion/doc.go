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


// Package ingestion turns user submissions into enriched notes.
//
// The Dispatcher persists every submission as a Pending note, runs the
// enrichment sequence for the submission's kind (metadata fetch,
// transcription, image text extraction, summarization), and flips the
// note to Complete. Provider calls are wrapped in tagged outcomes:
// a failing provider degrades its step to a neutral default and the
// sequence continues, so Complete means "enrichment was attempted",
// not "enrichment produced non-empty results".
//
// Only a missing owner, an invalid submission kind, or a storage
// failure can fail an ingest.
package ingestion
