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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linkstash/linkstash/ai"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
)

const (
	// keywordLimit caps stage-1 keyword results.
	keywordLimit = 50
	// recentPoolLimit bounds how many recent notes feed the fallback stage.
	recentPoolLimit = 200
	// digestLimit bounds how many notes are digested for the ranker.
	digestLimit = 50
)

// Searcher provides hybrid keyword and semantic search over notes.
// Stage 1 is a plain substring match; only when it yields nothing does
// stage 2 consult the AI ranker over a digest of recent notes.
type Searcher struct {
	notes  storage.NoteRepository
	ranker ai.Ranker
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSearcher creates a new hybrid searcher.
func NewSearcher(notes storage.NoteRepository, provider ai.Provider, opts ...Option) (*Searcher, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		notes:  notes,
		ranker: provider.Ranker(),
		logger: slog.Default().With("component", "search"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search returns the owner's notes relevant to the query.
//
// An empty query returns an empty result. Keyword hits are returned
// verbatim, newest first. When the keyword stage finds nothing, the
// ranker picks from a digest of recent notes; its order is preserved
// and any failure on its side yields an empty result, never an error.
// Only storage failures are reported as errors.
func (s *Searcher) Search(ctx context.Context, owner, query string) ([]*core.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*core.Note{}, nil
	}

	// Stage 1: keyword substring match.
	matches, err := s.notes.MatchSubstring(ctx, owner, query, keywordLimit)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return matches, nil
	}

	// Stage 2: semantic fallback over recent notes.
	candidates, err := s.notes.Recent(ctx, owner, recentPoolLimit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []*core.Note{}, nil
	}

	digested := candidates
	if len(digested) > digestLimit {
		digested = digested[:digestLimit]
	}
	digests := make([]string, len(digested))
	for i, note := range digested {
		digests[i] = noteDigest(i, note)
	}

	indices, err := s.ranker.RankIndices(ctx, query, digests)
	if err != nil {
		s.logger.Warn("semantic ranking degraded", "query", query, "err", err)
		return []*core.Note{}, nil
	}

	// Map indices back to notes, provider order preserved.
	results := make([]*core.Note, 0, len(indices))
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(digested) || seen[idx] {
			continue
		}
		seen[idx] = true
		results = append(results, digested[idx])
	}
	return results, nil
}

// noteDigest renders the compact one-line form of a note sent to the
// ranker.
func noteDigest(index int, note *core.Note) string {
	return fmt.Sprintf("%d: %s | %s | tags: %s", index, note.Title, note.Summary, strings.Join(note.Tags, ", "))
}
