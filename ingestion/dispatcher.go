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


package ingestion

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/linkstash/linkstash/ai"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
	"github.com/linkstash/linkstash/webmeta"
)

// maxFallbackTitleRunes bounds titles derived from note content.
const maxFallbackTitleRunes = 60

// Dispatcher turns submissions into enriched notes. Enrichment runs
// synchronously: Ingest does not return until every provider step for
// the submission's kind has run. A provider failure degrades that step
// to its neutral default; it never fails the note.
type Dispatcher struct {
	notes    storage.NoteRepository
	fetcher  webmeta.Fetcher
	provider ai.Provider
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
	}
}

// NewDispatcher creates a new ingestion dispatcher.
func NewDispatcher(
	notes storage.NoteRepository,
	fetcher webmeta.Fetcher,
	provider ai.Provider,
	opts ...Option,
) (*Dispatcher, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	d := &Dispatcher{
		notes:    notes,
		fetcher:  fetcher,
		provider: provider,
		logger:   slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Ingest persists a pending note for the submission, runs the kind's
// enrichment sequence, and returns the completed note. Only a missing
// owner, an invalid kind, or a storage failure can make it return an
// error; the note always reaches the Complete state otherwise.
func (d *Dispatcher) Ingest(ctx context.Context, owner string, submission core.Submission) (*core.Note, error) {
	if owner == "" {
		return nil, ErrMissingOwner
	}
	if submission == nil {
		return nil, ErrMissingSubmission
	}
	if err := core.ValidateKind(submission.SubmissionKind()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &core.Note{
		ID:              core.NewNoteID(),
		UserID:          owner,
		Kind:            submission.SubmissionKind(),
		Title:           strings.TrimSpace(submission.SuppliedTitle()),
		Tags:            []string{},
		ProcessingState: core.StatePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if link, isLink := submission.(core.LinkSubmission); isLink {
		note.URL = link.URL
		note.SourcePlatform = webmeta.Detect(link.URL)
	}

	// Persist in Pending state before any provider runs.
	if err := d.notes.Insert(ctx, note); err != nil {
		return nil, err
	}

	switch sub := submission.(type) {
	case core.LinkSubmission:
		d.enrichLink(ctx, note, sub)
	case core.TextSubmission:
		d.enrichText(ctx, note, sub)
	case core.VoiceSubmission:
		d.enrichVoice(ctx, note, sub)
	case core.ImageSubmission:
		d.enrichImage(ctx, note, sub)
	}

	note.ProcessingState = core.StateComplete
	if err := d.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (d *Dispatcher) enrichLink(ctx context.Context, note *core.Note, sub core.LinkSubmission) {
	meta := d.fetchMetadata(ctx, sub.URL)

	if note.Title == "" {
		source := meta.value.Title
		if source == "" {
			source = sub.URL
		}
		note.Title = fallbackTitle(source)
	}
	note.Thumbnail = meta.value.Thumbnail

	d.applyAnnotation(note, d.summarize(ctx, ai.SummaryInput{
		Title:       note.Title,
		Description: meta.value.Description,
		URL:         sub.URL,
	}))
}

func (d *Dispatcher) enrichText(ctx context.Context, note *core.Note, sub core.TextSubmission) {
	note.RawContent = sub.Content
	if note.Title == "" {
		note.Title = fallbackTitle(sub.Content)
	}
	if sub.Content == "" {
		return
	}
	d.applyAnnotation(note, d.summarize(ctx, ai.SummaryInput{Content: sub.Content}))
}

func (d *Dispatcher) enrichVoice(ctx context.Context, note *core.Note, sub core.VoiceSubmission) {
	if len(sub.Audio) == 0 {
		return
	}

	transcript := d.transcribe(ctx, sub.Audio)
	note.RawContent = transcript.value
	if note.Title == "" {
		note.Title = fallbackTitle(transcript.value)
	}
	if transcript.value == "" {
		return
	}
	d.applyAnnotation(note, d.summarize(ctx, ai.SummaryInput{Content: transcript.value}))
}

func (d *Dispatcher) enrichImage(ctx context.Context, note *core.Note, sub core.ImageSubmission) {
	if len(sub.Image) == 0 {
		return
	}

	extracted := d.extractImageText(ctx, sub.Image)
	note.RawContent = extracted.value
	if note.Title == "" {
		note.Title = fallbackTitle(extracted.value)
	}
	if extracted.value == "" {
		return
	}
	d.applyAnnotation(note, d.summarize(ctx, ai.SummaryInput{Content: extracted.value}))
}

// fetchMetadata wraps the URL metadata provider with the degrade policy.
func (d *Dispatcher) fetchMetadata(ctx context.Context, url string) outcome[webmeta.Metadata] {
	meta, err := d.fetcher.Fetch(ctx, url)
	if err != nil {
		d.logger.Warn("metadata fetch degraded", "url", url, "err", err)
		return degraded(webmeta.Metadata{})
	}
	return succeeded(meta)
}

// summarize wraps the summarizer provider with the degrade policy.
func (d *Dispatcher) summarize(ctx context.Context, input ai.SummaryInput) outcome[ai.Annotation] {
	annotation, err := d.provider.Summarizer().Summarize(ctx, input)
	if err != nil {
		d.logger.Warn("summarization degraded", "err", err)
		return degraded(ai.Annotation{Tags: []string{}})
	}
	return succeeded(annotation)
}

// transcribe wraps the transcription provider with the degrade policy.
func (d *Dispatcher) transcribe(ctx context.Context, audio []byte) outcome[string] {
	transcript, err := d.provider.Transcriber().Transcribe(ctx, audio)
	if err != nil {
		d.logger.Warn("transcription degraded", "err", err)
		return degraded("")
	}
	return succeeded(transcript)
}

// extractImageText wraps the image text provider with the degrade policy.
func (d *Dispatcher) extractImageText(ctx context.Context, image []byte) outcome[string] {
	text, err := d.provider.ImageReader().ExtractText(ctx, image)
	if err != nil {
		d.logger.Warn("image text extraction degraded", "err", err)
		return degraded("")
	}
	return succeeded(text)
}

func (d *Dispatcher) applyAnnotation(note *core.Note, res outcome[ai.Annotation]) {
	note.Summary = res.value.Summary
	note.Tags = core.ClampTags(res.value.Tags)
}

// fallbackTitle derives a title from content when none was supplied.
func fallbackTitle(source string) string {
	source = strings.TrimSpace(source)
	runes := []rune(source)
	if len(runes) > maxFallbackTitleRunes {
		return string(runes[:maxFallbackTitleRunes]) + "..."
	}
	return source
}
