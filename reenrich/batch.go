package reenrich

import (
	"context"
	"fmt"
	"time"

	"github.com/linkstash/linkstash/ai"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
)

// BatchProcessor re-runs summarization for batches of notes whose AI
// fields came back empty when they were first ingested.
type BatchProcessor struct {
	repo           storage.NoteRepository
	summarizer     ai.Summarizer
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts per summarization call
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.NoteRepository, summarizer ai.Summarizer, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		summarizer:     summarizer,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process re-annotates the batch's degraded notes and persists the
// result. Notes that already carry a summary, or that have no material
// to summarize, are left untouched. Returns how many notes were
// re-annotated.
func (bp *BatchProcessor) Process(ctx context.Context, notes []*core.Note) (int, error) {
	updated := 0
	for _, note := range notes {
		if !Degraded(note) {
			continue
		}

		input := summaryInputFor(note)
		if input.Empty() {
			continue
		}

		var annotation ai.Annotation
		err := RetryWithBackoff(ctx, func() error {
			var err error
			annotation, err = bp.summarizer.Summarize(ctx, input)
			return err
		}, bp.maxRetries, bp.retryBaseDelay)
		if err != nil {
			return updated, fmt.Errorf("failed to summarize note %s after %d attempts: %w", note.ID, bp.maxRetries, err)
		}

		note.Summary = annotation.Summary
		note.Tags = core.ClampTags(annotation.Tags)

		if err := bp.repo.Update(ctx, note); err != nil {
			return updated, fmt.Errorf("failed to update note %s: %w", note.ID, err)
		}
		updated++
	}
	return updated, nil
}

// Degraded reports whether a note's enrichment came back empty and is
// worth re-running.
func Degraded(note *core.Note) bool {
	return note.ProcessingState == core.StateComplete && note.Summary == "" && len(note.Tags) == 0
}

// summaryInputFor rebuilds the summarizer input from the note's stored
// fields, mirroring what ingestion assembled for its kind.
func summaryInputFor(note *core.Note) ai.SummaryInput {
	if note.Kind == core.KindLink {
		return ai.SummaryInput{
			Title: note.Title,
			URL:   note.URL,
		}
	}
	return ai.SummaryInput{Content: note.RawContent}
}
