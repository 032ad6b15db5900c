package ai

import "context"

// Summarizer produces a short synopsis and tags from assembled note
// context. Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize generates a 2-3 sentence summary and at most MaxTags tags
	// for the given input. Any subset of the input fields may be set.
	// Returns an error if generation or response parsing fails.
	Summarize(ctx context.Context, input SummaryInput) (Annotation, error)
}

// Transcriber converts spoken audio to text.
// Implementations must be thread-safe for concurrent use.
type Transcriber interface {
	// Transcribe returns the transcript of the given audio bytes.
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// ImageReader extracts readable text and a concise content description
// from an image. Implementations must be thread-safe for concurrent use.
type ImageReader interface {
	// ExtractText returns the text and key content found in the image.
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Ranker selects the entries of a note digest most relevant to a query.
// It backs the semantic fallback stage of hybrid search.
type Ranker interface {
	// RankIndices returns 0-based indices into digests, most relevant
	// first, in the provider's preferred order. Indices outside the
	// digest range may be returned and must be discarded by the caller.
	RankIndices(ctx context.Context, query string, digests []string) ([]int, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management. All returned services are safe for concurrent use.
type Provider interface {
	Summarizer() Summarizer
	Transcriber() Transcriber
	ImageReader() ImageReader
	Ranker() Ranker

	// Close releases resources held by the provider and its services.
	Close() error
}
