// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Summarizer, ai.Transcriber,
// ai.ImageReader, ai.Ranker, and ai.Provider for use in unit tests. The mocks
// allow tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	annotation, err := mockProvider.Summarizer().Summarize(ctx, input)
//
//	// Custom behavior injection
//	mockSummarizer := mock.NewMockSummarizer()
//	mockSummarizer.SummarizeFunc = func(ctx context.Context, input ai.SummaryInput) (ai.Annotation, error) {
//	    return ai.Annotation{Summary: "fixed", Tags: []string{"a"}}, nil
//	}
//
//	// Check call counts
//	count := mockSummarizer.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockSummarizer: Echoes the input's first populated field and tags from content words
//   - MockTranscriber: Returns a transcript derived from the audio length
//   - MockImageReader: Returns a description derived from the image length
//   - MockRanker: Returns indices of digests containing the query
//   - MockProvider: Aggregates the four mock services
package mock
