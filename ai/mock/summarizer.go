package mock

import (
	"context"
	"strings"

	"github.com/linkstash/linkstash/ai"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default deterministic behavior.
	SummarizeFunc func(ctx context.Context, input ai.SummaryInput) (ai.Annotation, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockSummarizer().
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize produces a deterministic annotation from the input.
// Default behavior: echoes the first available field as the summary and
// derives tags from the leading words of the content.
func (m *MockSummarizer) Summarize(ctx context.Context, input ai.SummaryInput) (ai.Annotation, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, input)
	}

	summary := input.Title
	if summary == "" {
		summary = input.Description
	}
	if summary == "" {
		summary = input.Content
	}
	if summary == "" {
		summary = input.URL
	}

	tags := []string{}
	for _, word := range strings.Fields(strings.ToLower(input.Content)) {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" {
			continue
		}
		tags = append(tags, word)
		if len(tags) >= ai.MaxTags {
			break
		}
	}

	return ai.Annotation{Summary: summary, Tags: tags}, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSummarizer) Reset() {
	m.callCount = 0
	m.SummarizeFunc = nil
}
