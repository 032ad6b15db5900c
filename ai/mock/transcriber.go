package mock

import (
	"context"
	"fmt"
)

// MockTranscriber is a test double for ai.Transcriber.
// It allows custom behavior injection via function fields.
type MockTranscriber struct {
	// TranscribeFunc is called by Transcribe if set.
	// If nil, uses default deterministic behavior.
	TranscribeFunc func(ctx context.Context, audio []byte) (string, error)

	callCount int
}

// NewMockTranscriber creates a mock transcriber with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockTranscriber().
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcribe returns a deterministic transcript derived from the audio length.
func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	m.callCount++

	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio)
	}

	return fmt.Sprintf("transcript of %d bytes of audio", len(audio)), nil
}

// CallCount returns the number of times Transcribe was called.
func (m *MockTranscriber) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockTranscriber) Reset() {
	m.callCount = 0
	m.TranscribeFunc = nil
}
