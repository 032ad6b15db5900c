package mock

import (
	"context"
	"fmt"
)

// MockImageReader is a test double for ai.ImageReader.
// It allows custom behavior injection via function fields.
type MockImageReader struct {
	// ExtractTextFunc is called by ExtractText if set.
	// If nil, uses default deterministic behavior.
	ExtractTextFunc func(ctx context.Context, image []byte) (string, error)

	callCount int
}

// NewMockImageReader creates a mock image reader with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockImageReader().
func NewMockImageReader() *MockImageReader {
	return &MockImageReader{}
}

// ExtractText returns a deterministic description derived from the image length.
func (m *MockImageReader) ExtractText(ctx context.Context, image []byte) (string, error) {
	m.callCount++

	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, image)
	}

	return fmt.Sprintf("text extracted from %d bytes of image", len(image)), nil
}

// CallCount returns the number of times ExtractText was called.
func (m *MockImageReader) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockImageReader) Reset() {
	m.callCount = 0
	m.ExtractTextFunc = nil
}
