package mock

import (
	"context"
	"strings"
)

// MockRanker is a test double for ai.Ranker.
// It allows custom behavior injection via function fields.
type MockRanker struct {
	// RankIndicesFunc is called by RankIndices if set.
	// If nil, uses default substring matching behavior.
	RankIndicesFunc func(ctx context.Context, query string, digests []string) ([]int, error)

	callCount int
}

// NewMockRanker creates a mock ranker with default substring matching behavior.
// Note: Returns concrete type to allow test assertions via GetMockRanker().
func NewMockRanker() *MockRanker {
	return &MockRanker{}
}

// RankIndices returns the indices of digests containing the query,
// case-insensitively, in digest order.
func (m *MockRanker) RankIndices(ctx context.Context, query string, digests []string) ([]int, error) {
	m.callCount++

	if m.RankIndicesFunc != nil {
		return m.RankIndicesFunc(ctx, query, digests)
	}

	query = strings.ToLower(query)
	indices := []int{}
	for i, digest := range digests {
		if strings.Contains(strings.ToLower(digest), query) {
			indices = append(indices, i)
		}
	}
	return indices, nil
}

// CallCount returns the number of times RankIndices was called.
func (m *MockRanker) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockRanker) Reset() {
	m.callCount = 0
	m.RankIndicesFunc = nil
}
