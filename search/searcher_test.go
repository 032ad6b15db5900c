package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/linkstash/linkstash/ai/mock"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
	"github.com/linkstash/linkstash/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNote(t *testing.T, notes storage.NoteRepository, owner, title, summary string, tags []string, createdAt time.Time) *core.Note {
	t.Helper()
	note := &core.Note{
		ID:              core.NewNoteID(),
		UserID:          owner,
		Kind:            core.KindText,
		Title:           title,
		Summary:         summary,
		Tags:            tags,
		ProcessingState: core.StateComplete,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	require.NoError(t, notes.Insert(context.Background(), note))
	return note
}

func TestSearchEmptyQuery(t *testing.T) {
	notes, _, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	provider := mock.NewMockProvider().(*mock.MockProvider)
	searcher, err := NewSearcher(notes, provider)
	require.NoError(t, err)

	for _, query := range []string{"", "   ", "\t\n"} {
		results, err := searcher.Search(context.Background(), "user_a", query)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	// No stage ever ran
	assert.Equal(t, 0, provider.GetMockRanker().CallCount())
}

func TestSearchKeywordShortCircuit(t *testing.T) {
	notes, _, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	now := time.Now().UTC()
	seedNote(t, notes, "user_a", "Go generics deep dive", "", nil, now)
	seedNote(t, notes, "user_a", "Dinner plans", "", nil, now.Add(-time.Minute))

	provider := mock.NewMockProvider().(*mock.MockProvider)
	searcher, err := NewSearcher(notes, provider)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "user_a", "generics")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Go generics deep dive", results[0].Title)

	// A keyword hit must never reach the ranker
	assert.Equal(t, 0, provider.GetMockRanker().CallCount())
}

func TestSearchSemanticFallback(t *testing.T) {
	notes, _, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	now := time.Now().UTC()
	newest := seedNote(t, notes, "user_a", "Pasta carbonara", "Recipe worth keeping", []string{"food"}, now)
	older := seedNote(t, notes, "user_a", "Monad tutorial", "Functional programming", []string{"fp"}, now.Add(-time.Minute))

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockRanker().RankIndicesFunc = func(ctx context.Context, query string, digests []string) ([]int, error) {
		assert.Equal(t, "cooking", query)
		assert.Len(t, digests, 2)
		assert.Contains(t, digests[0], "Pasta carbonara")
		// Return reversed order plus junk indices
		return []int{1, 99, -3, 0, 1}, nil
	}

	searcher, err := NewSearcher(notes, provider)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "user_a", "cooking")
	require.NoError(t, err)

	// Provider order preserved, out-of-range and duplicates discarded
	require.Len(t, results, 2)
	assert.Equal(t, older.ID, results[0].ID)
	assert.Equal(t, newest.ID, results[1].ID)
}

func TestSearchRankerFailureDegrades(t *testing.T) {
	notes, _, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	seedNote(t, notes, "user_a", "Something", "", nil, time.Now().UTC())

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockRanker().RankIndicesFunc = func(ctx context.Context, query string, digests []string) ([]int, error) {
		return nil, errors.New("model unavailable")
	}

	searcher, err := NewSearcher(notes, provider)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "user_a", "unmatchable")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchNoNotes(t *testing.T) {
	notes, _, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	provider := mock.NewMockProvider().(*mock.MockProvider)
	searcher, err := NewSearcher(notes, provider)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "user_a", "anything")
	require.NoError(t, err)
	assert.Empty(t, results)
	// No candidates means the ranker is never consulted
	assert.Equal(t, 0, provider.GetMockRanker().CallCount())
}

func TestSearchDigestCap(t *testing.T) {
	notes, _, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	now := time.Now().UTC()
	for i := 0; i < digestLimit+10; i++ {
		seedNote(t, notes, "user_a", fmt.Sprintf("Note %d", i), "", nil, now.Add(-time.Duration(i)*time.Second))
	}

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockRanker().RankIndicesFunc = func(ctx context.Context, query string, digests []string) ([]int, error) {
		assert.Len(t, digests, digestLimit)
		return []int{0}, nil
	}

	searcher, err := NewSearcher(notes, provider)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "user_a", "zzz-no-keyword-hit")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Note 0", results[0].Title)
}
