package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoteID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewNoteID()
		assert.True(t, strings.HasPrefix(id, "note_"))
		assert.Len(t, id, len("note_")+12)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewUserID(t *testing.T) {
	id := NewUserID()
	assert.True(t, strings.HasPrefix(id, "user_"))
}

func TestSubmissionKinds(t *testing.T) {
	assert.Equal(t, KindLink, LinkSubmission{}.SubmissionKind())
	assert.Equal(t, KindText, TextSubmission{}.SubmissionKind())
	assert.Equal(t, KindVoice, VoiceSubmission{}.SubmissionKind())
	assert.Equal(t, KindImage, ImageSubmission{}.SubmissionKind())
}

func TestSubmissionSuppliedTitle(t *testing.T) {
	assert.Equal(t, "t", LinkSubmission{Title: "t"}.SuppliedTitle())
	assert.Equal(t, "", TextSubmission{Content: "body"}.SuppliedTitle())
}

func TestSessionExpired(t *testing.T) {
	now := time.Now().UTC()

	t.Run("future expiry is valid", func(t *testing.T) {
		s := &Session{ExpiresAt: now.Add(time.Hour)}
		assert.False(t, s.Expired(now))
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		s := &Session{ExpiresAt: now.Add(-time.Second)}
		assert.True(t, s.Expired(now))
	})

	t.Run("exact expiry instant is expired", func(t *testing.T) {
		s := &Session{ExpiresAt: now}
		assert.True(t, s.Expired(now))
	})
}

func TestClampTags(t *testing.T) {
	t.Run("nil becomes empty", func(t *testing.T) {
		tags := ClampTags(nil)
		require.NotNil(t, tags)
		assert.Empty(t, tags)
	})

	t.Run("short list unchanged", func(t *testing.T) {
		tags := ClampTags([]string{"a", "b"})
		assert.Equal(t, []string{"a", "b"}, tags)
	})

	t.Run("extras discarded", func(t *testing.T) {
		tags := ClampTags([]string{"a", "b", "c", "d", "e", "f", "g"})
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, tags)
	})
}
