package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the fixed category of a note's origin. It is assigned at
// creation and never changes; it determines which enrichment sequence
// the dispatcher runs.
type Kind string

const (
	// KindLink is a saved URL, enriched via page metadata and summarization.
	KindLink Kind = "link"
	// KindText is free-form text, enriched via summarization only.
	KindText Kind = "text"
	// KindVoice is an audio recording, transcribed before summarization.
	KindVoice Kind = "voice"
	// KindImage is an image, OCR'd and described before summarization.
	KindImage Kind = "image"
)

// ProcessingState tracks whether a note's enrichment sequence has run.
// Complete means "enrichment was attempted", not "enrichment produced
// non-empty results" — there is no failed state and no retry.
type ProcessingState string

const (
	// StatePending is set the instant the record is first persisted,
	// before any enrichment step runs.
	StatePending ProcessingState = "pending"
	// StateComplete is terminal, set unconditionally once the enrichment
	// sequence finishes, regardless of provider degradation.
	StateComplete ProcessingState = "complete"
)

// MaxTags is the upper bound on the number of tags a note may carry.
const MaxTags = 5

// Note is the unit of stored, user-submitted content plus its AI-derived
// metadata. A note is owned exclusively by its creator and is mutated
// once, by the enrichment stage of the request that created it.
type Note struct {
	ID              string          `json:"note_id"`
	UserID          string          `json:"user_id"`
	Kind            Kind            `json:"type"`
	Title           string          `json:"title"`
	URL             string          `json:"url"`
	Summary         string          `json:"summary"`
	Tags            []string        `json:"tags"`
	Thumbnail       string          `json:"thumbnail"`
	RawContent      string          `json:"raw_content"`
	SourcePlatform  string          `json:"source_platform"`
	ProcessingState ProcessingState `json:"processing_state"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// User is an account that owns notes and sessions.
type User struct {
	ID           string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is a server-side authentication record. It is keyed by a
// digest of the issued token, never the token itself.
type Session struct {
	TokenDigest string    `json:"token_digest"`
	UserID      string    `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry instant.
// An expired session must be treated as unauthenticated.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// NewNoteID returns a fresh, globally unique note identifier.
func NewNoteID() string {
	return "note_" + shortHex()
}

// NewUserID returns a fresh, globally unique user identifier.
func NewUserID() string {
	return "user_" + shortHex()
}

func shortHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// ClampTags discards tag entries beyond MaxTags, silently.
func ClampTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	if len(tags) > MaxTags {
		return tags[:MaxTags]
	}
	return tags
}
