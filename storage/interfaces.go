package storage

import (
	"context"

	"github.com/linkstash/linkstash/core"
)

// NoteFilter narrows note listings. The zero value matches everything.
type NoteFilter struct {
	// Tag, when non-empty, keeps only notes carrying the exact tag.
	Tag string
}

// NoteRepository provides operations for managing notes.
// Implementations must be thread-safe and support concurrent access.
// All lookups are scoped to an owner: a note belonging to another user
// is reported as ErrNotFound, never leaked.
type NoteRepository interface {
	// Insert adds a note to storage.
	// Returns ErrDuplicateKey if a note with the same ID already exists,
	// regardless of owner.
	Insert(ctx context.Context, note *core.Note) error

	// Update replaces an existing note.
	// Returns ErrNotFound if the note doesn't exist or belongs to
	// another owner.
	Update(ctx context.Context, note *core.Note) error

	// Get retrieves a single note by ID for the given owner.
	// Returns ErrNotFound if the note doesn't exist or belongs to
	// another owner.
	Get(ctx context.Context, owner, id string) (*core.Note, error)

	// Delete removes a note by ID for the given owner.
	// Returns ErrNotFound if the note doesn't exist or belongs to
	// another owner.
	Delete(ctx context.Context, owner, id string) error

	// ListByOwner retrieves the owner's notes matching filter, newest
	// first, skipping skip notes and returning at most limit.
	// A limit <= 0 means no limit.
	ListByOwner(ctx context.Context, owner string, filter NoteFilter, skip, limit int) ([]*core.Note, error)

	// CountByOwner returns how many of the owner's notes match filter.
	CountByOwner(ctx context.Context, owner string, filter NoteFilter) (int, error)

	// MatchSubstring retrieves up to limit of the owner's notes whose
	// searchable fields contain the query, case-insensitively, newest
	// first.
	MatchSubstring(ctx context.Context, owner, query string, limit int) ([]*core.Note, error)

	// Recent retrieves the owner's limit most recent notes, newest first.
	Recent(ctx context.Context, owner string, limit int) ([]*core.Note, error)

	// AllByOwner retrieves every note belonging to the owner, newest first.
	AllByOwner(ctx context.Context, owner string) ([]*core.Note, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// UserRepository provides operations for managing user accounts.
type UserRepository interface {
	// Insert adds a user to storage.
	// Returns ErrDuplicateKey if the ID or email is already taken.
	Insert(ctx context.Context, user *core.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id string) (*core.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrNotFound if no user has the address.
	GetByEmail(ctx context.Context, email string) (*core.User, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// SessionRepository provides operations for managing login sessions,
// keyed by the digest of the session token. Plaintext tokens are never
// stored.
type SessionRepository interface {
	// Put stores a session, overwriting any session with the same digest.
	Put(ctx context.Context, session *core.Session) error

	// Get retrieves a session by token digest.
	// Returns ErrNotFound if no session has the digest.
	Get(ctx context.Context, digest string) (*core.Session, error)

	// Delete removes a session by token digest.
	// Deleting an absent session is not an error.
	Delete(ctx context.Context, digest string) error

	// Close closes the storage backend and releases resources.
	Close() error
}
