package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
)

// SessionRepository implements storage.SessionRepository for BadgerDB.
// Session entries carry a BadgerDB TTL so expired sessions are reclaimed
// without a sweeper.
type SessionRepository struct {
	backend *Backend
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// newSessionRepository is an internal constructor that returns the concrete type.
func newSessionRepository(backend *Backend) *SessionRepository {
	return &SessionRepository{backend: backend}
}

// NewSessionRepository creates a session repository over the given backend.
//
// Returns storage.SessionRepository interface to enforce abstraction.
func NewSessionRepository(backend *Backend) storage.SessionRepository {
	return newSessionRepository(backend)
}

// Close is a no-op; the repository does not own the backend.
func (r *SessionRepository) Close() error {
	return nil
}

// Put stores a session, overwriting any session with the same digest.
func (r *SessionRepository) Put(ctx context.Context, session *core.Session) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		value, err := storage.MarshalSession(session)
		if err != nil {
			return err
		}

		entry := badger.NewEntry(makeSessionKey(session.TokenDigest), value)
		if ttl := time.Until(session.ExpiresAt); ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		if err := tx.SetEntry(entry); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// Get retrieves a session by token digest.
func (r *SessionRepository) Get(ctx context.Context, digest string) (*core.Session, error) {
	var result *core.Session
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSessionKey(digest))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalSession(val)
			return err
		})
	}, false)
	return result, err
}

// Delete removes a session by token digest.
func (r *SessionRepository) Delete(ctx context.Context, digest string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeSessionKey(digest)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
