// Copyright 2025 The Linkstash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
)

// UserRepository implements storage.UserRepository for BadgerDB.
type UserRepository struct {
	backend *Backend
}

var _ storage.UserRepository = (*UserRepository)(nil)

// newUserRepository is an internal constructor that returns the concrete type.
func newUserRepository(backend *Backend) *UserRepository {
	return &UserRepository{backend: backend}
}

// NewUserRepository creates a user repository over the given backend.
//
// Returns storage.UserRepository interface to enforce abstraction.
func NewUserRepository(backend *Backend) storage.UserRepository {
	return newUserRepository(backend)
}

// Close is a no-op; the repository does not own the backend.
func (r *UserRepository) Close() error {
	return nil
}

// Insert adds a user to storage. Email addresses are unique,
// case-insensitively.
func (r *UserRepository) Insert(ctx context.Context, user *core.User) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeUserKey(user.ID)
		if _, err := tx.Get(key); err == nil {
			return storage.ErrDuplicateKey
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		emailKey := makeUserEmailKey(normalizeEmail(user.Email))
		if _, err := tx.Get(emailKey); err == nil {
			return storage.ErrDuplicateKey
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		value, err := storage.MarshalUser(user)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		if err := tx.Set(emailKey, []byte(user.ID)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*core.User, error) {
	var result *core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		user, err := r.readUser(tx, makeUserKey(id))
		if err != nil {
			return err
		}
		if user == nil {
			return storage.ErrNotFound
		}
		result = user
		return nil
	}, false)
	return result, err
}

// GetByEmail retrieves a user by email address, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	var result *core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeUserEmailKey(normalizeEmail(email)))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var userID string
		if err := item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		}); err != nil {
			return err
		}

		user, err := r.readUser(tx, makeUserKey(userID))
		if err != nil {
			return err
		}
		if user == nil {
			return storage.ErrNotFound
		}
		result = user
		return nil
	}, false)
	return result, err
}

// readUser reads and deserializes a user, returning nil if absent.
func (r *UserRepository) readUser(tx *badger.Txn, key []byte) (*core.User, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var user *core.User
	err = item.Value(func(val []byte) error {
		var err error
		user, err = storage.UnmarshalUser(val)
		return err
	})
	return user, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
